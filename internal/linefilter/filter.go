package linefilter

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CommentMarker starts a comment that runs to the end of the line.
const CommentMarker = '#'

// maxLineSize bounds a single source line.
const maxLineSize = 16 * 1024 * 1024

// Mode selects how comment text is located on a line.
type Mode int

const (
	// Naive strips from the first comment marker, even inside string literals.
	Naive Mode = iota
	// Lexical ignores comment markers that appear inside string literals.
	Lexical
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case Naive:
		return "naive"
	case Lexical:
		return "lexical"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a mode name ("naive" or "lexical") into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "naive":
		return Naive, nil
	case "lexical":
		return Lexical, nil
	default:
		return Naive, fmt.Errorf("unknown strip mode %q: must be 'naive' or 'lexical'", s)
	}
}

// Clean reads the file at path as UTF-8 and returns its cleaned text using
// the Naive strategy.
func Clean(path string) (string, error) {
	return CleanFile(path, Naive)
}

// CleanFile reads the file at path as UTF-8 and returns its cleaned text.
func CleanFile(path string, mode Mode) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	out, err := CleanReader(f, mode)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return out, nil
}

// CleanString applies the filter to in-memory source text. It fails on
// invalid UTF-8 or on a line longer than 16 MiB.
func CleanString(src string, mode Mode) (string, error) {
	return CleanReader(strings.NewReader(src), mode)
}

// CleanReader decodes r as UTF-8 (a leading byte order mark is dropped),
// filters it line by line and joins the surviving lines with "\n". No
// trailing newline is added. Invalid UTF-8 yields encoding.ErrInvalidUTF8.
func CleanReader(r io.Reader, mode Mode) (string, error) {
	strip := newStripper(mode)

	decoder := transform.Chain(encoding.UTF8Validator, unicode.UTF8BOM.NewDecoder())
	scanner := bufio.NewScanner(transform.NewReader(r, decoder))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	scanner.Split(scanUniversalLines)

	var kept []string
	for scanner.Scan() {
		line := strings.TrimSpace(strip(scanner.Text()))
		if line == "" {
			continue
		}
		kept = append(kept, line)
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return strings.Join(kept, "\n"), nil
}

func newStripper(mode Mode) func(string) string {
	if mode == Lexical {
		return (&lexer{}).strip
	}
	return stripNaive
}

// stripNaive drops everything from the first comment marker onward.
func stripNaive(line string) string {
	if i := strings.IndexByte(line, CommentMarker); i >= 0 {
		return line[:i]
	}
	return line
}

// scanUniversalLines is a bufio.SplitFunc that accepts "\n", "\r\n" and a
// lone "\r" as line terminators.
func scanUniversalLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		switch {
		case i+1 < len(data) && data[i+1] == '\n':
			return i + 2, data[:i], nil
		case i+1 < len(data) || atEOF:
			return i + 1, data[:i], nil
		}
		// A trailing '\r' may be the first half of "\r\n".
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
