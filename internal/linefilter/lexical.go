package linefilter

import "strings"

// lexer remembers an open string literal between lines. A triple-quoted
// string stays open until its closing quotes. A single-quoted string only
// stays open when the line ends in an unescaped backslash.
type lexer struct {
	triple byte
	quote  byte
}

func (l *lexer) strip(line string) string {
	continued := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case l.triple != 0:
			if c == '\\' {
				i++
				continue
			}
			if c == l.triple && strings.HasPrefix(line[i:], tripleOf(c)) {
				l.triple = 0
				i += 2
			}
		case l.quote != 0:
			if c == '\\' {
				continued = i == len(line)-1
				i++
				continue
			}
			if c == l.quote {
				l.quote = 0
			}
		case c == CommentMarker:
			return line[:i]
		case c == '"' || c == '\'':
			if strings.HasPrefix(line[i:], tripleOf(c)) {
				l.triple = c
				i += 2
			} else {
				l.quote = c
			}
		}
	}
	if !continued {
		l.quote = 0
	}
	return line
}

func tripleOf(c byte) string {
	return string([]byte{c, c, c})
}
