package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vk/pycacher/internal/compiler"
	"github.com/vk/pycacher/internal/ctxlog"
	"github.com/vk/pycacher/internal/fsutil"
	"github.com/vk/pycacher/internal/linefilter"
)

const (
	// SourceExtension selects the files to process.
	SourceExtension = ".py"
	// ArtifactSuffix is appended to the source file name to name the artifact.
	ArtifactSuffix = "c"
	// ScratchSuffix is appended to the source path to name the scratch file.
	ScratchSuffix = ".temp"
)

var (
	// ErrSourceRootMissing is returned when the source root does not exist.
	ErrSourceRootMissing = errors.New("source root does not exist")
	// ErrSourceRootNotDir is returned when the source root is not a directory.
	ErrSourceRootNotDir = errors.New("source root is not a directory")
)

// Options configures a Pipeline.
type Options struct {
	SourceRoot string
	DestRoot   string
	StripMode  linefilter.Mode
}

// Pipeline drives the clean → scratch → compile → cleanup sequence over a
// source tree.
type Pipeline struct {
	opts     Options
	compiler compiler.Compiler
	notifier *Notifier
}

// New returns a Pipeline that compiles with c and prints one notice per
// processed file to out.
func New(opts Options, c compiler.Compiler, out io.Writer) *Pipeline {
	return &Pipeline{
		opts:     opts,
		compiler: c,
		notifier: NewNotifier(out),
	}
}

// Run processes every source file under the source root. Compile errors are
// recorded in the report and do not stop the run. Any other error aborts it;
// the returned report then covers the files handled so far.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	logger := ctxlog.FromContext(ctx)
	report := &Report{}

	if err := checkSourceRoot(p.opts.SourceRoot); err != nil {
		return report, err
	}
	if err := fsutil.EnsureDir(p.opts.DestRoot); err != nil {
		return report, fmt.Errorf("failed to create destination root %s: %w", p.opts.DestRoot, err)
	}

	files, err := fsutil.FindFilesByExtension(p.opts.SourceRoot, SourceExtension)
	if err != nil {
		return report, fmt.Errorf("failed to walk %s: %w", p.opts.SourceRoot, err)
	}
	logger.Info("Source files discovered.", "root", p.opts.SourceRoot, "count", len(files))

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			logger.Warn("Run interrupted.", "remaining", len(files)-len(report.Results))
			return report, err
		}

		res, err := p.processFile(ctx, path)
		if err != nil {
			return report, err
		}
		report.Results = append(report.Results, res)

		if res.Err != nil {
			logger.Debug("File failed to compile.", "source", res.Source, "error", res.Err)
			p.notifier.Failed(res.Source, res.Err)
		} else {
			logger.Debug("File compiled.", "source", res.Source, "dest", res.Dest)
			p.notifier.Compiled(res.Source, res.Dest)
		}
	}

	return report, nil
}

// processFile handles one source file. The scratch file is removed on every
// return path; a failure to remove it is joined into the returned error.
func (p *Pipeline) processFile(ctx context.Context, src string) (res Result, err error) {
	dest, err := fsutil.MirrorPath(p.opts.SourceRoot, p.opts.DestRoot, src, ArtifactSuffix)
	if err != nil {
		return res, err
	}
	res = Result{Source: src, Dest: dest}

	cleaned, err := linefilter.CleanFile(src, p.opts.StripMode)
	if err != nil {
		return res, fmt.Errorf("failed to clean %s: %w", src, err)
	}

	scratch := src + ScratchSuffix
	defer func() {
		if rmErr := fsutil.RemoveIfExists(scratch); rmErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to remove scratch file %s: %w", scratch, rmErr))
		}
	}()
	if err := os.WriteFile(scratch, []byte(cleaned), 0o644); err != nil {
		return res, fmt.Errorf("failed to write scratch file %s: %w", scratch, err)
	}

	if err := fsutil.EnsureDir(filepath.Dir(dest)); err != nil {
		return res, fmt.Errorf("failed to create destination directory for %s: %w", dest, err)
	}

	if err := p.compiler.Compile(ctx, scratch, dest, src); err != nil {
		var compileErr *compiler.CompileError
		if errors.As(err, &compileErr) {
			res.Err = compileErr
			return res, nil
		}
		return res, fmt.Errorf("failed to compile %s: %w", src, err)
	}
	return res, nil
}

func checkSourceRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrSourceRootMissing, root)
		}
		return fmt.Errorf("failed to stat source root %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrSourceRootNotDir, root)
	}
	return nil
}
