package run

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/chojs23/qcut/internal/buildinfo"
	"github.com/chojs23/qcut/internal/cli"
	"github.com/chojs23/qcut/internal/diag"
	"github.com/chojs23/qcut/internal/extract"
	"github.com/chojs23/qcut/internal/source"
	"github.com/chojs23/qcut/internal/tui"
)

const programName = "qcut"

// Env holds the process surroundings Run works against.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Fs     afero.Fs
}

// Swapped out in tests.
var (
	preview      = tui.Preview
	selectSource = tui.SelectSource
)

// Run processes every input named in opts and returns the exit code: 0 on
// success, 1 when any input could not be read, output failed or the preview
// was aborted.
func Run(ctx context.Context, opts cli.Options) int {
	return RunWith(ctx, opts, Env{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Fs:     afero.NewOsFs(),
	})
}

func RunWith(ctx context.Context, opts cli.Options, env Env) int {
	logger := diag.NewLogger(env.Stderr, opts.LogLevel)
	report := diag.NewReporter(env.Stderr, programName)
	out := bufio.NewWriter(env.Stdout)

	files := opts.Files
	if len(files) == 0 {
		files = []string{source.Stdin}
	}

	proc := &processor{
		selector:      opts.Selector,
		onlyDelimited: opts.OnlyDelimited,
		out:           out,
	}

	var sampled *source.Source
	sampledIdx := -1
	if opts.Interactive {
		idx, err := selectSource(ctx, candidates(env.Fs, files))
		if err != nil {
			if errors.Is(err, tui.ErrPreviewQuit) {
				return 1
			}
			report.Errorf("%v", err)
			return 1
		}
		src, sel, err := choose(ctx, opts, env, files[idx])
		if err != nil {
			if errors.Is(err, tui.ErrPreviewQuit) {
				return 1
			}
			report.Errorf("%s: %v", files[idx], diag.Cause(err))
			return 1
		}
		proc.selector = sel
		sampled = src
		sampledIdx = idx
		report.Infof("selected %s %s", sel.Mode(), sel.Positions())
	}

	logger.Debug("selection",
		slog.String("version", buildinfo.String()),
		slog.String("mode", proc.selector.Mode().String()),
		slog.String("list", proc.selector.Positions().String()),
		slog.Int("sources", len(files)),
	)

	// flush keeps what was already extracted when the run stops early.
	flush := func() bool {
		if err := out.Flush(); err != nil {
			report.Errorf("write error: %v", diag.Cause(err))
			return false
		}
		return true
	}

	failed := false
	for i, name := range files {
		if err := ctx.Err(); err != nil {
			if sampled != nil && i < sampledIdx {
				sampled.Close()
			}
			flush()
			report.Errorf("%v", err)
			return 1
		}

		src := sampled
		if i != sampledIdx {
			opened, err := source.Open(env.Fs, name, env.Stdin)
			if err != nil {
				report.Errorf("%s: %v", name, diag.Cause(err))
				failed = true
				continue
			}
			src = opened
		}

		err := proc.process(ctx, src)
		if cerr := src.Close(); cerr != nil {
			logger.Warn("close failed", slog.String("source", name), slog.Any("error", cerr))
		}
		logger.Debug("source done",
			slog.String("source", name),
			slog.Int("lines", src.Lines()),
			slog.String("read", humanize.Bytes(uint64(src.Bytes()))),
		)
		if err != nil {
			var werr *writeError
			if errors.As(err, &werr) {
				report.Errorf("write error: %v", diag.Cause(werr.err))
				return 1
			}
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				flush()
				report.Errorf("%s: %v", name, ctxErr)
				return 1
			}
			report.Errorf("%s: %v", name, diag.Cause(err))
			failed = true
		}
	}

	if !flush() {
		return 1
	}
	if failed {
		return 1
	}
	return 0
}

// candidates describes the inputs for the sample picker. Sizes stay unknown
// for standard input and for files that cannot be inspected.
func candidates(fsys afero.Fs, files []string) []tui.SourceCandidate {
	out := make([]tui.SourceCandidate, 0, len(files))
	for _, name := range files {
		size := int64(-1)
		if name != source.Stdin {
			if info, err := fsys.Stat(name); err == nil {
				size = info.Size()
			}
		}
		out = append(out, tui.SourceCandidate{Name: name, Size: size})
	}
	return out
}

// choose opens the picked input, samples it and lets the user settle the
// selection. The sampled lines stay queued in the returned source.
func choose(ctx context.Context, opts cli.Options, env Env, name string) (*source.Source, extract.Selector, error) {
	src, err := source.Open(env.Fs, name, env.Stdin)
	if err != nil {
		return nil, extract.Selector{}, err
	}

	sample, err := src.Peek(opts.PreviewLines)
	if err != nil {
		src.Close()
		return nil, extract.Selector{}, err
	}

	sel, err := preview(ctx, tui.PreviewConfig{
		Source:    name,
		Sample:    sample,
		Selector:  opts.Selector,
		Delimiter: opts.Delimiter,
	})
	if err != nil {
		src.Close()
		return nil, extract.Selector{}, err
	}
	return src, sel, nil
}
