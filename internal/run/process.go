package run

import (
	"bufio"
	"context"
	"io"

	"github.com/chojs23/qcut/internal/extract"
	"github.com/chojs23/qcut/internal/source"
)

// writeError marks failures of the output sink, which end the whole run.
type writeError struct {
	err error
}

func (e *writeError) Error() string {
	return e.err.Error()
}

func (e *writeError) Unwrap() error {
	return e.err
}

type processor struct {
	selector      extract.Selector
	onlyDelimited bool
	out           *bufio.Writer
}

// process writes one output line per input line until src is exhausted,
// fails to read or ctx is done.
func (p *processor) process(ctx context.Context, src *source.Source) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := src.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if p.onlyDelimited && !p.selector.HasDelimiter(line) {
			continue
		}
		if _, err := p.out.WriteString(p.selector.Extract(line)); err != nil {
			return &writeError{err: err}
		}
		if err := p.out.WriteByte('\n'); err != nil {
			return &writeError{err: err}
		}
	}
}
