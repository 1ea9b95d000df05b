// Package source turns named inputs into a stream of lines.
package source

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Stdin is the input name that reads standard input.
const Stdin = "-"

// Source yields the lines of one input with the line terminator removed.
type Source struct {
	Name string

	closer  io.Closer
	reader  *bufio.Reader
	pending []string

	lines int
	bytes int64
}

// Open opens name on fsys, or wraps stdin when name is "-".
func Open(fsys afero.Fs, name string, stdin io.Reader) (*Source, error) {
	if name == Stdin {
		return newSource(name, stdin, nil), nil
	}

	f, err := fsys.Open(name)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return newSource(name, f, f), nil
}

func newSource(name string, r io.Reader, closer io.Closer) *Source {
	return &Source{
		Name:   name,
		closer: closer,
		reader: bufio.NewReader(r),
	}
}

// ReadLine returns the next line without its "\n" or "\r\n". A final line
// without a terminator is still returned. At the end of input it returns
// io.EOF.
func (s *Source) ReadLine() (string, error) {
	if len(s.pending) > 0 {
		line := s.pending[0]
		s.pending = s.pending[1:]
		return line, nil
	}
	return s.read()
}

// Peek reads ahead up to n lines without consuming them; later ReadLine
// calls return them first. Fewer lines are returned at end of input.
func (s *Source) Peek(n int) ([]string, error) {
	for len(s.pending) < n {
		line, err := s.read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		s.pending = append(s.pending, line)
	}
	if n > len(s.pending) {
		n = len(s.pending)
	}
	return append([]string(nil), s.pending[:n]...), nil
}

func (s *Source) read() (string, error) {
	line, err := s.reader.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return "", errors.Wrapf(err, "read %s", s.Name)
		}
		if line == "" {
			return "", io.EOF
		}
	}
	s.lines++
	s.bytes += int64(len(line))
	return trimEOL(line), nil
}

// Lines reports how many lines have been read from the input so far.
func (s *Source) Lines() int {
	return s.lines
}

// Bytes reports how many bytes have been read from the input so far.
func (s *Source) Bytes() int64 {
	return s.bytes
}

// Close releases the underlying file. Standard input is left open.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return errors.WithStack(s.closer.Close())
}

func trimEOL(line string) string {
	if !strings.HasSuffix(line, "\n") {
		return line
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
