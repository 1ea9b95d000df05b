package diag

import (
	"fmt"
	"io"
	"io/fs"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
)

// Reporter prints user-facing messages as "<program>: <message>".
//
// The prefix is colored only when w is a terminal that supports it.
type Reporter struct {
	w         io.Writer
	program   string
	errStyle  lipgloss.Style
	infoStyle lipgloss.Style
}

func NewReporter(w io.Writer, program string) *Reporter {
	renderer := lipgloss.NewRenderer(w)
	return &Reporter{
		w:         w,
		program:   program,
		errStyle:  renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		infoStyle: renderer.NewStyle().Foreground(lipgloss.Color("42")),
	}
}

func (r *Reporter) Errorf(format string, args ...any) {
	fmt.Fprintf(r.w, "%s %s\n", r.errStyle.Render(r.program+":"), fmt.Sprintf(format, args...))
}

func (r *Reporter) Infof(format string, args ...any) {
	fmt.Fprintf(r.w, "%s %s\n", r.infoStyle.Render(r.program+":"), fmt.Sprintf(format, args...))
}

// Cause strips path decorations so that a failed open of "a.txt" reads
// "no such file or directory" rather than repeating the name.
func Cause(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return errors.Cause(err)
}
