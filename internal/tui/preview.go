package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/chojs23/qcut/internal/extract"
	"github.com/chojs23/qcut/internal/positions"
)

var ErrPreviewQuit = errors.New("preview aborted")

// PreviewConfig is the input of an interactive preview session.
type PreviewConfig struct {
	Source    string
	Sample    []string
	Selector  extract.Selector
	Delimiter rune
}

type previewModel struct {
	input  textinput.Model
	source string
	sample []string
	delim  rune

	mode     extract.Mode
	selector extract.Selector
	parseErr error

	width    int
	accepted bool
	quit     bool
}

// Preview lets the user edit the list and mode against sample lines and
// returns the accepted selector. Keys are read from the terminal so that
// standard input may carry data; the screen is drawn on stderr.
func Preview(ctx context.Context, cfg PreviewConfig) (extract.Selector, error) {
	if err := ensureThemeLoaded(); err != nil {
		return extract.Selector{}, err
	}

	model := newPreviewModel(cfg)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInputTTY(),
		tea.WithOutput(os.Stderr),
		tea.WithAltScreen(),
	)
	finalModel, err := program.Run()
	if err != nil {
		return extract.Selector{}, fmt.Errorf("preview TUI error: %w", err)
	}

	result, ok := finalModel.(previewModel)
	if !ok {
		return extract.Selector{}, fmt.Errorf("preview returned unexpected model")
	}
	return result.result()
}

func newPreviewModel(cfg PreviewConfig) previewModel {
	input := textinput.New()
	input.Prompt = "list> "
	input.Placeholder = "1,3,5-7"
	input.SetValue(cfg.Selector.Positions().String())
	input.Focus()

	mode := cfg.Selector.Mode()
	if mode == 0 {
		mode = extract.ModeFields
	}
	delim := cfg.Delimiter
	if delim == 0 {
		delim = extract.DefaultDelimiter
	}

	m := previewModel{
		input:  input,
		source: cfg.Source,
		sample: cfg.Sample,
		delim:  delim,
		mode:   mode,
	}
	m.refresh()
	return m
}

func (m previewModel) result() (extract.Selector, error) {
	if m.quit || !m.accepted {
		return extract.Selector{}, ErrPreviewQuit
	}
	return m.selector, nil
}

// refresh re-parses the list. On a parse error the last valid selector
// stays on screen.
func (m *previewModel) refresh() {
	list, err := positions.Parse(m.input.Value())
	if err != nil {
		m.parseErr = err
		if !m.selector.IsZero() && m.selector.Mode() != m.mode {
			m.selector = extract.New(m.mode, m.selector.Positions(), m.delim)
		}
		return
	}
	m.parseErr = nil
	m.selector = extract.New(m.mode, list, m.delim)
}

func nextMode(mode extract.Mode) extract.Mode {
	switch mode {
	case extract.ModeBytes:
		return extract.ModeCharacters
	case extract.ModeCharacters:
		return extract.ModeFields
	default:
		return extract.ModeBytes
	}
}

func (m previewModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quit = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.parseErr != nil || m.selector.IsZero() {
				return m, nil
			}
			m.accepted = true
			return m, tea.Quit
		case tea.KeyTab:
			m.mode = nextMode(m.mode)
			m.refresh()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 0)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refresh()
	return m, cmd
}

func (m previewModel) View() string {
	var b strings.Builder

	header := "qcut preview"
	if m.source != "" {
		header += "  " + m.source
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	mode := "mode: " + m.mode.String()
	if m.mode == extract.ModeFields {
		mode += "  delimiter: " + strconv.QuoteRune(m.delim)
	}
	b.WriteString(titleStyle.Render(mode))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.parseErr != nil {
		b.WriteString(errorStyle.Render(m.parseErr.Error()))
	}
	b.WriteString("\n")

	numberWidth := len(strconv.Itoa(len(m.sample)))
	for i, line := range m.sample {
		number := fmt.Sprintf("%*d ", numberWidth, i+1)
		out := displayText(m.selector.Extract(line))
		if m.width > 0 {
			out = runewidth.Truncate(out, max(m.width-numberWidth-1, 1), "…")
		}
		b.WriteString(lineNumberStyle.Render(number))
		b.WriteString(resultStyle.Render(out))
		b.WriteString("\n")
	}
	if len(m.sample) == 0 {
		b.WriteString(separatorStyle.Render("(no input lines)"))
		b.WriteString("\n")
	}

	b.WriteString(footerStyle.Render("tab: mode  enter: apply  esc: quit"))
	return b.String()
}

// displayText makes tabs and other control characters visible.
func displayText(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return '→'
		case r < 0x20 || r == 0x7f:
			return '·'
		}
		return r
	}, s)
}
