package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

// SourceCandidate is an input offered as the preview sample.
type SourceCandidate struct {
	Name string
	Size int64 // -1 when unknown, e.g. standard input
}

type sourceItem struct {
	index int
	name  string
	size  int64
}

func (s sourceItem) Title() string {
	return s.name
}

func (s sourceItem) Description() string {
	return ""
}

func (s sourceItem) FilterValue() string {
	return s.name
}

type sourceItemDelegate struct{}

func (d sourceItemDelegate) Height() int {
	return 1
}

func (d sourceItemDelegate) Spacing() int {
	return 0
}

func (d sourceItemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d sourceItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	src, ok := item.(sourceItem)
	if !ok {
		return
	}
	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}
	size := "stream"
	if src.size >= 0 {
		size = humanize.Bytes(uint64(src.size))
	}
	sizeText := fmt.Sprintf("%8s", size)
	fmt.Fprint(w, cursor+lineNumberStyle.Render(sizeText)+"  "+src.name)
}

type sourceSelectModel struct {
	list     list.Model
	selected int
	err      error
}

// SelectSource asks which input the preview samples and returns its index.
func SelectSource(ctx context.Context, candidates []SourceCandidate) (int, error) {
	if len(candidates) == 1 {
		return 0, nil
	}
	if err := ensureThemeLoaded(); err != nil {
		return 0, err
	}

	model := newSourceSelectModel(candidates)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInputTTY(),
		tea.WithOutput(os.Stderr),
		tea.WithAltScreen(),
	)
	finalModel, err := program.Run()
	if err != nil {
		return 0, fmt.Errorf("source selector TUI error: %w", err)
	}

	result, ok := finalModel.(sourceSelectModel)
	if !ok {
		return 0, fmt.Errorf("source selector returned unexpected model")
	}
	if result.err != nil {
		return 0, result.err
	}
	if result.selected < 0 {
		return 0, fmt.Errorf("no input selected")
	}
	return result.selected, nil
}

func newSourceSelectModel(candidates []SourceCandidate) sourceSelectModel {
	items := make([]list.Item, 0, len(candidates))
	for i, candidate := range candidates {
		items = append(items, sourceItem{index: i, name: candidate.Name, size: candidate.Size})
	}

	model := sourceSelectModel{list: list.New(items, sourceItemDelegate{}, 0, 0), selected: -1}
	model.list.Title = "Select the input to preview"
	model.list.SetShowHelp(false)
	model.list.SetShowStatusBar(false)
	model.list.SetShowPagination(false)
	model.list.SetFilteringEnabled(false)
	return model
}

func (m sourceSelectModel) Init() tea.Cmd {
	return nil
}

func (m sourceSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.err = ErrPreviewQuit
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(sourceItem); ok {
				m.selected = item.index
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		width := msg.Width
		height := msg.Height
		if height < 5 {
			height = 5
		}
		m.list.SetSize(width, height-2)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m sourceSelectModel) View() string {
	return m.list.View() + "\n" + footerStyle.Render("up/down: move  enter: select  q: quit")
}
