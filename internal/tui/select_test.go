package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

func TestSourceItemMethods(t *testing.T) {
	item := sourceItem{name: "data.csv"}
	if item.Title() != "data.csv" {
		t.Fatalf("Title = %q, want data.csv", item.Title())
	}
	if item.Description() != "" {
		t.Fatalf("Description = %q, want empty", item.Description())
	}
	if item.FilterValue() != "data.csv" {
		t.Fatalf("FilterValue = %q, want data.csv", item.FilterValue())
	}
}

func TestSourceItemDelegateLayout(t *testing.T) {
	delegate := sourceItemDelegate{}
	if delegate.Height() != 1 {
		t.Fatalf("Height = %d, want 1", delegate.Height())
	}
	if delegate.Spacing() != 0 {
		t.Fatalf("Spacing = %d, want 0", delegate.Spacing())
	}

	model := list.New(nil, delegate, 0, 0)
	if cmd := delegate.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, &model); cmd != nil {
		t.Fatalf("expected nil cmd from delegate.Update")
	}
}

func TestSourceItemDelegateRender(t *testing.T) {
	items := []list.Item{
		sourceItem{index: 0, name: "-", size: -1},
		sourceItem{index: 1, name: "b.csv", size: 2048},
	}
	model := list.New(items, sourceItemDelegate{}, 0, 0)
	model.Select(0)

	delegate := sourceItemDelegate{}
	var buf bytes.Buffer
	delegate.Render(&buf, model, 0, items[0])
	output := buf.String()
	if !strings.HasPrefix(output, "> ") {
		t.Fatalf("output = %q, want selected cursor prefix", output)
	}
	if !strings.Contains(output, "stream") {
		t.Fatalf("output = %q, want stream label", output)
	}

	buf.Reset()
	delegate.Render(&buf, model, 1, items[1])
	output = buf.String()
	if !strings.HasPrefix(output, "  ") {
		t.Fatalf("output = %q, want unselected prefix", output)
	}
	if !strings.Contains(output, "2.0 kB") || !strings.Contains(output, "b.csv") {
		t.Fatalf("output = %q, want size and name", output)
	}
}

func TestSourceSelectModelUpdateEnter(t *testing.T) {
	model := newSourceSelectModel([]SourceCandidate{{Name: "a.csv", Size: 1}, {Name: "b.csv", Size: 2}})
	model.list.Select(1)

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result := updated.(sourceSelectModel)
	if result.selected != 1 {
		t.Fatalf("selected = %d, want 1", result.selected)
	}
}

func TestSourceSelectModelUpdateQuit(t *testing.T) {
	model := newSourceSelectModel([]SourceCandidate{{Name: "a.csv"}})

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	result := updated.(sourceSelectModel)
	if !errors.Is(result.err, ErrPreviewQuit) {
		t.Fatalf("err = %v, want ErrPreviewQuit", result.err)
	}
}

func TestSourceSelectModelWindowResize(t *testing.T) {
	model := newSourceSelectModel([]SourceCandidate{{Name: "a.csv"}})

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 40, Height: 4})
	result := updated.(sourceSelectModel)
	if result.list.Width() != 40 {
		t.Fatalf("Width = %d, want 40", result.list.Width())
	}
	if result.list.Height() != 3 {
		t.Fatalf("Height = %d, want 3", result.list.Height())
	}
}

func TestSourceSelectModelView(t *testing.T) {
	model := newSourceSelectModel([]SourceCandidate{{Name: "a.csv"}})
	view := model.View()
	if !strings.Contains(view, "up/down: move") {
		t.Fatalf("view = %q, want help line", view)
	}
}

func TestSelectSourceSingleCandidate(t *testing.T) {
	idx, err := SelectSource(context.Background(), []SourceCandidate{{Name: "-", Size: -1}})
	if err != nil {
		t.Fatalf("SelectSource() error = %v", err)
	}
	if idx != 0 {
		t.Fatalf("SelectSource() = %d, want 0", idx)
	}
}
