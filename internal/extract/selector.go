package extract

import (
	"strings"

	"github.com/chojs23/qcut/internal/fields"
	"github.com/chojs23/qcut/internal/positions"
)

type Mode int

const (
	ModeBytes Mode = iota + 1
	ModeCharacters
	ModeFields
)

func (m Mode) String() string {
	switch m {
	case ModeBytes:
		return "bytes"
	case ModeCharacters:
		return "characters"
	case ModeFields:
		return "fields"
	default:
		return "none"
	}
}

const DefaultDelimiter = '\t'

// Selector is one selection mode bound to its position list.
//
// Build it with Bytes, Characters or Fields; the zero Selector selects
// nothing. The delimiter is only carried in field mode.
type Selector struct {
	mode      Mode
	positions positions.List
	delim     rune
}

func Bytes(list positions.List) Selector {
	return Selector{mode: ModeBytes, positions: list}
}

func Characters(list positions.List) Selector {
	return Selector{mode: ModeCharacters, positions: list}
}

func Fields(list positions.List, delim rune) Selector {
	return Selector{mode: ModeFields, positions: list, delim: delim}
}

// New builds the selector for mode. delim is ignored unless mode is
// ModeFields.
func New(mode Mode, list positions.List, delim rune) Selector {
	switch mode {
	case ModeBytes:
		return Bytes(list)
	case ModeCharacters:
		return Characters(list)
	case ModeFields:
		return Fields(list, delim)
	}
	return Selector{}
}

func (s Selector) Mode() Mode {
	return s.mode
}

func (s Selector) Positions() positions.List {
	return s.positions
}

// Delimiter returns the field delimiter, or 0 outside field mode.
func (s Selector) Delimiter() rune {
	return s.delim
}

func (s Selector) IsZero() bool {
	return s.mode == 0
}

// HasDelimiter reports whether line contains an unquoted delimiter. It is
// always true outside field mode.
func (s Selector) HasDelimiter(line string) bool {
	if s.mode != ModeFields {
		return true
	}
	return fields.ContainsDelimiter(line, s.delim)
}

// Extract returns the selected parts of line in ascending position order.
//
// Positions past the end of the line contribute nothing. Bytes and
// characters are concatenated directly; fields are joined with the input
// delimiter.
func (s Selector) Extract(line string) string {
	switch s.mode {
	case ModeBytes:
		return s.extractBytes(line)
	case ModeCharacters:
		return s.extractCharacters(line)
	case ModeFields:
		return s.extractFields(line)
	}
	return ""
}

// extractBytes may cut a multi-byte character in half; that is accepted.
func (s Selector) extractBytes(line string) string {
	var b strings.Builder
	s.positions.Each(len(line), func(pos int) {
		b.WriteByte(line[pos-1])
	})
	return b.String()
}

func (s Selector) extractCharacters(line string) string {
	// Byte offset of every character; invalid bytes count as one character.
	starts := make([]int, 0, len(line))
	for i := range line {
		starts = append(starts, i)
	}

	var b strings.Builder
	s.positions.Each(len(starts), func(pos int) {
		end := len(line)
		if pos < len(starts) {
			end = starts[pos]
		}
		b.WriteString(line[starts[pos-1]:end])
	})
	return b.String()
}

func (s Selector) extractFields(line string) string {
	record := fields.Split(line, s.delim)
	selected := make([]string, 0, len(record))
	s.positions.Each(len(record), func(pos int) {
		selected = append(selected, record[pos-1])
	})
	return fields.Join(selected, s.delim)
}
