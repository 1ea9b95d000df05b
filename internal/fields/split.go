// Package fields splits delimited lines while honoring double-quoted spans.
//
// Quoting is deliberately minimal: a double quote toggles between the quoted
// and unquoted states and is never part of a field's content. Doubled quotes
// ("") are not an escape. A quote that is never closed makes the rest of the
// line part of the current field.
package fields

import (
	"strings"
	"unicode/utf8"
)

const Quote = '"'

type scanState int

const (
	outsideQuotes scanState = iota
	insideQuotes
)

type tokenKind int

const (
	tokenContent tokenKind = iota
	tokenQuote
	tokenDelimiter
)

// scanner is the two-state machine behind Split.
type scanner struct {
	delim rune
	state scanState
}

func (s *scanner) step(r rune) tokenKind {
	switch s.state {
	case insideQuotes:
		if r == Quote {
			s.state = outsideQuotes
			return tokenQuote
		}
		return tokenContent
	default:
		switch {
		case r == Quote:
			s.state = insideQuotes
			return tokenQuote
		case r == s.delim:
			return tokenDelimiter
		}
		return tokenContent
	}
}

// Split breaks line into fields at every delimiter found outside quotes.
//
// The result always has 1 + (number of unquoted delimiters) elements, so a
// line without delimiters yields the whole line as its only field. Bytes that
// are not valid UTF-8 are copied through untouched.
func Split(line string, delim rune) []string {
	sc := scanner{delim: delim}
	var out []string
	var field strings.Builder

	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		switch sc.step(r) {
		case tokenDelimiter:
			out = append(out, field.String())
			field.Reset()
		case tokenContent:
			field.WriteString(line[i : i+size])
		}
		i += size
	}
	return append(out, field.String())
}

// ContainsDelimiter reports whether line has a delimiter outside quotes.
func ContainsDelimiter(line string, delim rune) bool {
	sc := scanner{delim: delim}
	for _, r := range line {
		if sc.step(r) == tokenDelimiter {
			return true
		}
	}
	return false
}

// Join concatenates fields with delim. A field that contains the delimiter is
// wrapped in quotes so that Split recovers the same fields.
func Join(record []string, delim rune) string {
	var b strings.Builder
	for i, field := range record {
		if i > 0 {
			b.WriteRune(delim)
		}
		if strings.ContainsRune(field, delim) {
			b.WriteRune(Quote)
			b.WriteString(field)
			b.WriteRune(Quote)
			continue
		}
		b.WriteString(field)
	}
	return b.String()
}
