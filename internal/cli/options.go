package cli

import (
	"log/slog"

	"github.com/chojs23/qcut/internal/extract"
)

// Options is the fully-parsed configuration for a single invocation.
//
// Selector is already validated: exactly one of bytes, characters or fields
// was requested and its list parsed.
type Options struct {
	Selector  extract.Selector
	Delimiter rune
	Files     []string

	OnlyDelimited bool

	Interactive  bool
	PreviewLines int

	LogLevel slog.Level
}
