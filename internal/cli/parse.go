package cli

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/chojs23/qcut/internal/diag"
	"github.com/chojs23/qcut/internal/extract"
	"github.com/chojs23/qcut/internal/fields"
	"github.com/chojs23/qcut/internal/positions"
	"github.com/chojs23/qcut/internal/source"
)

var ErrHelp = errors.New("help requested")
var ErrVersion = errors.New("version requested")

var (
	ErrNoList        = errors.New("you must specify a list of bytes, characters, or fields")
	ErrMultipleLists = errors.New("only one type of list may be specified")
)

const (
	flagBytes         = "bytes"
	flagCharacters    = "characters"
	flagFields        = "fields"
	flagDelimiter     = "delimiter"
	flagOnlyDelimited = "only-delimited"
	flagInteractive   = "interactive"
	flagPreviewLines  = "preview-lines"
	flagLogLevel      = "log-level"
	flagVerbose       = "verbose"
	flagHelp          = "help"
	flagVersion       = "version"
)

// Parse validates args (without the program name) into Options.
func Parse(args []string) (Options, error) {
	defaults, err := LoadDefaults()
	if err != nil {
		return Options{}, errors.Wrap(err, "read QCUT_* environment")
	}

	var opts Options
	ran := false

	app := &cli.App{
		Name:            "qcut",
		HideHelp:        true,
		HideHelpCommand: true,
		HideVersion:     true,
		Writer:          io.Discard,
		ErrWriter:       io.Discard,
		Flags:           flagsFor(defaults),
		Action: func(c *cli.Context) error {
			ran = true
			parsed, err := optionsFromContext(c)
			if err != nil {
				return err
			}
			opts = parsed
			return nil
		},
		OnUsageError: func(c *cli.Context, err error, isSubcommand bool) error {
			return fmt.Errorf("%w\n\n%s", err, Usage())
		},
		ExitErrHandler: func(c *cli.Context, err error) {},
	}

	if err := app.Run(append([]string{"qcut"}, args...)); err != nil {
		return Options{}, err
	}
	if !ran {
		return Options{}, ErrHelp
	}
	return opts, nil
}

func flagsFor(defaults Defaults) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: flagBytes, Aliases: []string{"b"}, Usage: "select only these bytes"},
		&cli.StringFlag{Name: flagCharacters, Aliases: []string{"c"}, Usage: "select only these characters"},
		&cli.StringFlag{Name: flagFields, Aliases: []string{"f"}, Usage: "select only these fields"},
		&cli.StringFlag{Name: flagDelimiter, Aliases: []string{"d"}, Value: defaults.Delimiter, Usage: "use DELIM instead of TAB for field delimiter"},
		&cli.BoolFlag{Name: flagOnlyDelimited, Aliases: []string{"s"}, Usage: "do not print lines not containing delimiters"},
		&cli.BoolFlag{Name: flagInteractive, Aliases: []string{"i"}, Usage: "preview the selection interactively before processing"},
		&cli.IntFlag{Name: flagPreviewLines, Value: defaults.PreviewLines, Usage: "number of sample lines shown by --interactive"},
		&cli.StringFlag{Name: flagLogLevel, Value: defaults.LogLevel, Usage: "debug|info|warn|error"},
		&cli.BoolFlag{Name: flagVerbose, Usage: "shorthand for --log-level debug"},
		&cli.BoolFlag{Name: flagHelp, Aliases: []string{"h"}, Usage: "show help"},
		&cli.BoolFlag{Name: flagVersion, Usage: "show version"},
	}
}

func optionsFromContext(c *cli.Context) (Options, error) {
	if c.Bool(flagHelp) {
		return Options{}, ErrHelp
	}
	if c.Bool(flagVersion) {
		return Options{}, ErrVersion
	}

	var opts Options

	level, err := diag.ParseLevel(c.String(flagLogLevel))
	if err != nil {
		return Options{}, err
	}
	if c.Bool(flagVerbose) {
		level, _ = diag.ParseLevel("debug")
	}
	opts.LogLevel = level

	opts.Interactive = c.Bool(flagInteractive)
	opts.PreviewLines = c.Int(flagPreviewLines)
	if opts.PreviewLines < 1 {
		return Options{}, errors.Errorf("invalid --%s: %d (must be positive)", flagPreviewLines, opts.PreviewLines)
	}

	mode, list, err := selectedList(c, opts.Interactive)
	if err != nil {
		return Options{}, err
	}

	if mode != extract.ModeFields {
		if c.IsSet(flagDelimiter) {
			return Options{}, errors.New("an input delimiter may be specified only when operating on fields")
		}
		if c.Bool(flagOnlyDelimited) {
			return Options{}, errors.New("suppressing non-delimited lines makes sense only when operating on fields")
		}
	}

	// The delimiter only matters once fields can be selected.
	delim := extract.DefaultDelimiter
	if mode == extract.ModeFields || opts.Interactive {
		delim, err = parseDelimiter(c.String(flagDelimiter))
		if err != nil {
			return Options{}, err
		}
	}
	opts.Delimiter = delim
	opts.Selector = extract.New(mode, list, delim)
	opts.OnlyDelimited = c.Bool(flagOnlyDelimited)

	opts.Files = c.Args().Slice()
	if len(opts.Files) == 0 {
		opts.Files = []string{source.Stdin}
	}
	return opts, nil
}

// selectedList enforces that exactly one list flag is present. The
// interactive preview may start without one, on field 1.
func selectedList(c *cli.Context, interactive bool) (extract.Mode, positions.List, error) {
	candidates := []struct {
		flag string
		mode extract.Mode
	}{
		{flagBytes, extract.ModeBytes},
		{flagCharacters, extract.ModeCharacters},
		{flagFields, extract.ModeFields},
	}

	var mode extract.Mode
	var spec, name string
	for _, candidate := range candidates {
		if !c.IsSet(candidate.flag) {
			continue
		}
		if mode != 0 {
			return 0, positions.List{}, ErrMultipleLists
		}
		mode = candidate.mode
		name = candidate.flag
		spec = c.String(candidate.flag)
	}

	if mode == 0 {
		if interactive {
			return extract.ModeFields, positions.MustParse("1"), nil
		}
		return 0, positions.List{}, fmt.Errorf("%w\n\n%s", ErrNoList, Usage())
	}

	list, err := positions.Parse(spec)
	if err != nil {
		return 0, positions.List{}, errors.Wrapf(err, "invalid %s list", strings.TrimSuffix(name, "s"))
	}
	return mode, list, nil
}

func parseDelimiter(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, errors.Errorf("the delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return 0, errors.Errorf("the delimiter must be valid UTF-8, got %q", s)
	}
	if r == fields.Quote {
		return 0, errors.New("the delimiter may not be the quote character")
	}
	return r, nil
}

func Usage() string {
	return strings.TrimSpace(`Usage:
  qcut -b LIST [FILE...]
  qcut -c LIST [FILE...]
  qcut -f LIST [-d DELIM] [-s] [FILE...]
  qcut -i [-f LIST] [FILE...]

Exactly one of -b, -c or -f is required. LIST is made of positive numbers
and inclusive ranges separated by commas, e.g. 1,3,5-7. Positions are
deduplicated and printed in ascending order. With no FILE, or when FILE
is -, read standard input.

Selection:
  -b, --bytes LIST            Select only these bytes
  -c, --characters LIST       Select only these characters
  -f, --fields LIST           Select only these fields; a delimiter inside
                              double quotes does not split a field
  -d, --delimiter DELIM       Field delimiter (default TAB, $QCUT_DELIMITER)
  -s, --only-delimited        Skip lines without an unquoted delimiter

Preview:
  -i, --interactive           Edit the selection against sample lines first
  --preview-lines N           Sample size (default 20, $QCUT_PREVIEW_LINES)

Options:
  --log-level LEVEL           debug|info|warn|error ($QCUT_LOG_LEVEL)
  --verbose                   Same as --log-level debug
  --version                   Show version
  -h, --help                  Show help
`)
}
