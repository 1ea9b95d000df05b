package cli

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

const envPrefix = "QCUT_"

// Defaults are read from QCUT_* environment variables and seed the flag
// defaults; explicit flags win.
type Defaults struct {
	Delimiter    string `env:"DELIMITER" envDefault:"\t"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"warn"`
	PreviewLines int    `env:"PREVIEW_LINES" envDefault:"20"`
}

func LoadDefaults() (Defaults, error) {
	defaults, err := env.ParseAsWithOptions[Defaults](env.Options{
		Prefix: envPrefix,
	})
	if err != nil {
		return Defaults{}, errors.WithStack(err)
	}
	return defaults, nil
}
