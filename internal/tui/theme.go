package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

const themeConfigFileName = "themes.json"

type ThemeConfig struct {
	Default string           `json:"default"`
	Themes  map[string]Theme `json:"themes"`
}

type Theme struct {
	Name string `json:"-"`

	TitleFg      string `json:"title_fg"`
	HeaderBg     string `json:"header_bg"`
	HeaderFg     string `json:"header_fg"`
	FooterBg     string `json:"footer_bg"`
	FooterFg     string `json:"footer_fg"`
	LineNumberFg string `json:"line_number"`
	ResultFg     string `json:"result_fg"`
	ErrorFg      string `json:"error_fg"`
	SeparatorFg  string `json:"separator_fg"`
}

var (
	themeOnce sync.Once
	themeErr  error
)

var (
	titleStyle      lipgloss.Style
	headerStyle     lipgloss.Style
	footerStyle     lipgloss.Style
	lineNumberStyle lipgloss.Style
	resultStyle     lipgloss.Style
	errorStyle      lipgloss.Style
	separatorStyle  lipgloss.Style
)

func init() {
	applyTheme(defaultTheme())
}

func ensureThemeLoaded() error {
	themeOnce.Do(func() {
		theme, err := loadThemeFromConfig()
		if err != nil {
			themeErr = err
			return
		}
		applyTheme(theme)
	})
	return themeErr
}

func loadThemeFromConfig() (Theme, error) {
	fallback := defaultTheme()
	configPath, err := themeConfigPath()
	if err != nil {
		return fallback, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fallback, nil
		}
		return Theme{}, fmt.Errorf("read theme config: %w", err)
	}

	var cfg ThemeConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Theme{}, fmt.Errorf("parse theme config: %w", err)
	}

	themeName := strings.TrimSpace(cfg.Default)
	if themeName == "" {
		themeName = "default"
	}

	theme, ok := cfg.Themes[themeName]
	if !ok {
		return Theme{}, fmt.Errorf("theme %q not found in %s", themeName, configPath)
	}
	theme.Name = themeName
	return mergeTheme(fallback, theme), nil
}

func themeConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "qcut", themeConfigFileName), nil
}

func defaultTheme() Theme {
	return Theme{
		Name:         "default",
		TitleFg:      "170",
		HeaderBg:     "62",
		HeaderFg:     "230",
		FooterBg:     "236",
		FooterFg:     "243",
		LineNumberFg: "241",
		ResultFg:     "231",
		ErrorFg:      "196",
		SeparatorFg:  "244",
	}
}

func mergeTheme(base Theme, override Theme) Theme {
	return Theme{
		Name:         override.Name,
		TitleFg:      pickColor(base.TitleFg, override.TitleFg),
		HeaderBg:     pickColor(base.HeaderBg, override.HeaderBg),
		HeaderFg:     pickColor(base.HeaderFg, override.HeaderFg),
		FooterBg:     pickColor(base.FooterBg, override.FooterBg),
		FooterFg:     pickColor(base.FooterFg, override.FooterFg),
		LineNumberFg: pickColor(base.LineNumberFg, override.LineNumberFg),
		ResultFg:     pickColor(base.ResultFg, override.ResultFg),
		ErrorFg:      pickColor(base.ErrorFg, override.ErrorFg),
		SeparatorFg:  pickColor(base.SeparatorFg, override.SeparatorFg),
	}
}

func pickColor(base string, override string) string {
	if override != "" {
		return override
	}
	return base
}

func applyTheme(theme Theme) {
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.TitleFg)).
		Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Background(lipgloss.Color(theme.HeaderBg)).
		Foreground(lipgloss.Color(theme.HeaderFg)).
		Padding(0, 2)

	footerStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(theme.FooterBg)).
		Foreground(lipgloss.Color(theme.FooterFg)).
		Padding(0, 2)

	lineNumberStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.LineNumberFg))

	resultStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.ResultFg))

	errorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.ErrorFg)).
		Bold(true)

	separatorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.SeparatorFg))
}
