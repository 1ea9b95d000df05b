package tui

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func writeThemeConfig(t *testing.T, configDir string, content string) {
	t.Helper()
	configPath := filepath.Join(configDir, "qcut", themeConfigFileName)
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadThemeFromConfigMissingFileUsesDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	theme, err := loadThemeFromConfig()
	if err != nil {
		t.Fatalf("loadThemeFromConfig() error = %v", err)
	}
	if theme.Name != "default" {
		t.Fatalf("theme name = %q, want default", theme.Name)
	}
	if theme.HeaderBg != "62" {
		t.Fatalf("header_bg = %q, want 62", theme.HeaderBg)
	}
}

func TestLoadThemeFromConfigMergesOverrides(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)

	writeThemeConfig(t, configDir, `{
  "default": "warm",
  "themes": {
    "warm": {
      "header_bg": "94",
      "error_fg": "123"
    }
  }
}`)

	theme, err := loadThemeFromConfig()
	if err != nil {
		t.Fatalf("loadThemeFromConfig() error = %v", err)
	}
	if theme.Name != "warm" {
		t.Fatalf("theme name = %q, want warm", theme.Name)
	}
	if theme.HeaderBg != "94" {
		t.Fatalf("header_bg = %q, want 94", theme.HeaderBg)
	}
	if theme.HeaderFg != "230" {
		t.Fatalf("header_fg = %q, want 230", theme.HeaderFg)
	}
	if theme.ErrorFg != "123" {
		t.Fatalf("error_fg = %q, want 123", theme.ErrorFg)
	}
}

func TestLoadThemeFromConfigMissingThemeReturnsError(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)

	writeThemeConfig(t, configDir, `{"default": "missing", "themes": {"warm": {"header_bg": "94"}}}`)

	_, err := loadThemeFromConfig()
	if err == nil {
		t.Fatal("loadThemeFromConfig() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Fatalf("error = %q, want missing theme error", err.Error())
	}
}

func TestLoadThemeFromConfigInvalidJSONReturnsError(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)

	writeThemeConfig(t, configDir, "{bad")

	if _, err := loadThemeFromConfig(); err == nil {
		t.Fatal("loadThemeFromConfig() error = nil, want error")
	}
}

func TestApplyThemeUpdatesStyles(t *testing.T) {
	resetThemeForTest()
	t.Cleanup(resetThemeForTest)

	theme := defaultTheme()
	theme.ErrorFg = "101"
	theme.LineNumberFg = "102"

	applyTheme(theme)

	if errorStyle.GetForeground() != lipgloss.Color("101") {
		t.Fatalf("error foreground = %v, want 101", errorStyle.GetForeground())
	}
	if lineNumberStyle.GetForeground() != lipgloss.Color("102") {
		t.Fatalf("line number foreground = %v, want 102", lineNumberStyle.GetForeground())
	}
}

func TestEnsureThemeLoadedAppliesConfigOnce(t *testing.T) {
	resetThemeForTest()
	t.Cleanup(resetThemeForTest)

	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)

	writeThemeConfig(t, configDir, `{"default": "first", "themes": {"first": {"result_fg": "111"}}}`)
	if err := ensureThemeLoaded(); err != nil {
		t.Fatalf("ensureThemeLoaded() error = %v", err)
	}
	if resultStyle.GetForeground() != lipgloss.Color("111") {
		t.Fatalf("result foreground = %v, want 111", resultStyle.GetForeground())
	}

	writeThemeConfig(t, configDir, `{"default": "second", "themes": {"second": {"result_fg": "222"}}}`)
	if err := ensureThemeLoaded(); err != nil {
		t.Fatalf("ensureThemeLoaded() error = %v", err)
	}
	if resultStyle.GetForeground() != lipgloss.Color("111") {
		t.Fatalf("result foreground = %v, want 111", resultStyle.GetForeground())
	}
}

func TestEnsureThemeLoadedReturnsError(t *testing.T) {
	resetThemeForTest()
	t.Cleanup(resetThemeForTest)

	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)
	writeThemeConfig(t, configDir, "{bad")

	if err := ensureThemeLoaded(); err == nil {
		t.Fatal("ensureThemeLoaded() error = nil, want error")
	}
}

func resetThemeForTest() {
	themeOnce = sync.Once{}
	themeErr = nil
	applyTheme(defaultTheme())
}
