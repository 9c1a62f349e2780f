// Package config handles demo configuration loading from TOML files.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	UI     UIConfig     `toml:"ui"`
	Editor EditorConfig `toml:"editor"`
}

// UIConfig holds the demo's color settings as hex strings.
type UIConfig struct {
	SelectionColor string `toml:"selection_color"`
	CursorColor    string `toml:"cursor_color"`
	StatusColor    string `toml:"status_color"`
}

// SelectionColorOrDefault returns the selection background color.
func (u UIConfig) SelectionColorOrDefault() string {
	if u.SelectionColor == "" {
		return "#44475a"
	}
	return u.SelectionColor
}

// CursorColorOrDefault returns the cursor-cell background color.
func (u UIConfig) CursorColorOrDefault() string {
	if u.CursorColor == "" {
		return "#f8f8f2"
	}
	return u.CursorColor
}

// StatusColorOrDefault returns the status bar foreground color.
func (u UIConfig) StatusColorOrDefault() string {
	if u.StatusColor == "" {
		return "#6272a4"
	}
	return u.StatusColor
}

// EditorConfig holds scrolling behaviour.
type EditorConfig struct {
	ScrollMargin int `toml:"scroll_margin"`
}

// ScrollMarginOrDefault returns the rows kept visible around the main
// cursor while scrolling.
func (e EditorConfig) ScrollMarginOrDefault() int {
	if e.ScrollMargin <= 0 {
		return 2
	}
	return e.ScrollMargin
}

// Load reads configuration from a TOML file. A missing file is not an
// error: the demo runs on defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
