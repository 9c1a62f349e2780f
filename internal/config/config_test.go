package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if got := cfg.UI.SelectionColorOrDefault(); got != "#44475a" {
		t.Errorf("selection color default: got %q", got)
	}
	if got := cfg.Editor.ScrollMarginOrDefault(); got != 2 {
		t.Errorf("scroll margin default: got %d", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selva.toml")
	content := `
[ui]
selection_color = "#112233"
status_color = "#445566"

[editor]
scroll_margin = 5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := cfg.UI.SelectionColorOrDefault(); got != "#112233" {
		t.Errorf("selection color: got %q", got)
	}
	if got := cfg.UI.CursorColorOrDefault(); got != "#f8f8f2" {
		t.Errorf("cursor color should fall back: got %q", got)
	}
	if got := cfg.Editor.ScrollMarginOrDefault(); got != 5 {
		t.Errorf("scroll margin: got %d", got)
	}
}

func TestLoadBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selva.toml")
	if err := os.WriteFile(path, []byte("ui = not toml"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed config should fail")
	}
}
