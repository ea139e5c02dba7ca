package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if got := Open("").Load(); got.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", got.Theme, defaultTheme)
	}
}

func TestLoad_ReadsDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "flowdeck")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "prefs.toml"), []byte("theme = \"Slate\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	store := Open("")
	if got := store.Load(); got.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", got.Theme, "Slate")
	}
	if store.Path() != filepath.Join(dir, "prefs.toml") {
		t.Fatalf("Path = %q, want %q", store.Path(), filepath.Join(dir, "prefs.toml"))
	}
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	store := Open(filepath.Join(t.TempDir(), "subdir", "prefs.toml"))

	if err := store.Save(Prefs{Theme: "Kanagawa"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if got := store.Load(); got.Theme != "Kanagawa" {
		t.Fatalf("Theme = %q, want %q", got.Theme, "Kanagawa")
	}
}

func TestLoad_FallsBackToDefault(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty theme", content: "theme = \"  \"\n"},
		{name: "invalid toml", content: "not valid toml {{{\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prefs.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			if got := Open(path).Load(); got.Theme != defaultTheme {
				t.Fatalf("Theme = %q, want %q", got.Theme, defaultTheme)
			}
		})
	}
}
