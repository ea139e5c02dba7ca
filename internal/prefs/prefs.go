// Package prefs persists flowdeck UI preferences in
// ~/.config/flowdeck/prefs.toml. Only presentation settings live here.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences.
type Prefs struct {
	Theme string `toml:"theme"`
}

const (
	defaultPrefsPath = "~/.config/flowdeck/prefs.toml"
	defaultTheme     = "Nightfox"
)

// Defaults returns the preferences used when nothing is stored.
func Defaults() Prefs {
	return Prefs{Theme: defaultTheme}
}

// Store reads and writes one prefs file.
type Store struct {
	path string
}

// Open returns a Store for path; an empty path selects the default location.
func Open(path string) Store {
	return Store{path: path}
}

// Path returns the resolved file path, or the raw path if it cannot be
// resolved.
func (s Store) Path() string {
	resolved, err := resolvePath(s.path)
	if err != nil {
		return s.path
	}
	return resolved
}

// Load returns stored preferences. Any read or parse failure yields the
// defaults.
func (s Store) Load() Prefs {
	resolved, err := resolvePath(s.path)
	if err != nil {
		return Defaults()
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return Defaults()
	}

	p := Defaults()
	if err := toml.Unmarshal(data, &p); err != nil {
		return Defaults()
	}
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	return p
}

// Save writes preferences, creating directories as needed.
func (s Store) Save(p Prefs) error {
	resolved, err := resolvePath(s.path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		trimmed = defaultPrefsPath
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
