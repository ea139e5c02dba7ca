package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the flowdeck settings.
type Config struct {
	APIBase        string
	APIVersion     string
	Environment    string
	PageSize       int
	TokenFile      string
	LogFile        string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration
}

const (
	defaultConfigPath     = "~/.config/flowdeck/config.toml"
	defaultAPIBase        = "https://api.flow.microsoft.com"
	defaultAPIVersion     = "2016-11-01"
	defaultPageSize       = 50
	defaultLogFile        = "~/.local/state/flowdeck/flowdeck.log"
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
	defaultTimeoutSeconds = 30
)

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	return Config{
		APIBase:        defaultAPIBase,
		APIVersion:     defaultAPIVersion,
		PageSize:       defaultPageSize,
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       defaultLogLevel,
		LogFormat:      defaultLogFormat,
		RequestTimeout: defaultTimeoutSeconds * time.Second,
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase        string `toml:"api_base"`
		APIVersion     string `toml:"api_version"`
		Environment    string `toml:"environment"`
		PageSize       int    `toml:"page_size"`
		TokenFile      string `toml:"token_file"`
		LogFile        string `toml:"log_file"`
		LogLevel       string `toml:"log_level"`
		LogFormat      string `toml:"log_format"`
		TimeoutSeconds int    `toml:"request_timeout_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(raw.APIVersion); v != "" {
		cfg.APIVersion = v
	}
	cfg.Environment = strings.TrimSpace(raw.Environment)
	if raw.PageSize > 0 {
		cfg.PageSize = raw.PageSize
	}
	if v := strings.TrimSpace(raw.TokenFile); v != "" {
		cfg.TokenFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = ExpandLogPath(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.LogFormat); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if raw.TimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}

	return cfg, nil
}

// ExpandLogPath expands a log destination. "-" means stderr and is
// returned unchanged.
func ExpandLogPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "-" {
		return trimmed
	}
	return mustExpand(trimmed)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
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
