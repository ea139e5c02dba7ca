package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/five82/flowdeck/internal/alerts"
	"github.com/five82/flowdeck/internal/config"
	"github.com/five82/flowdeck/internal/flowapi"
	"github.com/five82/flowdeck/internal/prefs"
	"github.com/five82/flowdeck/internal/state"
	"github.com/five82/flowdeck/internal/token"
	"github.com/five82/flowdeck/internal/ui"
)

// Options configure a flowdeck session. Empty fields fall back to the
// config file.
type Options struct {
	ConfigPath  string
	PrefsPath   string // empty uses default ~/.config/flowdeck/prefs.toml
	Token       string
	Environment string
	LogFile     string
	LogLevel    string

	// Interactive allows prompting for a token when none was supplied.
	Interactive bool
	// Prompt asks for the token; nil uses token.Prompt.
	Prompt func(context.Context) (string, error)
	// Stderr receives logs when the log file is "-"; nil uses os.Stderr.
	Stderr io.Writer
}

// Session is a configured client plus everything derived from startup.
type Session struct {
	Config config.Config
	Logger *slog.Logger
	Client *flowapi.Client
	Claims token.Claims
	Source token.Source

	closeLog func() error
}

// Close releases the log file.
func (s *Session) Close() error {
	if s == nil || s.closeLog == nil {
		return nil
	}
	return s.closeLog()
}

// Open loads config, opens the log, resolves the bearer token and builds
// the API client.
func Open(ctx context.Context, opts Options) (*Session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.Environment); v != "" {
		cfg.Environment = v
	}
	if v := strings.TrimSpace(opts.LogFile); v != "" {
		cfg.LogFile = config.ExpandLogPath(v)
	}
	if v := strings.TrimSpace(opts.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	out, closeLog, err := openLogOutput(cfg.LogFile, stderr)
	if err != nil {
		return nil, err
	}
	logger := NewLogger(cfg.LogLevel, cfg.LogFormat, out)

	raw, source, err := resolveToken(ctx, opts, cfg)
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	claims := token.Inspect(raw)
	logger.Info("token resolved", "source", string(source), "account", claims.Account())

	client, err := flowapi.NewClient(flowapi.Options{
		BaseURL:    cfg.APIBase,
		APIVersion: cfg.APIVersion,
		Token:      raw,
		Timeout:    cfg.RequestTimeout,
		Logger:     logger,
	})
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("init api client: %w", err)
	}

	return &Session{
		Config:   cfg,
		Logger:   logger,
		Client:   client,
		Claims:   claims,
		Source:   source,
		closeLog: closeLog,
	}, nil
}

func resolveToken(ctx context.Context, opts Options, cfg config.Config) (string, token.Source, error) {
	raw, source, err := token.Resolve(opts.Token, os.Getenv(token.EnvVar), cfg.TokenFile)
	if err == nil {
		return raw, source, nil
	}
	if !errors.Is(err, token.ErrMissing) || !opts.Interactive {
		return "", "", err
	}
	prompt := opts.Prompt
	if prompt == nil {
		prompt = token.Prompt
	}
	raw, err = prompt(ctx)
	if err != nil {
		return "", "", fmt.Errorf("prompt for token: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		return "", "", token.ErrMissing
	}
	return strings.TrimSpace(raw), token.SourcePrompt, nil
}

// Run boots the flowdeck TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	sess, err := Open(ctx, opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	prefStore := prefs.Open(opts.PrefsPath)
	userPrefs := prefStore.Load()

	store := state.NewStore()
	loader := state.NewLoader(sess.Client, store, sess.Logger)
	queue := alerts.New(alerts.WithLogger(sess.Logger))

	sess.Logger.Info("starting ui", "environment", sess.Config.Environment, "theme", userPrefs.Theme)
	err = ui.Run(ui.Options{
		Context:     ctx,
		Loader:      loader,
		API:         sess.Client,
		Alerts:      queue,
		Logger:      sess.Logger,
		Prefs:       prefStore,
		ThemeName:   userPrefs.Theme,
		PageSize:    sess.Config.PageSize,
		Environment: sess.Config.Environment,
		Account:     sess.Claims.Account(),
		ExpiresAt:   sess.Claims.ExpiresAt,
		Now:         time.Now,
	})
	if err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
