// Package token handles intake of the pre-obtained bearer token and reads
// display claims from it. Tokens are never verified or refreshed; the API
// is the authority on whether a token is accepted.
package token

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/golang-jwt/jwt/v5"
)

// EnvVar is the environment variable consulted after the --token flag.
const EnvVar = "FLOWDECK_TOKEN"

// ErrMissing is returned by Resolve when no source supplied a token.
var ErrMissing = errors.New("no bearer token supplied")

// Source names where a token came from.
type Source string

const (
	SourceFlag   Source = "flag"
	SourceEnv    Source = "env"
	SourceFile   Source = "file"
	SourcePrompt Source = "prompt"
)

// Resolve returns the first non-empty token from the flag value, the
// environment value, then the contents of file.
func Resolve(flag, env, file string) (string, Source, error) {
	if v := strings.TrimSpace(flag); v != "" {
		return v, SourceFlag, nil
	}
	if v := strings.TrimSpace(env); v != "" {
		return v, SourceEnv, nil
	}
	if strings.TrimSpace(file) != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", "", fmt.Errorf("read token file: %w", err)
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			return v, SourceFile, nil
		}
	}
	return "", "", ErrMissing
}

// Prompt asks for the token on the terminal.
func Prompt(ctx context.Context) (string, error) {
	var raw string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Bearer token").
				Description("Paste the Authorization header value (\"Bearer ...\").").
				EchoMode(huh.EchoModePassword).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("token required")
					}
					return nil
				}).
				Value(&raw),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.RunWithContext(ctx); err != nil {
		return "", fmt.Errorf("prompt token: %w", err)
	}
	return strings.TrimSpace(raw), nil
}

// Claims are the display fields read from a JWT bearer token.
type Claims struct {
	Name      string
	UPN       string
	TenantID  string
	ExpiresAt time.Time
}

// Account returns the best available account label.
func (c Claims) Account() string {
	switch {
	case c.UPN != "" && c.Name != "":
		return c.Name + " <" + c.UPN + ">"
	case c.UPN != "":
		return c.UPN
	default:
		return c.Name
	}
}

// Expired reports whether the token carries an expiry before now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Inspect reads claims without verifying the signature. Opaque tokens
// yield empty claims and no error.
func Inspect(raw string) Claims {
	tok := strings.TrimSpace(raw)
	if len(tok) > 7 && strings.EqualFold(tok[:7], "bearer ") {
		tok = strings.TrimSpace(tok[7:])
	}
	if strings.Count(tok, ".") != 2 {
		return Claims{}
	}

	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, mc); err != nil {
		return Claims{}
	}

	out := Claims{
		Name:     stringClaim(mc, "name"),
		UPN:      stringClaim(mc, "upn", "unique_name", "preferred_username"),
		TenantID: stringClaim(mc, "tid"),
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out
}

func stringClaim(mc jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		if s, ok := mc[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
