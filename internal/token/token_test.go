package token

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestResolvePrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "token")
	if err := os.WriteFile(file, []byte("  Bearer from-file\n"), 0o600); err != nil {
		t.Fatalf("write token file: %v", err)
	}

	tests := []struct {
		name       string
		flag, env  string
		file       string
		want       string
		wantSource Source
	}{
		{name: "flag wins", flag: "Bearer flag", env: "Bearer env", file: file, want: "Bearer flag", wantSource: SourceFlag},
		{name: "env next", env: "Bearer env", file: file, want: "Bearer env", wantSource: SourceEnv},
		{name: "file last", flag: "  ", file: file, want: "Bearer from-file", wantSource: SourceFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, src, err := Resolve(tt.flag, tt.env, tt.file)
			if err != nil {
				t.Fatalf("Resolve returned error: %v", err)
			}
			if got != tt.want || src != tt.wantSource {
				t.Fatalf("Resolve = %q/%q, want %q/%q", got, src, tt.want, tt.wantSource)
			}
		})
	}
}

func TestResolveMissing(t *testing.T) {
	if _, _, err := Resolve("", "", ""); !errors.Is(err, ErrMissing) {
		t.Fatalf("Resolve error = %v, want ErrMissing", err)
	}
	empty := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(empty, nil, 0o600); err != nil {
		t.Fatalf("write empty file: %v", err)
	}
	if _, _, err := Resolve("", "", empty); !errors.Is(err, ErrMissing) {
		t.Fatalf("Resolve error = %v, want ErrMissing for empty file", err)
	}
	if _, _, err := Resolve("", "", filepath.Join(t.TempDir(), "nope")); err == nil || errors.Is(err, ErrMissing) {
		t.Fatalf("Resolve error = %v, want read error", err)
	}
}

func TestInspectReadsClaims(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"name":        "Ada Lovelace",
		"unique_name": "ada@example.com",
		"tid":         "tenant-1",
		"exp":         exp.Unix(),
	}).SignedString([]byte("not-checked"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	claims := Inspect("Bearer " + signed)
	if claims.Name != "Ada Lovelace" || claims.UPN != "ada@example.com" || claims.TenantID != "tenant-1" {
		t.Fatalf("Inspect = %#v", claims)
	}
	if !claims.ExpiresAt.Equal(exp) {
		t.Fatalf("ExpiresAt = %v, want %v", claims.ExpiresAt, exp)
	}
	if claims.Account() != "Ada Lovelace <ada@example.com>" {
		t.Fatalf("Account = %q", claims.Account())
	}
	if claims.Expired(exp.Add(-time.Minute)) {
		t.Fatalf("Expired before exp = true, want false")
	}
	if !claims.Expired(exp.Add(time.Minute)) {
		t.Fatalf("Expired after exp = false, want true")
	}
}

func TestInspectOpaqueToken(t *testing.T) {
	claims := Inspect("Bearer opaque-value")
	if claims != (Claims{}) {
		t.Fatalf("Inspect = %#v, want empty claims", claims)
	}
	if claims.Expired(time.Now()) {
		t.Fatalf("opaque token should never be expired")
	}
}
