package alerts

import (
	"errors"
	"fmt"
	"testing"
)

type apiErr struct{ code, msg string }

func (e apiErr) Error() string        { return "api failed" }
func (e apiErr) ErrorCode() string    { return e.code }
func (e apiErr) ErrorMessage() string { return e.msg }

type label string

func (l label) String() string { return "label:" + string(l) }

func TestCoerce(t *testing.T) {
	restBody := map[string]any{
		"response": map[string]any{
			"data": map[string]any{
				"error": map[string]any{"code": "404", "message": "Not Found"},
			},
		},
	}
	numericCode := map[string]any{
		"response": map[string]any{
			"data": map[string]any{
				"error": map[string]any{"code": float64(500), "message": "boom"},
			},
		},
	}
	partial := map[string]any{
		"response": map[string]any{
			"data": map[string]any{"error": map[string]any{"code": "409"}},
		},
	}

	cases := []struct {
		name string
		in   any
		want string
	}{
		{"rest body", restBody, "404: Not Found"},
		{"numeric code", numericCode, "500: boom"},
		{"plain string", "boom", "boom"},
		{"nil", nil, ""},
		{"error", errors.New("network down"), "network down"},
		{"response error", apiErr{code: "Forbidden", msg: "no access"}, "Forbidden: no access"},
		{"wrapped response error", fmt.Errorf("stop flow: %w", apiErr{code: "409", msg: "busy"}), "409: busy"},
		{"stringer", label("x"), "label:x"},
		{"partial shape", partial, fmt.Sprint(partial)},
		{"number", 42, "42"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Coerce(tc.in); got != tc.want {
				t.Fatalf("Coerce = %q, want %q", got, tc.want)
			}
		})
	}
}
