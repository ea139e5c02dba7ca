package alerts

import (
	"errors"
	"fmt"

	"github.com/five82/flowdeck/internal/grid"
)

// ResponseError is implemented by REST client errors that carry an API error
// code and message.
type ResponseError interface {
	ErrorCode() string
	ErrorMessage() string
}

const (
	responseCodePath    = "response.data.error.code"
	responseMessagePath = "response.data.error.message"
)

// Coerce turns an arbitrary message value into display text. REST error
// shapes become "{code}: {message}"; everything else uses its string form.
func Coerce(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case ResponseError:
		return formatResponse(t.ErrorCode(), t.ErrorMessage())
	case error:
		var re ResponseError
		if errors.As(t, &re) {
			return formatResponse(re.ErrorCode(), re.ErrorMessage())
		}
		return t.Error()
	}

	code := grid.Resolve(v, responseCodePath)
	msg := grid.Resolve(v, responseMessagePath)
	if !code.IsUndefined() && !msg.IsUndefined() {
		return formatResponse(code.String(), msg.String())
	}

	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}

func formatResponse(code, message string) string {
	return code + ": " + message
}
