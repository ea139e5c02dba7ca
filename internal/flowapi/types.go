package flowapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
)

// Record is one decoded resource as returned by the API.
type Record = map[string]any

// ListResponse mirrors the envelope of every list endpoint.
type ListResponse struct {
	Value    []Record `json:"value"`
	NextLink string   `json:"nextLink,omitempty"`
}

// APIError is returned for any response with status >= 400.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Path       string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("api %s returned status %d", e.Path, e.StatusCode)
	if e.Code != "" || e.Message != "" {
		msg += ": " + e.ErrorCode() + ": " + e.ErrorMessage()
	}
	return msg
}

// ErrorCode returns the service error code, falling back to the HTTP status.
func (e *APIError) ErrorCode() string {
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("%d", e.StatusCode)
}

// ErrorMessage returns the service error message, falling back to the
// HTTP status text.
func (e *APIError) ErrorMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.StatusCode)
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func readAPIError(resp *http.Response, path string) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, Path: path}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(data) == 0 {
		return apiErr
	}
	var env errorEnvelope
	if err := json.Unmarshal(data, &env); err == nil {
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(string(data))
	return apiErr
}

// Flow is the typed subset of a flow record.
type Flow struct {
	Name       string         `json:"name"`
	ID         string         `json:"id"`
	Properties FlowProperties `json:"properties"`
}

// FlowProperties holds flow metadata.
type FlowProperties struct {
	DisplayName       string            `json:"displayName"`
	State             string            `json:"state"`
	CreatedTime       string            `json:"createdTime"`
	LastModifiedTime  string            `json:"lastModifiedTime"`
	DefinitionSummary DefinitionSummary `json:"definitionSummary"`
	Definition        *Definition       `json:"definition,omitempty"`
}

// DefinitionSummary lists the trigger and action shapes of a flow.
type DefinitionSummary struct {
	Triggers []TriggerSummary `json:"triggers"`
	Actions  []ActionSummary  `json:"actions"`
}

// TriggerSummary describes one trigger of a flow.
type TriggerSummary struct {
	Type     string         `json:"type"`
	Kind     string         `json:"kind"`
	Metadata map[string]any `json:"metadata"`
}

// ActionSummary describes one action of a flow.
type ActionSummary struct {
	Type      string `json:"type"`
	SwaggerID string `json:"swaggerOperationId"`
	API       struct {
		Name string `json:"name"`
	} `json:"api"`
}

// Definition is the workflow definition, present only when expanded.
type Definition struct {
	Triggers map[string]TriggerDefinition `json:"triggers"`
}

// TriggerDefinition is one entry of definition.triggers, keyed by name.
type TriggerDefinition struct {
	Type       string         `json:"type"`
	Kind       string         `json:"kind"`
	Metadata   map[string]any `json:"metadata"`
	Recurrence *struct {
		Frequency string `json:"frequency"`
		Interval  int    `json:"interval"`
	} `json:"recurrence"`
}

// Manual reports whether the trigger can be fired on demand.
func (t TriggerDefinition) Manual() bool {
	return strings.EqualFold(t.Type, "Request") ||
		strings.EqualFold(t.Kind, "Button") ||
		strings.EqualFold(t.Kind, "Http")
}

// Enabled reports whether the flow is started.
func (f Flow) Enabled() bool {
	return strings.EqualFold(f.Properties.State, "Started")
}

// TriggerNames returns the trigger names of the flow in sorted order. Flows
// created from the designer name their only manual trigger "manual", which
// is the fallback when the definition was not expanded.
func (f Flow) TriggerNames() []string {
	if f.Properties.Definition == nil || len(f.Properties.Definition.Triggers) == 0 {
		return []string{"manual"}
	}
	names := make([]string, 0, len(f.Properties.Definition.Triggers))
	for name := range f.Properties.Definition.Triggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PrimaryTrigger returns the trigger used for runs and trigger history: the
// first manual trigger by name, else the first trigger by name.
func (f Flow) PrimaryTrigger() string {
	names := f.TriggerNames()
	if f.Properties.Definition == nil {
		return names[0]
	}
	for _, name := range names {
		if f.Properties.Definition.Triggers[name].Manual() {
			return name
		}
	}
	return names[0]
}

// Run is the typed subset of a run record.
type Run struct {
	Name       string        `json:"name"`
	Properties RunProperties `json:"properties"`
}

// RunProperties holds run status and timing.
type RunProperties struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
	Code      string `json:"code"`
	Trigger   struct {
		Name string `json:"name"`
	} `json:"trigger"`
}

// Running reports whether the run can still be cancelled.
func (r Run) Running() bool {
	switch strings.ToLower(r.Properties.Status) {
	case "running", "waiting":
		return true
	default:
		return false
	}
}

// ParsedStartTime returns the start time or the zero time.
func (r Run) ParsedStartTime() time.Time {
	return ParseTime(r.Properties.StartTime)
}

// Decode converts a raw record into a typed value.
func Decode[T any](rec Record) (T, error) {
	var out T
	data, err := json.Marshal(rec)
	if err != nil {
		return out, fmt.Errorf("encode record: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode record: %w", err)
	}
	return out, nil
}

// ParseTime parses the timestamp layouts the service emits. Invalid or
// empty values return the zero time.
func ParseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
