package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/flowdeck/internal/flowapi"
)

type fakeCommander struct {
	updates []flowapi.FlowUpdate
	err     error
}

func (f *fakeCommander) UpdateFlow(_ context.Context, env, flow string, u flowapi.FlowUpdate) (flowapi.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updates = append(f.updates, u)
	return flowapi.Record{"name": flow, "properties": map[string]any{"displayName": u.DisplayName}}, nil
}
func (f *fakeCommander) DeleteFlow(context.Context, string, string) error        { return nil }
func (f *fakeCommander) StartFlow(context.Context, string, string) error         { return nil }
func (f *fakeCommander) StopFlow(context.Context, string, string) error          { return nil }
func (f *fakeCommander) RunFlow(context.Context, string, string, string) error   { return nil }
func (f *fakeCommander) CancelRun(context.Context, string, string, string) error { return nil }
func (f *fakeCommander) ResubmitRun(context.Context, string, string, string, string) error {
	return nil
}

func TestRenameFlow(t *testing.T) {
	api := &fakeCommander{}
	rec, err := RenameFlow(context.Background(), api, "env1", "f1", "  Invoice sync v2 ")
	if err != nil {
		t.Fatalf("RenameFlow error: %v", err)
	}
	if diff := cmp.Diff([]flowapi.FlowUpdate{{DisplayName: "Invoice sync v2"}}, api.updates); diff != "" {
		t.Fatalf("updates mismatch (-want +got):\n%s", diff)
	}
	if rec["name"] != "f1" {
		t.Fatalf("record name = %v, want f1", rec["name"])
	}

	if _, err := RenameFlow(context.Background(), api, "env1", "f1", " "); err == nil {
		t.Fatalf("expected error for empty name")
	}

	api.err = &flowapi.APIError{StatusCode: 404, Code: "FlowNotFound", Message: "missing"}
	_, err = RenameFlow(context.Background(), api, "env1", "f1", "x")
	var apiErr *flowapi.APIError
	if !errors.As(err, &apiErr) || !strings.HasPrefix(err.Error(), "rename flow: ") {
		t.Fatalf("err = %v, want wrapped APIError", err)
	}
}

func TestWriteRecord(t *testing.T) {
	rec := flowapi.Record{"name": "run-1", "properties": map[string]any{"status": "Succeeded"}}

	var buf bytes.Buffer
	if err := WriteRecord(&buf, rec, "json"); err != nil {
		t.Fatalf("json: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if diff := cmp.Diff(map[string]any(rec), got); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}

	buf.Reset()
	if err := WriteRecord(&buf, rec, ""); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(buf.String(), "status: Succeeded") {
		t.Fatalf("yaml output = %q", buf.String())
	}

	if err := WriteRecord(&buf, rec, "csv"); err == nil {
		t.Fatalf("csv format accepted")
	}
}
