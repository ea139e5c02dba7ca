package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/five82/flowdeck/internal/flowapi"
)

type fakeFetcher struct {
	flows []flowapi.Record
	err   error
	env   string
}

func (f *fakeFetcher) ListEnvironments(context.Context) ([]flowapi.Record, error) { return nil, nil }
func (f *fakeFetcher) ListFlows(_ context.Context, env string) ([]flowapi.Record, error) {
	f.env = env
	return f.flows, f.err
}
func (f *fakeFetcher) GetFlow(context.Context, string, string) (flowapi.Record, error) {
	return nil, nil
}
func (f *fakeFetcher) ListRuns(context.Context, string, string) ([]flowapi.Record, error) {
	return nil, nil
}
func (f *fakeFetcher) GetRun(context.Context, string, string, string) (flowapi.Record, error) {
	return nil, nil
}
func (f *fakeFetcher) ListTriggerHistories(context.Context, string, string, string) ([]flowapi.Record, error) {
	return nil, nil
}
func (f *fakeFetcher) ListConnections(context.Context, string, string) ([]flowapi.Record, error) {
	return nil, nil
}

func flowRecord(name, display, state, kind string) flowapi.Record {
	props := map[string]any{"displayName": display, "state": state}
	if kind != "" {
		props["definitionSummary"] = map[string]any{
			"triggers": []any{map[string]any{"kind": kind, "type": "Request"}},
		}
	}
	return flowapi.Record{"name": name, "properties": props}
}

func testFlows() []flowapi.Record {
	return []flowapi.Record{
		flowRecord("f1", "Invoice sync", "Started", "Http"),
		flowRecord("f2", "Nightly backup", "Stopped", ""),
		flowRecord("f3", "Invoice archive", "Started", "Button"),
		flowRecord("f4", "Alerts", "Started", "Http"),
	}
}

func listedNames(l Listing) []string {
	var out []string
	for _, row := range l.View.Rows {
		out = append(out, row.Get("name").String())
	}
	return out
}

func TestListFlows_AppliesGridRules(t *testing.T) {
	tests := []struct {
		name string
		opts ListOptions
		want []string
	}{
		{"all", ListOptions{}, []string{"f1", "f2", "f3", "f4"}},
		{"search", ListOptions{Search: "invoice"}, []string{"f1", "f3"}},
		{"filter by title", ListOptions{Filters: []string{"state=Started"}}, []string{"f1", "f3", "f4"}},
		{"filter empty", ListOptions{Filters: []string{"Trigger=(empty)"}}, []string{"f2"}},
		{"filters AND", ListOptions{Filters: []string{"state=Started", "properties.definitionSummary.triggers.0.kind=Http"}}, []string{"f1", "f4"}},
		{"sort asc", ListOptions{Sort: "Name"}, []string{"f4", "f3", "f1", "f2"}},
		{"sort desc", ListOptions{Sort: "Name:desc"}, []string{"f2", "f1", "f3", "f4"}},
		{"page", ListOptions{Sort: "Name", PageSize: 3, Page: 2}, []string{"f2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &fakeFetcher{flows: testFlows()}
			tt.opts.Environment = "env1"
			got, err := ListFlows(context.Background(), fetcher, tt.opts)
			if err != nil {
				t.Fatalf("ListFlows error: %v", err)
			}
			if diff := cmp.Diff(tt.want, listedNames(got)); diff != "" {
				t.Fatalf("rows mismatch (-want +got):\n%s", diff)
			}
			if fetcher.env != "env1" {
				t.Fatalf("fetched env = %q, want env1", fetcher.env)
			}
		})
	}
}

func TestListFlows_Errors(t *testing.T) {
	fetcher := &fakeFetcher{flows: testFlows()}
	ctx := context.Background()

	if _, err := ListFlows(ctx, fetcher, ListOptions{}); err == nil || err.Error() != "environment required" {
		t.Fatalf("missing env error = %v", err)
	}
	bad := []ListOptions{
		{Filters: []string{"state"}},
		{Filters: []string{"nope=1"}},
		{Sort: "nope"},
		{Sort: "name:sideways"},
	}
	for _, opts := range bad {
		opts.Environment = "env1"
		if _, err := ListFlows(ctx, fetcher, opts); err == nil {
			t.Fatalf("ListFlows(%+v) succeeded, want error", opts)
		}
	}

	apiErr := &flowapi.APIError{StatusCode: 401, Code: "InvalidAuthenticationToken", Message: "expired"}
	_, err := ListFlows(ctx, &fakeFetcher{err: apiErr}, ListOptions{Environment: "env1"})
	var got *flowapi.APIError
	if !errors.As(err, &got) || got.Code != "InvalidAuthenticationToken" {
		t.Fatalf("fetch error = %v, want wrapped APIError", err)
	}
}

func TestWriteListing_Formats(t *testing.T) {
	l, err := ListFlows(context.Background(), &fakeFetcher{flows: testFlows()}, ListOptions{
		Environment: "env1",
		Search:      "backup",
	})
	if err != nil {
		t.Fatalf("ListFlows error: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteListing(&buf, l, "json"); err != nil {
		t.Fatalf("json: %v", err)
	}
	var doc struct {
		Matched int              `json:"matched"`
		Total   int              `json:"total"`
		Rows    []map[string]any `json:"rows"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if doc.Matched != 1 || doc.Total != 4 || len(doc.Rows) != 1 {
		t.Fatalf("json doc = %+v", doc)
	}
	if doc.Rows[0]["name"] != "f2" || doc.Rows[0]["properties.displayName"] != "Nightly backup" {
		t.Fatalf("json row = %v", doc.Rows[0])
	}

	buf.Reset()
	if err := WriteListing(&buf, l, "YAML"); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	var ydoc map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &ydoc); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if ydoc["matched"] != 1 {
		t.Fatalf("yaml matched = %v", ydoc["matched"])
	}

	buf.Reset()
	if err := WriteListing(&buf, l, ""); err != nil {
		t.Fatalf("table: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"NAME", "STATE", "Nightly backup", "Off", "page 1/1", "1 of 4 flows"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "ID") {
		t.Fatalf("table shows the hidden ID column:\n%s", out)
	}

	if err := WriteListing(&buf, l, "xml"); err == nil {
		t.Fatalf("xml format accepted")
	}
}

func TestWriteListing_EmptyTable(t *testing.T) {
	l, err := ListFlows(context.Background(), &fakeFetcher{flows: testFlows()}, ListOptions{
		Environment: "env1",
		Search:      "zzz",
	})
	if err != nil {
		t.Fatalf("ListFlows error: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteListing(&buf, l, "table"); err != nil {
		t.Fatalf("table: %v", err)
	}
	if got := buf.String(); got != "No flows match (4 total).\n" {
		t.Fatalf("empty table = %q", got)
	}
}
