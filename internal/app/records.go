package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/five82/flowdeck/internal/flowapi"
)

// RenameFlow sets the display name of a flow and returns the updated flow.
func RenameFlow(ctx context.Context, api flowapi.Commander, env, flow, name string) (flowapi.Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("display name required")
	}
	rec, err := api.UpdateFlow(ctx, env, flow, flowapi.FlowUpdate{DisplayName: name})
	if err != nil {
		return nil, fmt.Errorf("rename flow: %w", err)
	}
	return rec, nil
}

// GetRun fetches one run of a flow.
func GetRun(ctx context.Context, fetcher flowapi.Fetcher, env, flow, run string) (flowapi.Record, error) {
	rec, err := fetcher.GetRun(ctx, env, flow, run)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return rec, nil
}

// WriteRecord prints a raw API record as YAML or JSON. The table format has
// no meaning for a single nested record and falls back to YAML.
func WriteRecord(w io.Writer, rec flowapi.Record, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatTable, FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q: want yaml or json", format)
	}
}
