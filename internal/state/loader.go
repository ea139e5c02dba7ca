package state

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/five82/flowdeck/internal/flowapi"
)

// ErrBusy is returned by Loader.Load when a load for the key is in flight.
var ErrBusy = errors.New("refresh already in progress")

// Loader fetches resources into a Store.
type Loader struct {
	fetcher flowapi.Fetcher
	store   *Store
	logger  *slog.Logger
}

// NewLoader builds a Loader. A nil logger discards output.
func NewLoader(fetcher flowapi.Fetcher, store *Store, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{fetcher: fetcher, store: store, logger: logger}
}

// Store returns the backing store.
func (l *Loader) Store() *Store {
	return l.store
}

// Load fetches key and stores the result. It returns ErrBusy without
// fetching when another load of the same key has not finished.
func (l *Loader) Load(ctx context.Context, key Key) (Entry, error) {
	if l == nil || l.fetcher == nil {
		return Entry{}, fmt.Errorf("loader is nil")
	}
	if !l.store.Begin(key) {
		return l.store.Snapshot(key), ErrBusy
	}

	records, err := l.fetch(ctx, key)
	l.store.Finish(key, records, err)
	if err != nil {
		l.logger.Warn("refresh failed", "resource", key.String(), "error", err)
		return l.store.Snapshot(key), err
	}
	l.logger.Debug("refreshed", "resource", key.String(), "records", len(records))
	return l.store.Snapshot(key), nil
}

func (l *Loader) fetch(ctx context.Context, key Key) ([]flowapi.Record, error) {
	switch key.Kind {
	case KindEnvironments:
		return l.fetcher.ListEnvironments(ctx)
	case KindFlows:
		return l.fetcher.ListFlows(ctx, key.Environment)
	case KindFlow:
		rec, err := l.fetcher.GetFlow(ctx, key.Environment, key.Flow)
		if err != nil {
			return nil, err
		}
		return []flowapi.Record{rec}, nil
	case KindRuns:
		return l.fetcher.ListRuns(ctx, key.Environment, key.Flow)
	case KindTriggerHistories:
		return l.fetcher.ListTriggerHistories(ctx, key.Environment, key.Flow, key.Trigger)
	case KindConnections:
		return l.fetcher.ListConnections(ctx, key.Environment, key.Flow)
	default:
		return nil, fmt.Errorf("unknown resource kind %q", key.Kind)
	}
}
