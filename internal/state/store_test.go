package state

import (
	"errors"
	"testing"
	"time"

	"github.com/five82/flowdeck/internal/flowapi"
)

var flowsKey = Key{Kind: KindFlows, Environment: "env"}

func TestStore_FinishAndSnapshotClone(t *testing.T) {
	s := NewStore()

	if !s.Begin(flowsKey) {
		t.Fatalf("Begin = false on idle key, want true")
	}
	before := time.Now()
	s.Finish(flowsKey, []flowapi.Record{{"name": "a"}, {"name": "b"}}, nil)

	snap := s.Snapshot(flowsKey)
	if !snap.Loaded || snap.Loading {
		t.Fatalf("snapshot flags = loaded %v loading %v, want true/false", snap.Loaded, snap.Loading)
	}
	if len(snap.Records) != 2 || snap.Records[0]["name"] != "a" {
		t.Fatalf("snapshot records = %#v, want 2 records", snap.Records)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Records[0] = flowapi.Record{"name": "changed"}
	if got := s.Snapshot(flowsKey).Records[0]["name"]; got != "a" {
		t.Fatalf("Snapshot should clone records; got %v want a", got)
	}
}

func TestStore_BeginGatesConcurrentLoads(t *testing.T) {
	s := NewStore()
	if !s.Begin(flowsKey) {
		t.Fatalf("first Begin = false, want true")
	}
	if s.Begin(flowsKey) {
		t.Fatalf("second Begin = true while loading, want false")
	}
	if !s.Loading(flowsKey) {
		t.Fatalf("Loading = false, want true")
	}
	other := Key{Kind: KindFlows, Environment: "other"}
	if !s.Begin(other) {
		t.Fatalf("Begin on a different key = false, want true")
	}
	s.Finish(flowsKey, nil, nil)
	if !s.Begin(flowsKey) {
		t.Fatalf("Begin after Finish = false, want true")
	}
}

func TestStore_FinishErrorKeepsPreviousData(t *testing.T) {
	s := NewStore()
	s.Begin(flowsKey)
	s.Finish(flowsKey, []flowapi.Record{{"name": "a"}}, nil)

	origErr := errors.New("boom")
	s.Begin(flowsKey)
	s.Finish(flowsKey, nil, origErr)

	snap := s.Snapshot(flowsKey)
	if len(snap.Records) != 1 || snap.Records[0]["name"] != "a" {
		t.Fatalf("records changed on error: %#v", snap.Records)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if snap.LastError != origErr {
		t.Fatalf("LastError = %#v, want the stored error", snap.LastError)
	}
	if snap.Loading {
		t.Fatalf("Loading = true after Finish")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	s := NewStore()
	for i := 1; i <= 2; i++ {
		s.Begin(flowsKey)
		s.Finish(flowsKey, nil, errors.New("fail"))
		snap := s.Snapshot(flowsKey)
		if snap.ConsecutiveFailures != i {
			t.Fatalf("ConsecutiveFailures = %d, want %d", snap.ConsecutiveFailures, i)
		}
		if snap.IsOffline() != (i >= 2) {
			t.Fatalf("IsOffline() = %v after %d failures", snap.IsOffline(), i)
		}
	}

	s.Begin(flowsKey)
	s.Finish(flowsKey, nil, nil)
	if snap := s.Snapshot(flowsKey); snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("success should reset failures, got %d", snap.ConsecutiveFailures)
	}
}

func TestStore_ForgetSkipsLoadingEntries(t *testing.T) {
	s := NewStore()
	s.Begin(flowsKey)
	s.Forget(flowsKey)
	if !s.Loading(flowsKey) {
		t.Fatalf("Forget dropped a loading entry")
	}
	s.Finish(flowsKey, []flowapi.Record{{"name": "a"}}, nil)
	s.Forget(flowsKey)
	if snap := s.Snapshot(flowsKey); snap.Loaded {
		t.Fatalf("Forget kept entry: %#v", snap)
	}
}

func TestKeyString(t *testing.T) {
	k := Key{Kind: KindTriggerHistories, Environment: "env", Flow: "f", Trigger: "manual"}
	if got := k.String(); got != "trigger-histories/env/f/manual" {
		t.Fatalf("String = %q", got)
	}
	if got := (Key{Kind: KindEnvironments}).String(); got != "environments" {
		t.Fatalf("String = %q, want environments", got)
	}
}
