// Package state caches API resources for the UI.
//
// # Overview
//
// Each resource (the environment list, an environment's flows, a flow's
// runs, and so on) is stored under a Key. The Store is shared between the
// UI goroutine and the commands that fetch data in the background, so all
// access goes through a readers-writer lock and Snapshot returns copies.
//
// # Loading Gate
//
// At most one load per Key is in flight. Begin flips the entry into the
// loading state and returns false if it already was; Finish clears it. The
// UI reads Loading to disable refresh and mutation keys for that resource.
//
//	if !store.Begin(key) {
//		return // already refreshing
//	}
//	records, err := fetch()
//	store.Finish(key, records, err)
//
// Loader wraps this sequence around a flowapi.Fetcher.
//
// # Update Semantics
//
// A failed load keeps the previously stored records and records the error,
// so a transient network failure never blanks a screen:
//
//	store.Finish(key, nil, err)
//	→ entry.Records     = <unchanged>
//	→ entry.LastError   = err
//	→ entry.ConsecutiveFailures++
//
// A successful load replaces the records and resets the failure count.
// IsOffline reports two or more consecutive failures.
package state
