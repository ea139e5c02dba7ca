// Package alerts holds the transient, dismissible notifications shown to the
// user: one newest-first queue per screen, deduplicated by message.
package alerts

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Intent is the severity of an alert.
type Intent string

const (
	IntentSuccess Intent = "success"
	IntentWarning Intent = "warning"
	IntentError   Intent = "error"
	IntentInfo    Intent = "info"
)

// Known reports whether i is one of the four defined intents.
func (i Intent) Known() bool {
	switch i {
	case IntentSuccess, IntentWarning, IntentError, IntentInfo:
		return true
	}
	return false
}

// Alert is one queued notification.
type Alert struct {
	ID        string
	Message   string
	Intent    Intent
	CreatedAt time.Time
}

// Entry is an alert to add. Message may be a string, an error, a REST error
// body, or anything else; see Coerce.
type Entry struct {
	ID      string
	Message any
	Intent  Intent
}

// Action is one queue mutation. At most one field is honored, checked in the
// order Add, Remove, RemoveAll; an empty Action is a no-op.
type Action struct {
	Add       *Entry
	Remove    string
	RemoveAll bool
}

// Queue is an ordered list of alerts, newest first.
type Queue struct {
	mu     sync.Mutex
	alerts []Alert
	now    func() time.Time
	newID  func() string
	logger *slog.Logger
}

// Option configures a Queue.
type Option func(*Queue)

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(q *Queue) { q.now = now }
}

// WithIDs overrides the default id generator.
func WithIDs(next func() string) Option {
	return func(q *Queue) { q.newID = next }
}

// WithLogger records added error and warning alerts.
func WithLogger(logger *slog.Logger) Option {
	return func(q *Queue) { q.logger = logger }
}

// New returns an empty queue.
func New(opts ...Option) *Queue {
	q := &Queue{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Dispatch applies a single Action.
func (q *Queue) Dispatch(a Action) {
	switch {
	case a.Add != nil:
		q.Add(*a.Add)
	case a.Remove != "":
		q.Remove(a.Remove)
	case a.RemoveAll:
		q.RemoveAll()
	}
}

// Add prepends a new alert unless one with the same coerced message or the
// same id is already queued. It reports whether the alert was added.
func (q *Queue) Add(e Entry) (Alert, bool) {
	msg := Coerce(e.Message)

	q.mu.Lock()
	defer q.mu.Unlock()

	for _, existing := range q.alerts {
		if existing.Message == msg || (e.ID != "" && existing.ID == e.ID) {
			return existing, false
		}
	}

	id := e.ID
	if id == "" {
		id = q.newID()
	}
	alert := Alert{ID: id, Message: msg, Intent: e.Intent, CreatedAt: q.now()}

	next := make([]Alert, 0, len(q.alerts)+1)
	next = append(next, alert)
	q.alerts = append(next, q.alerts...)

	if q.logger != nil && (e.Intent == IntentError || e.Intent == IntentWarning) {
		q.logger.Warn("alert raised", "intent", string(e.Intent), "message", msg)
	}
	return alert, true
}

// Remove deletes the alert with id. It reports whether one was removed.
func (q *Queue) Remove(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, a := range q.alerts {
		if a.ID != id {
			continue
		}
		next := make([]Alert, 0, len(q.alerts)-1)
		next = append(next, q.alerts[:i]...)
		q.alerts = append(next, q.alerts[i+1:]...)
		return true
	}
	return false
}

// RemoveAll clears the queue.
func (q *Queue) RemoveAll() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.alerts = nil
}

// Alerts returns a copy of the queue, newest first.
func (q *Queue) Alerts() []Alert {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.alerts) == 0 {
		return nil
	}
	out := make([]Alert, len(q.alerts))
	copy(out, q.alerts)
	return out
}

// Len returns the number of queued alerts.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.alerts)
}
