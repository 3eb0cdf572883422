// Package events publishes domain events after ledger mutations.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Event types double as AMQP routing keys.
const (
	BillCreated       = "bill.created"
	BillCompleted     = "bill.completed"
	BillMemberAdded   = "bill.member_added"
	BillMemberRemoved = "bill.member_removed"
	ExpenseCreated    = "expense.created"
	ExpenseDeleted    = "expense.deleted"
)

// Event is a lightweight notification. Consumers fetch full state from the API.
type Event struct {
	Type       string    `json:"type"`
	BillID     string    `json:"bill_id"`
	ExpenseID  string    `json:"expense_id,omitempty"`
	Member     string    `json:"member,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// New returns an event of the given type stamped with the current time.
func New(eventType, billID string) Event {
	return Event{Type: eventType, BillID: billID, OccurredAt: time.Now().UTC()}
}

// ToJSON converts the event to JSON bytes.
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON decodes an event.
func FromJSON(data []byte) (Event, error) {
	var e Event
	err := json.Unmarshal(data, &e)
	return e, err
}

// Publisher delivers events somewhere.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	// Err, when set, is returned from every Publish call.
	Err error
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, e)
	return nil
}

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Types returns the type of each published event, in order.
func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, len(r.events))
	for i, e := range r.events {
		types[i] = e.Type
	}
	return types
}

func (r *Recorder) Close() error { return nil }
