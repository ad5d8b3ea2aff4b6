// Package events publishes ledger transaction lifecycle events so that
// downstream consumers (reporting, access policies) can react to value
// moving in and out of a subsidy.
package events

import (
	"context"

	"github.com/chris/subsidy-redemptions/pkg/api"
)

// EventType names a transaction lifecycle event.
type EventType string

const (
	TransactionCommitted EventType = "transaction.committed"
	TransactionFailed    EventType = "transaction.failed"
)

// Event is the envelope published for each lifecycle change.
type Event struct {
	Type        EventType        `json:"type"`
	Transaction *api.Transaction `json:"transaction"`
}

// Publisher defines the interface for emitting transaction lifecycle events.
// Publishing is best-effort: implementations must not be load-bearing for
// redemption correctness.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NoOpPublisher is a publisher that does nothing.
type NoOpPublisher struct{}

// Publish does nothing.
func (p *NoOpPublisher) Publish(ctx context.Context, event Event) error {
	return nil
}
