// Package events publishes storefront activity (cart edits, navigation,
// checkout outcomes) for downstream consumers.
package events

import (
	"context"
	"time"
)

const (
	TypeItemAdded         = "cart.item_added"
	TypeItemRemoved       = "cart.item_removed"
	TypeQuantityChanged   = "cart.quantity_changed"
	TypeCartCleared       = "cart.cleared"
	TypeNavigation        = "navigation.changed"
	TypeCheckoutSucceeded = "checkout.succeeded"
	TypeCheckoutFailed    = "checkout.failed"
)

type Event struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Session    string         `json:"session"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data,omitempty"`
}

// Publisher must not block the caller on I/O.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

type Nop struct{}

func (Nop) Publish(context.Context, Event) {}
