// Package events publishes offer lifecycle events for downstream consumers
// (search indexing, notifications). Publication is fire and forget: callers
// log failures and carry on.
package events

import (
	"context"
	"time"

	"github.com/aussiebroadwan/market/internal/market/domain"
)

// Type doubles as the AMQP routing key.
type Type string

const (
	OfferPublished Type = "offer.published"
	OfferUpdated   Type = "offer.updated"
	OfferDeleted   Type = "offer.deleted"
)

// OfferEvent is the JSON payload of every offer.* message.
type OfferEvent struct {
	Type       Type      `json:"type"`
	OfferID    string    `json:"offer_id"`
	OwnerID    string    `json:"owner_id"`
	Name       string    `json:"product_name,omitempty"`
	Price      float64   `json:"product_price,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewOfferEvent snapshots o for an event of type t.
func NewOfferEvent(t Type, o domain.Offer) OfferEvent {
	return OfferEvent{
		Type:       t,
		OfferID:    o.ID,
		OwnerID:    o.OwnerID,
		Name:       o.Name,
		Price:      o.Price,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e OfferEvent) error
	Close() error
}

// NopPublisher drops every event. Used when AMQP_URL is unset.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, OfferEvent) error { return nil }
func (NopPublisher) Close() error                              { return nil }
