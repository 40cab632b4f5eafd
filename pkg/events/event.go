// Package events carries reservation lifecycle notifications to a message broker.
package events

import (
	"context"
	"time"

	"github.com/jbdamask/dinebot/pkg/store"
)

const (
	TypeReservationCreated   = "reservation.created"
	TypeReservationUpdated   = "reservation.updated"
	TypeReservationCancelled = "reservation.cancelled"
)

// Event is published after a reservation mutation has been persisted.
// Consumers get the full record so they never need to read reservations.json.
type Event struct {
	Type          string             `json:"type"`
	ReservationID int                `json:"reservation_id"`
	RestaurantID  int                `json:"restaurant_id,omitempty"`
	Reservation   *store.Reservation `json:"reservation,omitempty"`
	OccurredAt    string             `json:"occurred_at"`
}

func NewEvent(eventType string, reservationID int, r *store.Reservation) Event {
	ev := Event{
		Type:          eventType,
		ReservationID: reservationID,
		Reservation:   r,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if r != nil {
		ev.RestaurantID = r.RestaurantID
	}
	return ev
}

// Publisher delivers events. Implementations must not block indefinitely.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, ev Event) error { return nil }
func (NopPublisher) Close() error                                { return nil }
