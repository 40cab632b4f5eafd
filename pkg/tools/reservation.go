package tools

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jbdamask/dinebot/pkg/events"
	"github.com/jbdamask/dinebot/pkg/store"
)

// createdAtLayout matches an ISO-8601 local timestamp with microseconds.
const createdAtLayout = "2006-01-02T15:04:05.000000"

// CreateReservationTool books a table. It does not check availability;
// callers are expected to run check_availability first.
type CreateReservationTool struct {
	store Store
	pub   events.Publisher
	now   func() time.Time
}

func NewCreateReservationTool(st Store, pub events.Publisher) *CreateReservationTool {
	return &CreateReservationTool{store: st, pub: pub, now: time.Now}
}

type createArgs struct {
	UserName     string `json:"user_name" validate:"required"`
	RestaurantID int    `json:"restaurant_id" validate:"required"`
	Date         string `json:"date" validate:"required"`
	Time         string `json:"time" validate:"required"`
	Guests       int    `json:"guests" validate:"required"`
	PhoneNumber  string `json:"phone_number" validate:"required"`
}

func (t *CreateReservationTool) Definition() ToolDefinition {
	return ToolDefinition{
		Name:        CreateReservation,
		Description: "Create final reservation after collecting all required details.",
		Schema: Schema{
			Type: "object",
			Properties: map[string]Property{
				"user_name":     {Type: "string", Description: "Full name of the person making the reservation"},
				"restaurant_id": {Type: "integer", Description: "ID of the restaurant from search results"},
				"date":          {Type: "string", Description: "Date in dd-mm-yyyy format (e.g., 25-12-2025)"},
				"time":          {Type: "string", Description: "Time in HH:MM format or with AM/PM"},
				"guests":        {Type: "integer", Description: "Number of guests for the reservation"},
				"phone_number":  {Type: "string", Description: "Phone number with country code (e.g., +91-9876543210)"},
			},
			Required: []string{"user_name", "restaurant_id", "date", "time", "guests", "phone_number"},
		},
	}
}

func (t *CreateReservationTool) Execute(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var args createArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}

	// Zero values count as missing, so a guest count of 0 is rejected too.
	if err := validate.Struct(args); err != nil {
		return &ReservationResult{Success: false, Error: "Missing required booking information"}, nil
	}
	if !validDate(args.Date) {
		return &ReservationResult{Success: false, Error: "Invalid date format. Please use dd-mm-yyyy format"}, nil
	}

	var created store.Reservation
	err := t.store.UpdateReservations(func(current []store.Reservation) ([]store.Reservation, error) {
		created = store.Reservation{
			ReservationID: len(current) + 1,
			UserName:      args.UserName,
			RestaurantID:  args.RestaurantID,
			Date:          args.Date,
			Time:          args.Time,
			Guests:        args.Guests,
			PhoneNumber:   args.PhoneNumber,
			CreatedAt:     t.now().Format(createdAtLayout),
		}
		return append(current, created), nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, t.pub, events.NewEvent(events.TypeReservationCreated, created.ReservationID, &created))
	return &ReservationResult{Success: true, Reservation: &created}, nil
}

// CancelReservationTool removes a reservation by id.
type CancelReservationTool struct {
	store Store
	pub   events.Publisher
}

type cancelArgs struct {
	ReservationID int `json:"reservation_id"`
}

func (t *CancelReservationTool) Definition() ToolDefinition {
	return ToolDefinition{
		Name:        CancelReservation,
		Description: "Cancel a reservation using reservation_id.",
		Schema: Schema{
			Type: "object",
			Properties: map[string]Property{
				"reservation_id": {Type: "integer"},
			},
			Required: []string{"reservation_id"},
		},
	}
}

func (t *CancelReservationTool) Execute(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var args cancelArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}

	err := t.store.UpdateReservations(func(current []store.Reservation) ([]store.Reservation, error) {
		kept := make([]store.Reservation, 0, len(current))
		for _, r := range current {
			if r.ReservationID != args.ReservationID {
				kept = append(kept, r)
			}
		}
		if len(kept) == len(current) {
			return nil, ErrNotFound
		}
		return kept, nil
	})
	if errors.Is(err, ErrNotFound) {
		return &ChangeResult{Success: false, Message: "Reservation not found"}, nil
	}
	if err != nil {
		return nil, err
	}

	publish(ctx, t.pub, events.NewEvent(events.TypeReservationCancelled, args.ReservationID, nil))
	return &ChangeResult{Success: true}, nil
}

// UpdateReservationTool overwrites the supplied date, time and guest fields.
type UpdateReservationTool struct {
	store Store
	pub   events.Publisher
}

type updateArgs struct {
	ReservationID int    `json:"reservation_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Guests        int    `json:"guests"`
}

func (t *UpdateReservationTool) Definition() ToolDefinition {
	return ToolDefinition{
		Name:        UpdateReservation,
		Description: "Update date, time, or guest count.",
		Schema: Schema{
			Type: "object",
			Properties: map[string]Property{
				"reservation_id": {Type: "integer"},
				"date":           {Type: "string"},
				"time":           {Type: "string"},
				"guests":         {Type: "integer"},
			},
			Required: []string{"reservation_id"},
		},
	}
}

func (t *UpdateReservationTool) Execute(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var args updateArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}

	var updated store.Reservation
	err := t.store.UpdateReservations(func(current []store.Reservation) ([]store.Reservation, error) {
		for i := range current {
			if current[i].ReservationID != args.ReservationID {
				continue
			}
			if args.Date != "" {
				current[i].Date = args.Date
			}
			if args.Time != "" {
				current[i].Time = args.Time
			}
			if args.Guests != 0 {
				current[i].Guests = args.Guests
			}
			updated = current[i]
			return current, nil
		}
		return nil, ErrNotFound
	})
	if errors.Is(err, ErrNotFound) {
		return &ChangeResult{Success: false, Message: "Reservation not found"}, nil
	}
	if err != nil {
		return nil, err
	}

	publish(ctx, t.pub, events.NewEvent(events.TypeReservationUpdated, updated.ReservationID, &updated))
	return &ChangeResult{Success: true}, nil
}

// publish never fails the tool; the reservation is already persisted.
func publish(ctx context.Context, pub events.Publisher, ev events.Event) {
	if pub == nil {
		return
	}
	_ = pub.Publish(ctx, ev)
}
