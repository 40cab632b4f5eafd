package tools

import (
	"context"
	"encoding/json"
	"strings"
)

// AvailabilityTool answers whether a restaurant can take a booking at a date and time.
type AvailabilityTool struct {
	store Store
}

type availabilityArgs struct {
	RestaurantID int    `json:"restaurant_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
}

func (t *AvailabilityTool) Definition() ToolDefinition {
	return ToolDefinition{
		Name:        CheckAvailability,
		Description: "Check table availability for a restaurant at date + time.",
		Schema: Schema{
			Type: "object",
			Properties: map[string]Property{
				"restaurant_id": {Type: "integer", Description: "ID of the restaurant"},
				"date":          {Type: "string", Description: "Date in dd-mm-yyyy format (e.g., 25-12-2025)"},
				"time":          {Type: "string", Description: "Time in HH:MM format or with AM/PM"},
			},
			Required: []string{"restaurant_id", "date", "time"},
		},
	}
}

// normalizeTime lowercases and drops spaces, so "7:00 PM" equals "7:00pm".
func normalizeTime(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}

func (t *AvailabilityTool) Execute(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var args availabilityArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}

	if !validDate(args.Date) {
		return &AvailabilityResult{Available: false, Error: "Invalid date format. Please use dd-mm-yyyy"}, nil
	}

	reservations, err := t.store.Reservations()
	if err != nil {
		return nil, err
	}

	wanted := normalizeTime(args.Time)
	for _, r := range reservations {
		if r.RestaurantID == args.RestaurantID && r.Date == args.Date && normalizeTime(r.Time) == wanted {
			return &AvailabilityResult{Available: false}, nil
		}
	}

	restaurants, err := t.store.Restaurants()
	if err != nil {
		return nil, err
	}
	for _, r := range restaurants {
		if r.ID == args.RestaurantID && r.AvailableTables > 0 {
			return &AvailabilityResult{Available: true}, nil
		}
	}

	return &AvailabilityResult{Available: false}, nil
}
