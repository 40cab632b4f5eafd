// Package render turns tool results into the fixed chat replies shown to users.
package render

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jbdamask/dinebot/pkg/tools"
)

const (
	NoRestaurants       = "No restaurants found for your request."
	TableAvailable      = "✔ A table is available at that time."
	TableUnavailable    = "❌ No table available."
	ReservationFailed   = "❌ Reservation failed. Please try again."
	RestaurantNotFound  = "Restaurant not found. Please try again."
	restaurantsHeader   = "Available Restaurants:\n\n"
	confirmationHeader  = "✅ Reservation Confirmed!\n\n"
	multipleMatchHeader = "I found multiple matches:\n\n"
	multipleMatchFooter = "\nWhich one would you like to book?"
)

// listing is the subset of restaurant fields shown in a search reply.
type listing struct {
	ID              int
	Name            string
	Cuisine         string
	Rating          float64
	Location        string
	AvailableTables int
}

// Result renders a successful dispatch of tool. Shapes without a dedicated
// template are serialized and sanitized.
func Result(tool tools.Name, result interface{}) string {
	switch tool {
	case tools.SearchRestaurants, tools.RecommendRestaurants:
		if rows, ok := listings(result); ok {
			return restaurants(rows)
		}
	case tools.CheckAvailability:
		if r, ok := result.(*tools.AvailabilityResult); ok {
			if r.Available {
				return TableAvailable
			}
			return TableUnavailable
		}
	case tools.CreateReservation:
		if r, ok := result.(*tools.ReservationResult); ok {
			return reservation(r)
		}
	case tools.FindRestaurantByName:
		if r, ok := result.(*tools.LookupResult); ok {
			return lookup(r)
		}
	}
	return Generic(result)
}

// Error renders a dispatch failure as {"error": message}, generically.
func Error(err error) string {
	return Generic(map[string]string{"error": err.Error()})
}

// Generic serializes v as indented JSON and sanitizes it.
func Generic(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return Sanitize(fmt.Sprint(v))
	}
	return Sanitize(string(data))
}

func listings(result interface{}) ([]listing, bool) {
	var rows []listing
	switch r := result.(type) {
	case *tools.SearchResult:
		for _, s := range r.Restaurants {
			rows = append(rows, listing{s.ID, s.Name, s.Cuisine, s.Rating, s.Location, s.AvailableTables})
		}
	case *tools.RecommendResult:
		for _, s := range r.Results {
			rows = append(rows, listing{s.ID, s.Name, s.Cuisine, s.Rating, s.Location, s.AvailableTables})
		}
	default:
		return nil, false
	}
	return rows, true
}

func restaurants(rows []listing) string {
	if len(rows) == 0 {
		return NoRestaurants
	}

	var b strings.Builder
	b.WriteString(restaurantsHeader)
	for _, r := range rows {
		fmt.Fprintf(&b, "• %s (ID: %d)\n", r.Name, r.ID)
		fmt.Fprintf(&b, "  Cuisine: %s\n", r.Cuisine)
		fmt.Fprintf(&b, "  Rating: %s⭐\n", FormatRating(r.Rating))
		fmt.Fprintf(&b, "  Location: %s\n", r.Location)
		fmt.Fprintf(&b, "  Available Tables: %d\n\n", r.AvailableTables)
	}
	return b.String()
}

func reservation(r *tools.ReservationResult) string {
	if !r.Success || r.Reservation == nil {
		return ReservationFailed
	}
	res := r.Reservation
	return confirmationHeader +
		fmt.Sprintf("Restaurant ID: %d\n", res.RestaurantID) +
		fmt.Sprintf("Date: %s\n", res.Date) +
		fmt.Sprintf("Time: %s\n", res.Time) +
		fmt.Sprintf("Guests: %d\n", res.Guests) +
		fmt.Sprintf("Phone: %s\n", res.PhoneNumber) +
		fmt.Sprintf("Booked For: %s", res.UserName)
}

func lookup(r *tools.LookupResult) string {
	if r.Success && r.Restaurant != nil {
		return fmt.Sprintf("Perfect! I found %s (ID: %d) in %s. What's your full name?",
			r.Restaurant.Name, r.Restaurant.ID, r.Restaurant.Location)
	}
	if len(r.Matches) > 0 {
		var b strings.Builder
		b.WriteString(multipleMatchHeader)
		for _, m := range r.Matches {
			fmt.Fprintf(&b, "• %s (ID: %d) - %s\n", m.Name, m.ID, m.Location)
		}
		b.WriteString(multipleMatchFooter)
		return b.String()
	}
	return RestaurantNotFound
}

// FormatRating prints a rating with at least one decimal place: 4 -> "4.0", 4.25 -> "4.25".
func FormatRating(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
