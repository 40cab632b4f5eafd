package tools

import "github.com/jbdamask/dinebot/pkg/store"

// RestaurantSummary is the per-restaurant shape returned by search_restaurants.
type RestaurantSummary struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Cuisine         string  `json:"cuisine"`
	Rating          float64 `json:"rating"`
	Location        string  `json:"location"`
	AvailableTables int     `json:"available_tables"`
}

type SearchResult struct {
	Restaurants []RestaurantSummary `json:"restaurants"`
}

type RecommendResult struct {
	Results []RecommendedRestaurant `json:"results"`
}

type AvailabilityResult struct {
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

type ReservationResult struct {
	Success     bool               `json:"success"`
	Reservation *store.Reservation `json:"reservation,omitempty"`
	Error       string             `json:"error,omitempty"`
}

// ChangeResult is returned by cancel_reservation and update_reservation.
type ChangeResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type RestaurantMatch struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Cuisine  string `json:"cuisine"`
	Location string `json:"location"`
}

type LookupResult struct {
	Success    bool              `json:"success"`
	Restaurant *RestaurantMatch  `json:"restaurant,omitempty"`
	Message    string            `json:"message,omitempty"`
	Matches    []RestaurantMatch `json:"matches,omitempty"`
}

// RecommendedRestaurant is the full restaurant record.
type RecommendedRestaurant = store.Restaurant
