package tools

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
)

// MaxRecommendations caps recommend_restaurants results.
const MaxRecommendations = 5

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SearchTool filters restaurants by cuisine, location and party size.
type SearchTool struct {
	store Store
}

type searchArgs struct {
	Cuisine  string `json:"cuisine"`
	Location string `json:"location"`
	Guests   int    `json:"guests"`
}

func (t *SearchTool) Definition() ToolDefinition {
	return ToolDefinition{
		Name:        SearchRestaurants,
		Description: "Find restaurants by cuisine, area, or guest requirement. MUST be used for: 'show Italian restaurants', 'list Mexican restaurants', 'find Indian food'.",
		Schema: Schema{
			Type: "object",
			Properties: map[string]Property{
				"cuisine":  {Type: "string", Description: "Cuisine mentioned by the user such as Italian, Mexican, Chinese, Indian."},
				"location": {Type: "string", Description: "Area or city."},
				"guests":   {Type: "integer", Description: "Minimum seating capacity."},
			},
		},
	}
}

func (t *SearchTool) Execute(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var args searchArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}

	restaurants, err := t.store.Restaurants()
	if err != nil {
		return nil, err
	}

	cuisine := normalize(args.Cuisine)
	location := normalize(args.Location)

	results := make([]RestaurantSummary, 0)
	for _, r := range restaurants {
		// Empty filters pass everything.
		if cuisine != "" && !strings.Contains(normalize(r.Cuisine), cuisine) {
			continue
		}
		if location != "" && !strings.Contains(normalize(r.Location), location) {
			continue
		}
		if args.Guests != 0 && r.SeatingCapacity < args.Guests {
			continue
		}

		results = append(results, RestaurantSummary{
			ID:              r.ID,
			Name:            r.Name,
			Cuisine:         r.Cuisine,
			Rating:          r.Rating,
			Location:        r.Location,
			AvailableTables: r.AvailableTables,
		})
	}

	return &SearchResult{Restaurants: results}, nil
}

// RecommendTool returns the best rated restaurants that can seat a party now.
type RecommendTool struct {
	store Store
}

type recommendArgs struct {
	Cuisine string `json:"cuisine"`
	Guests  int    `json:"guests"`
}

func (t *RecommendTool) Definition() ToolDefinition {
	return ToolDefinition{
		Name:        RecommendRestaurants,
		Description: "Return top rated restaurants for a cuisine and number of guests.",
		Schema: Schema{
			Type: "object",
			Properties: map[string]Property{
				"cuisine": {Type: "string"},
				"guests":  {Type: "integer"},
			},
			Required: []string{"cuisine", "guests"},
		},
	}
}

func (t *RecommendTool) Execute(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var args recommendArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}

	restaurants, err := t.store.Restaurants()
	if err != nil {
		return nil, err
	}

	cuisine := normalize(args.Cuisine)
	var results []RecommendedRestaurant
	for _, r := range restaurants {
		if cuisine == "" || normalize(r.Cuisine) != cuisine {
			continue
		}
		if r.AvailableTables > 0 && r.SeatingCapacity >= args.Guests {
			results = append(results, r)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Rating > results[j].Rating
	})
	if len(results) > MaxRecommendations {
		results = results[:MaxRecommendations]
	}
	if results == nil {
		results = []RecommendedRestaurant{}
	}

	return &RecommendResult{Results: results}, nil
}
