package tools

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// bookingFillers are stripped from a name query before matching,
// e.g. "book miso honey" -> "miso honey".
var bookingFillers = []string{"book", "table", "reservation"}

// FindByNameTool resolves a free-text restaurant name to a restaurant id.
type FindByNameTool struct {
	store Store
}

type findArgs struct {
	RestaurantName string `json:"restaurant_name"`
}

func (t *FindByNameTool) Definition() ToolDefinition {
	return ToolDefinition{
		Name:        FindRestaurantByName,
		Description: "Find restaurant ID by name when user mentions a specific restaurant.",
		Schema: Schema{
			Type: "object",
			Properties: map[string]Property{
				"restaurant_name": {Type: "string"},
			},
			Required: []string{"restaurant_name"},
		},
	}
}

// cleanNameQuery lowercases the query and removes booking filler words.
func cleanNameQuery(q string) string {
	q = strings.ToLower(strings.TrimSpace(q))
	for _, w := range bookingFillers {
		q = strings.ReplaceAll(q, w, "")
	}
	return strings.TrimSpace(q)
}

// fuzzyMatch reports whether the query is a substring of the name or any
// query token longer than two characters occurs in the name.
func fuzzyMatch(query, name string) bool {
	if strings.Contains(name, query) {
		return true
	}
	for _, word := range strings.Fields(query) {
		if utf8.RuneCountInString(word) > 2 && strings.Contains(name, word) {
			return true
		}
	}
	return false
}

func (t *FindByNameTool) Execute(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var args findArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}

	restaurants, err := t.store.Restaurants()
	if err != nil {
		return nil, err
	}

	query := cleanNameQuery(args.RestaurantName)

	var exact, fuzzy []RestaurantMatch
	for _, r := range restaurants {
		name := strings.ToLower(r.Name)
		match := RestaurantMatch{ID: r.ID, Name: r.Name, Cuisine: r.Cuisine, Location: r.Location}

		switch {
		case query == name:
			exact = append(exact, match)
		case fuzzyMatch(query, name):
			fuzzy = append(fuzzy, match)
		}
	}

	// Exact matches always win over fuzzy ones.
	if len(exact) > 0 {
		if len(exact) == 1 {
			return &LookupResult{Success: true, Restaurant: &exact[0]}, nil
		}
		return &LookupResult{Success: false, Message: "Multiple exact matches found", Matches: exact}, nil
	}

	switch len(fuzzy) {
	case 0:
		return &LookupResult{Success: false, Message: "No restaurant found with that name"}, nil
	case 1:
		return &LookupResult{Success: true, Restaurant: &fuzzy[0]}, nil
	default:
		return &LookupResult{Success: false, Message: "Multiple restaurants found", Matches: fuzzy}, nil
	}
}
