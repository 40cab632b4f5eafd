package agent

import (
	"regexp"
	"strings"

	"github.com/jbdamask/dinebot/pkg/tools"
)

var (
	leakedToolNames = []tools.Name{
		tools.SearchRestaurants,
		tools.CreateReservation,
		tools.CheckAvailability,
		tools.FindRestaurantByName,
	}

	leakedCuisine = regexp.MustCompile(`"cuisine":\s*"([^"]+)"`)
	leakedName    = regexp.MustCompile(`"(?:restaurant_)?name":\s*"([^"]+)"`)
)

// leakedCall is a tool call rebuilt from model prose.
type leakedCall struct {
	Name tools.Name
	Args map[string]interface{}
}

// recoverLeakedCall looks for a tool call the model wrote as text instead of
// using the tool channel. Only searches by cuisine and name lookups can be
// rebuilt; anything else returns false.
func recoverLeakedCall(content string) (leakedCall, bool) {
	if !mentionsAny(content, leakedToolNames) {
		return leakedCall{}, false
	}

	if strings.Contains(content, string(tools.SearchRestaurants)) && strings.Contains(content, "cuisine") {
		if m := leakedCuisine.FindStringSubmatch(content); m != nil {
			return leakedCall{
				Name: tools.SearchRestaurants,
				Args: map[string]interface{}{"cuisine": m[1]},
			}, true
		}
	}

	if strings.Contains(content, string(tools.FindRestaurantByName)) && strings.Contains(content, "name") {
		if m := leakedName.FindStringSubmatch(content); m != nil {
			return leakedCall{
				Name: tools.FindRestaurantByName,
				Args: map[string]interface{}{"restaurant_name": m[1]},
			}, true
		}
	}

	return leakedCall{}, false
}

func mentionsAny(content string, names []tools.Name) bool {
	for _, n := range names {
		if strings.Contains(content, string(n)) {
			return true
		}
	}
	return false
}
