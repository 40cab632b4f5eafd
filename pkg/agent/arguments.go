package agent

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/jbdamask/dinebot/pkg/tools"
)

var (
	trailingCommaObject = regexp.MustCompile(`,\s*}`)
	trailingCommaArray  = regexp.MustCompile(`,\s*]`)
)

// numericArgs are coerced from "4" to 4 for the tools in coercedTools.
var numericArgs = []string{"restaurant_id", "guests", "reservation_id"}

var coercedTools = map[tools.Name]bool{
	tools.CheckAvailability: true,
	tools.CreateReservation: true,
	tools.CancelReservation: true,
	tools.UpdateReservation: true,
}

// parseToolArguments decodes the model's argument text, tolerating trailing
// commas. Blank text is an empty object.
func parseToolArguments(raw string) (interface{}, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]interface{}{}, nil
	}
	raw = trailingCommaObject.ReplaceAllString(raw, "}")
	raw = trailingCommaArray.ReplaceAllString(raw, "]")

	var args interface{}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, err
	}
	return args, nil
}

// prepareArgs drops null values and coerces numeric strings. Payloads that
// are not objects are returned unchanged for the dispatcher to reject.
func prepareArgs(name tools.Name, args interface{}) interface{} {
	obj, ok := args.(map[string]interface{})
	if !ok {
		return args
	}

	out := make(map[string]interface{}, len(obj))
	for k, v := range obj {
		if v != nil {
			out[k] = v
		}
	}

	if coercedTools[name] {
		for _, key := range numericArgs {
			s, ok := out[key].(string)
			if !ok {
				continue
			}
			if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
				out[key] = n
			}
		}
	}
	return out
}
