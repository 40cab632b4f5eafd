package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the only accepted reservation date format (DD-MM-YYYY).
const DateLayout = "02-01-2006"

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeArgs decodes a tool argument object into a typed struct, rejecting
// unknown keys and values of the wrong JSON type.
func decodeArgs(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrArgumentMismatch, err)
	}
	return nil
}

func validDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}
