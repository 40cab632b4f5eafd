package agent

import (
	"regexp"
	"strconv"
	"strings"
)

// bookingTemplates recognise "book a table for 4 at a mexican place" style
// requests. They are tried in order against the lowercased utterance.
var bookingTemplates = []*regexp.Regexp{
	regexp.MustCompile(`book.*?table.*?for\s+(\d+).*?(at|in)\s+([a-zA-Z\s]+)(?:\s+restaurant)?`),
	regexp.MustCompile(`table.*?for\s+(\d+).*?(at|in)\s+([a-zA-Z\s]+)(?:\s+restaurant)?`),
	regexp.MustCompile(`reservation.*?for\s+(\d+).*?(at|in)\s+([a-zA-Z\s]+)(?:\s+restaurant)?`),
}

// bookingIntent is a party size plus the free text naming the kind of place.
type bookingIntent struct {
	Guests int
	Place  string
}

// parseBooking returns the first template match in utterance.
func parseBooking(utterance string) (bookingIntent, bool) {
	text := strings.ToLower(utterance)
	for _, re := range bookingTemplates {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		guests, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return bookingIntent{Guests: guests, Place: strings.TrimSpace(m[3])}, true
	}
	return bookingIntent{}, false
}
