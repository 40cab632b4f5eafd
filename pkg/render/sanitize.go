package render

import (
	"regexp"
	"strings"
)

// leakPatterns strip tool-call syntax the model sometimes writes into prose.
// Order matters: tag-shaped leaks go before the bare JSON fragments.
var leakPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)=\s*\w+\s*[{<].*?[}>]`),
	regexp.MustCompile(`(?s)<function.*?</function>`),
	regexp.MustCompile(`(?s)function=\w+>.*?\}`),
	regexp.MustCompile(`\{"cuisine":[^}]*\}`),
	regexp.MustCompile(`\{"name":[^}]*\}`),
	regexp.MustCompile(`\{"required":[^}]*\}`),
}

var (
	angleBrackets = regexp.MustCompile(`[<>]`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// Sanitize removes leaked tool-call fragments and angle brackets from model
// text and collapses whitespace. The pass is repeated until the text stops
// changing, so Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(s string) string {
	for {
		next := sanitizeOnce(s)
		if next == s {
			return next
		}
		s = next
	}
}

func sanitizeOnce(s string) string {
	for _, re := range leakPatterns {
		s = re.ReplaceAllString(s, "")
	}
	s = angleBrackets.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
