package agent

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed cuisines.yaml
var defaultCuisinesYAML []byte

// CuisineAlias maps a phrase a user might type to a canonical cuisine label.
type CuisineAlias struct {
	Alias   string `yaml:"alias"`
	Cuisine string `yaml:"cuisine"`
}

// CuisineTable is an ordered alias list. Order decides ties.
type CuisineTable []CuisineAlias

// DefaultCuisines is the built-in table.
var DefaultCuisines = mustLoadCuisines(defaultCuisinesYAML)

// LoadCuisines parses a YAML sequence of {alias, cuisine} entries.
func LoadCuisines(data []byte) (CuisineTable, error) {
	var table CuisineTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse cuisine table: %w", err)
	}
	for i, e := range table {
		if e.Alias == "" || e.Cuisine == "" {
			return nil, fmt.Errorf("cuisine table entry %d: alias and cuisine are required", i)
		}
		table[i].Alias = strings.ToLower(e.Alias)
	}
	return table, nil
}

func mustLoadCuisines(data []byte) CuisineTable {
	table, err := LoadCuisines(data)
	if err != nil {
		panic(err)
	}
	return table
}

// mentions reports whether text names the alias, either bare or in one of
// the forms "<alias> restaurant|food|place" and "book|table <alias>". The
// longer forms all contain the bare alias, so one substring test covers them.
func (e CuisineAlias) mentions(text string) bool {
	return strings.Contains(text, e.Alias)
}

// Match returns the canonical cuisine named in text, or "" and false.
func (t CuisineTable) Match(text string) (string, bool) {
	text = strings.ToLower(text)

	var matched []CuisineAlias
	for _, e := range t {
		if e.mentions(text) {
			matched = append(matched, e)
		}
	}

	for _, e := range matched {
		if !subsumed(e, matched) {
			return e.Cuisine, true
		}
	}
	return "", false
}

// subsumed reports whether another matched alias contains e's alias,
// e.g. "indian" inside "north indian".
func subsumed(e CuisineAlias, matched []CuisineAlias) bool {
	for _, other := range matched {
		if other.Alias != e.Alias && strings.Contains(other.Alias, e.Alias) {
			return true
		}
	}
	return false
}
