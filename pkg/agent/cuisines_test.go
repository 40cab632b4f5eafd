package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCuisinesLoaded(t *testing.T) {
	require.NotEmpty(t, DefaultCuisines)
	assert.Equal(t, CuisineAlias{Alias: "indian", Cuisine: "Indian"}, DefaultCuisines[0])
	assert.Equal(t, CuisineAlias{Alias: "tapas", Cuisine: "Spanish"}, DefaultCuisines[len(DefaultCuisines)-1])
}

func TestEveryAliasResolvesToItsCuisine(t *testing.T) {
	for _, e := range DefaultCuisines {
		got, ok := DefaultCuisines.Match(e.Alias + " food")
		if assert.True(t, ok, e.Alias) {
			assert.Equal(t, e.Cuisine, got, "%q food", e.Alias)
		}
	}
}

func TestCuisineMatch(t *testing.T) {
	tests := []struct {
		utterance string
		want      string
		ok        bool
	}{
		{"I want Italian food", "Italian", true},
		{"somewhere with SUSHI", "Japanese", true},
		{"sushi or pizza tonight", "Japanese", true},
		{"pizza or sushi tonight", "Japanese", true},
		{"pizza and curry", "Italian", true},
		{"North Indian place", "North Indian", true},
		{"book bbq for my team", "Barbecue", true},
		{"a vegetarian restaurant", "Vegetarian", true},
		{"best steakhouse", "Steakhouse", true},
		{"table desserts", "Desserts", true},
		{"hello there", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			got, ok := DefaultCuisines.Match(tt.utterance)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadCuisines(t *testing.T) {
	table, err := LoadCuisines([]byte("- {alias: Ramen, cuisine: Japanese}\n- {alias: taco, cuisine: Mexican}\n"))
	require.NoError(t, err)
	assert.Equal(t, CuisineTable{{"ramen", "Japanese"}, {"taco", "Mexican"}}, table)

	_, err = LoadCuisines([]byte("- {alias: ramen}\n"))
	assert.Error(t, err)

	_, err = LoadCuisines([]byte("alias: ramen"))
	assert.Error(t, err)
}
