package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbdamask/dinebot/pkg/store"
)

func TestFindRestaurantByName(t *testing.T) {
	honey := store.Restaurant{ID: 10, Name: "Miso Honey", Cuisine: "Japanese", Location: "Harbor"}
	grill := store.Restaurant{ID: 11, Name: "Miso Grill", Cuisine: "Korean", Location: "Midtown"}

	t.Run("single fuzzy match", func(t *testing.T) {
		tool := &FindByNameTool{store: newTestStore(t, honey)}
		res := run(t, tool, `{"restaurant_name":"miso"}`).(*LookupResult)
		require.True(t, res.Success)
		assert.Equal(t, 10, res.Restaurant.ID)
	})

	t.Run("ambiguous fuzzy match", func(t *testing.T) {
		tool := &FindByNameTool{store: newTestStore(t, honey, grill)}
		res := run(t, tool, `{"restaurant_name":"miso"}`).(*LookupResult)
		assert.False(t, res.Success)
		assert.Equal(t, "Multiple restaurants found", res.Message)
		assert.Len(t, res.Matches, 2)
	})

	t.Run("exact match beats fuzzy", func(t *testing.T) {
		tool := &FindByNameTool{store: newTestStore(t, honey, grill)}
		res := run(t, tool, `{"restaurant_name":"Miso Grill"}`).(*LookupResult)
		require.True(t, res.Success)
		assert.Equal(t, 11, res.Restaurant.ID)
	})

	t.Run("booking words are ignored", func(t *testing.T) {
		tool := &FindByNameTool{store: newTestStore(t, honey, grill)}
		res := run(t, tool, `{"restaurant_name":"book Miso Honey"}`).(*LookupResult)
		require.True(t, res.Success)
		assert.Equal(t, 10, res.Restaurant.ID)
	})

	t.Run("short tokens do not match", func(t *testing.T) {
		tool := &FindByNameTool{store: newTestStore(t, honey)}
		res := run(t, tool, `{"restaurant_name":"mi xx"}`).(*LookupResult)
		assert.False(t, res.Success)
		assert.Equal(t, "No restaurant found with that name", res.Message)
		assert.Empty(t, res.Matches)
	})
}

func TestCleanNameQuery(t *testing.T) {
	assert.Equal(t, "miso honey", cleanNameQuery("  Book Miso Honey "))
	assert.Equal(t, "at miso", cleanNameQuery("table at miso"))
}
