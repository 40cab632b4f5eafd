package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jbdamask/dinebot/pkg/events"
	"github.com/jbdamask/dinebot/pkg/store"
	"github.com/jbdamask/dinebot/pkg/store/storetest"
)

func newTestStore(t *testing.T, restaurants ...store.Restaurant) *store.JSONStore {
	t.Helper()
	return storetest.New(t, restaurants...)
}

func sampleRestaurants() []store.Restaurant {
	return []store.Restaurant{
		{ID: 1, Name: "Bella Italia", Cuisine: "Italian", Location: "Downtown", Rating: 4.5, SeatingCapacity: 40, AvailableTables: 5},
		{ID: 2, Name: "Taco Loco", Cuisine: "Mexican", Location: "Uptown", Rating: 4.1, SeatingCapacity: 20, AvailableTables: 2},
		{ID: 3, Name: "Pasta Palace", Cuisine: "Italian", Location: "Riverside", Rating: 4.8, SeatingCapacity: 6, AvailableTables: 1},
		{ID: 4, Name: "Sakura House", Cuisine: "Japanese", Location: "Downtown", Rating: 4.7, SeatingCapacity: 30, AvailableTables: 0},
		{ID: 5, Name: "Spice Route", Cuisine: "North Indian", Location: "Old Town", Rating: 4.2, SeatingCapacity: 50, AvailableTables: 8},
	}
}

func run(t *testing.T, tool Tool, args string) interface{} {
	t.Helper()
	out, err := tool.Execute(context.Background(), json.RawMessage(args))
	require.NoError(t, err)
	require.NotNil(t, out)
	return out
}

// eventRecorder keeps published events in memory.
type eventRecorder struct {
	Events []events.Event
}

func (r *eventRecorder) Publish(ctx context.Context, ev events.Event) error {
	r.Events = append(r.Events, ev)
	return nil
}

func (r *eventRecorder) Close() error { return nil }
