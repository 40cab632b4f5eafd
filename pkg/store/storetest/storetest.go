// Package storetest seeds data directories for tests.
package storetest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jbdamask/dinebot/pkg/store"
)

// Seed writes restaurants as the restaurant collection under dir.
func Seed(t testing.TB, dir string, restaurants []store.Restaurant) {
	t.Helper()
	if restaurants == nil {
		restaurants = []store.Restaurant{}
	}
	data, err := json.MarshalIndent(restaurants, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, store.RestaurantsFile), data, 0644))
}

// New returns a store over a fresh temp directory seeded with restaurants.
func New(t testing.TB, restaurants ...store.Restaurant) *store.JSONStore {
	t.Helper()
	dir := t.TempDir()
	Seed(t, dir, restaurants)
	return store.NewJSONStore(dir)
}
