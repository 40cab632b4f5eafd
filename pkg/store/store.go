package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	RestaurantsFile  = "restaurants.json"
	ReservationsFile = "reservations.json"
)

// ErrNotFound is returned by update callbacks when the record they target does not exist.
var ErrNotFound = errors.New("not found")

// Restaurant is read-only reference data.
type Restaurant struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Cuisine         string  `json:"cuisine"`
	Location        string  `json:"location"`
	Rating          float64 `json:"rating"`
	SeatingCapacity int     `json:"seating_capacity"`
	AvailableTables int     `json:"available_tables"`
}

// Reservation is a booking persisted in reservations.json.
type Reservation struct {
	ReservationID int    `json:"reservation_id"`
	UserName      string `json:"user_name"`
	RestaurantID  int    `json:"restaurant_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Guests        int    `json:"guests"`
	PhoneNumber   string `json:"phone_number"`
	CreatedAt     string `json:"created_at"`
}

// JSONStore keeps both collections as whole JSON arrays under one directory.
// Every reservation write is a full load/modify/rewrite done under the store's
// lock, so a single process never interleaves two read-modify-write cycles.
// Separate processes sharing the directory are not coordinated.
type JSONStore struct {
	dir string
	mu  sync.RWMutex
}

func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{dir: dir}
}

// Dir returns the data directory.
func (s *JSONStore) Dir() string {
	return s.dir
}

func (s *JSONStore) Restaurants() ([]Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var restaurants []Restaurant
	if err := loadJSON(filepath.Join(s.dir, RestaurantsFile), &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (s *JSONStore) Reservations() ([]Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadReservations()
}

// UpdateReservations loads the reservation collection, hands it to fn and
// persists whatever fn returns. If fn returns an error nothing is written.
func (s *JSONStore) UpdateReservations(fn func([]Reservation) ([]Reservation, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.loadReservations()
	if err != nil {
		return err
	}

	updated, err := fn(current)
	if err != nil {
		return err
	}
	if updated == nil {
		updated = []Reservation{}
	}

	return saveJSON(filepath.Join(s.dir, ReservationsFile), updated)
}

func (s *JSONStore) loadReservations() ([]Reservation, error) {
	var reservations []Reservation
	if err := loadJSON(filepath.Join(s.dir, ReservationsFile), &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// loadJSON treats a missing file as an empty collection.
func loadJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

func saveJSON(path string, v interface{}) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
