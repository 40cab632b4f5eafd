package tools

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbdamask/dinebot/pkg/events"
	"github.com/jbdamask/dinebot/pkg/store"
)

const validBooking = `{"user_name":"Asha Rao","restaurant_id":2,"date":"25-12-2025","time":"7:00 PM","guests":4,"phone_number":"+91-9876543210"}`

func TestCreateReservation(t *testing.T) {
	st := newTestStore(t, sampleRestaurants()...)
	rec := &eventRecorder{}
	tool := NewCreateReservationTool(st, rec)
	tool.now = func() time.Time { return time.Date(2025, 12, 1, 10, 30, 0, 0, time.Local) }

	res := run(t, tool, validBooking).(*ReservationResult)
	require.True(t, res.Success)
	require.NotNil(t, res.Reservation)
	assert.Equal(t, 1, res.Reservation.ReservationID)
	assert.Equal(t, "Asha Rao", res.Reservation.UserName)
	assert.Equal(t, "2025-12-01T10:30:00.000000", res.Reservation.CreatedAt)

	res = run(t, tool, validBooking).(*ReservationResult)
	require.True(t, res.Success)
	assert.Equal(t, 2, res.Reservation.ReservationID, "id is previous count plus one")

	saved, err := st.Reservations()
	require.NoError(t, err)
	assert.Len(t, saved, 2)

	require.Len(t, rec.Events, 2)
	assert.Equal(t, events.TypeReservationCreated, rec.Events[0].Type)
	assert.Equal(t, 2, rec.Events[0].RestaurantID)
}

func TestCreateReservationRejectsIncompleteBooking(t *testing.T) {
	st := newTestStore(t, sampleRestaurants()...)
	tool := NewCreateReservationTool(st, nil)

	for _, args := range []string{
		`{"user_name":"","restaurant_id":2,"date":"25-12-2025","time":"7:00 PM","guests":4,"phone_number":"1"}`,
		`{"user_name":"A","restaurant_id":2,"date":"25-12-2025","time":"7:00 PM","guests":0,"phone_number":"1"}`,
		`{"user_name":"A","restaurant_id":2,"date":"25-12-2025","time":"","guests":2,"phone_number":"1"}`,
	} {
		res := run(t, tool, args).(*ReservationResult)
		assert.False(t, res.Success)
		assert.Equal(t, "Missing required booking information", res.Error)
	}

	res := run(t, tool, `{"user_name":"A","restaurant_id":2,"date":"2025-12-25","time":"7 PM","guests":2,"phone_number":"1"}`).(*ReservationResult)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "dd-mm-yyyy")

	saved, err := st.Reservations()
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func seedReservation(t *testing.T, st *store.JSONStore) {
	t.Helper()
	require.NoError(t, st.UpdateReservations(func(current []store.Reservation) ([]store.Reservation, error) {
		return append(current, store.Reservation{
			ReservationID: 1, UserName: "Asha", RestaurantID: 1,
			Date: "25-12-2025", Time: "7:00 PM", Guests: 2, PhoneNumber: "1",
		}), nil
	}))
}

func TestCancelReservation(t *testing.T) {
	st := newTestStore(t, sampleRestaurants()...)
	seedReservation(t, st)
	rec := &eventRecorder{}
	tool := &CancelReservationTool{store: st, pub: rec}

	res := run(t, tool, `{"reservation_id":42}`).(*ChangeResult)
	assert.False(t, res.Success)
	assert.Equal(t, "Reservation not found", res.Message)

	res = run(t, tool, `{"reservation_id":1}`).(*ChangeResult)
	assert.True(t, res.Success)

	saved, err := st.Reservations()
	require.NoError(t, err)
	assert.Empty(t, saved)
	require.Len(t, rec.Events, 1)
	assert.Equal(t, events.TypeReservationCancelled, rec.Events[0].Type)
}

func TestUpdateReservationOnlyOverwritesSuppliedFields(t *testing.T) {
	st := newTestStore(t, sampleRestaurants()...)
	seedReservation(t, st)
	tool := &UpdateReservationTool{store: st, pub: events.NopPublisher{}}

	res := run(t, tool, `{"reservation_id":7,"guests":3}`).(*ChangeResult)
	assert.False(t, res.Success)
	assert.Equal(t, "Reservation not found", res.Message)

	res = run(t, tool, `{"reservation_id":1,"guests":6}`).(*ChangeResult)
	require.True(t, res.Success)

	saved, err := st.Reservations()
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, 6, saved[0].Guests)
	assert.Equal(t, "25-12-2025", saved[0].Date)
	assert.Equal(t, "7:00 PM", saved[0].Time)
}
