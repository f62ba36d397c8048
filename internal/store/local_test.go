package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip_logger/internal/model"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLocalStore_UserRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := model.User{Name: "Ali", Username: "ali", Password: "secret", Role: model.RoleDriver}
	id, err := s.CreateUser(ctx, user)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	got := users[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, user.Name, got.Name)
	assert.Equal(t, user.Username, got.Username)
	assert.Equal(t, user.Password, got.Password)
	assert.Equal(t, user.Role, got.Role)
}

func TestLocalStore_CreateAssignsUniqueIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := s.CreateVehicle(ctx, model.Vehicle{PlateNumber: "AB12CD", Model: "Hilux", Type: "Car"})
		require.NoError(t, err)
		assert.False(t, seen[id], "id %s assigned twice", id)
		seen[id] = true
	}
}

func TestLocalStore_UpdateMissingID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.UpdateUser(ctx, "nope", model.User{Name: "Ali"})
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.UpdateTrip(ctx, "nope", model.Trip{Origin: "Depot"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_DeleteIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateVehicle(ctx, model.Vehicle{PlateNumber: "AB12CD", Model: "Hilux", Type: "Car"})
	require.NoError(t, err)

	assert.NoError(t, s.DeleteVehicle(ctx, id))
	assert.NoError(t, s.DeleteVehicle(ctx, id))
	assert.NoError(t, s.DeleteVehicle(ctx, "never-existed"))

	vehicles, err := s.ListVehicles(ctx)
	require.NoError(t, err)
	assert.Empty(t, vehicles)
}

func TestLocalStore_GetTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trip := model.Trip{
		DriverID:   "d1",
		DriverName: "Ali",
		Origin:     "Depot",
		StartTime:  1700000000000,
		Status:     model.TripStatusActive,
	}
	id, err := s.CreateTrip(ctx, trip)
	require.NoError(t, err)

	got, err := s.GetTrip(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Depot", got.Origin)
	assert.Nil(t, got.EndTime)
	assert.Nil(t, got.DurationMinutes)

	_, err = s.GetTrip(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_ActiveTripForDriver(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateTrip(ctx, model.Trip{DriverID: "d1", Status: model.TripStatusCompleted})
	require.NoError(t, err)
	activeID, err := s.CreateTrip(ctx, model.Trip{DriverID: "d1", Status: model.TripStatusActive})
	require.NoError(t, err)
	_, err = s.CreateTrip(ctx, model.Trip{DriverID: "d2", Status: model.TripStatusActive})
	require.NoError(t, err)

	got, err := s.ActiveTripForDriver(ctx, "d1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, activeID, got.ID)

	got, err = s.ActiveTripForDriver(ctx, "d3")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLocalStore_UserExistsWithRole(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	exists, err := s.UserExistsWithRole(ctx, model.RoleHeadDriver)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = s.CreateUser(ctx, model.User{Username: "admin", Role: model.RoleHeadDriver})
	require.NoError(t, err)

	exists, err = s.UserExistsWithRole(ctx, model.RoleHeadDriver)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLocalStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()

	s, err := NewLocalStore(path)
	require.NoError(t, err)
	id, err := s.CreateUser(ctx, model.User{Name: "Ali", Username: "ali", Password: "secret", Role: model.RoleDriver})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = NewLocalStore(path)
	require.NoError(t, err)
	defer s.Close()

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, id, users[0].ID)
	assert.Equal(t, "secret", users[0].Password)
}

func TestLocalStore_UpdateClearsOptionalFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	end := int64(1700000060000)
	duration := 1
	remarks := "site visit"
	id, err := s.CreateTrip(ctx, model.Trip{
		DriverID:        "d1",
		StartTime:       1700000000000,
		EndTime:         &end,
		DurationMinutes: &duration,
		Remarks:         &remarks,
		Status:          model.TripStatusCompleted,
	})
	require.NoError(t, err)

	err = s.UpdateTrip(ctx, id, model.Trip{
		DriverID:  "d1",
		StartTime: 1700000000000,
		Status:    model.TripStatusActive,
	})
	require.NoError(t, err)

	got, err := s.GetTrip(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.EndTime)
	assert.Nil(t, got.DurationMinutes)
	assert.Nil(t, got.Remarks)
	assert.Equal(t, model.TripStatusActive, got.Status)
}
