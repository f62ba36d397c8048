package store

import (
	"context"
	"errors"

	"trip_logger/internal/model"
)

// Collection names, shared by both backends
const (
	CollUsers    = "users"
	CollVehicles = "vehicles"
	CollTrips    = "trips"
)

var (
	// ErrNotFound is returned by updates and lookups on a missing id
	ErrNotFound = errors.New("record not found")
	// ErrBackendUnavailable is returned when the remote backend cannot be reached
	ErrBackendUnavailable = errors.New("storage backend unavailable")
)

// Store is the persistence seam for the three collections. The backend is
// chosen once at startup (remote document database or local fallback) and the
// same Store value is used for the lifetime of the process; callers never
// branch on which backend is behind it.
//
// Create assigns the id (remote-assigned for the document backend, locally
// generated for the fallback) and ids are never reused after deletion.
// Update fails with ErrNotFound for a missing id; Delete is idempotent.
type Store interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, user model.User) (string, error)
	UpdateUser(ctx context.Context, id string, user model.User) error
	DeleteUser(ctx context.Context, id string) error
	UserExistsWithRole(ctx context.Context, role string) (bool, error)

	ListVehicles(ctx context.Context) ([]model.Vehicle, error)
	CreateVehicle(ctx context.Context, vehicle model.Vehicle) (string, error)
	UpdateVehicle(ctx context.Context, id string, vehicle model.Vehicle) error
	DeleteVehicle(ctx context.Context, id string) error

	ListTrips(ctx context.Context) ([]model.Trip, error)
	GetTrip(ctx context.Context, id string) (*model.Trip, error)
	CreateTrip(ctx context.Context, trip model.Trip) (string, error)
	UpdateTrip(ctx context.Context, id string, trip model.Trip) error
	DeleteTrip(ctx context.Context, id string) error
	ActiveTripForDriver(ctx context.Context, driverID string) (*model.Trip, error)

	Close() error
}
