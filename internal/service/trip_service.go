package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"trip_logger/internal/model"
	"trip_logger/internal/store"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrActiveTripExists = errors.New("driver already has an active trip")
	ErrTripNotFound     = errors.New("trip not found")
	ErrTripNotActive    = errors.New("trip is not active")
)

// TripService enforces the trip lifecycle: a driver moves NONE -> ACTIVE via
// StartTrip and ACTIVE -> COMPLETED via EndTrip, with at most one ACTIVE trip
// per driver. Admin revisions bypass the lifecycle checks (ReviseTrip).
type TripService interface {
	StartTrip(ctx context.Context, driver model.User, req model.StartTripRequest) (*model.Trip, error)
	EndTrip(ctx context.Context, tripID string, req model.EndTripRequest) (*model.Trip, error)
	ReviseTrip(ctx context.Context, tripID string, req model.ReviseTripRequest) (*model.Trip, error)
	GetActiveTrip(ctx context.Context, driverID string) (*model.Trip, error)
	ListTrips(ctx context.Context) ([]model.Trip, error)
	DeleteTrip(ctx context.Context, id string) error
}

type tripService struct {
	store store.Store
	now   func() time.Time
}

// NewTripService creates a new TripService
func NewTripService(s store.Store) TripService {
	return &tripService{store: s, now: time.Now}
}

// computeDuration derives the trip duration in minutes from epoch-millisecond
// endpoints. Completed trips always report at least one minute.
func computeDuration(startMillis, endMillis int64) int {
	minutes := int(math.Round(float64(endMillis-startMillis) / 60000.0))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// StartTrip is the driver's thumb-in. The active-trip check is a
// read-then-write against the store and is not guarded against a concurrent
// double start from two sessions of the same driver; that race is a
// documented property of the system, not a bug to paper over here.
func (s *tripService) StartTrip(ctx context.Context, driver model.User, req model.StartTripRequest) (*model.Trip, error) {
	origin := strings.TrimSpace(req.Origin)
	if origin == "" {
		return nil, fmt.Errorf("%w: origin is required", ErrInvalidInput)
	}
	if req.VehicleID == "" {
		return nil, fmt.Errorf("%w: a vehicle must be selected", ErrInvalidInput)
	}

	vehicles, err := s.store.ListVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load vehicles: %w", err)
	}
	var vehicle *model.Vehicle
	for i := range vehicles {
		if vehicles[i].ID == req.VehicleID {
			vehicle = &vehicles[i]
			break
		}
	}
	if vehicle == nil {
		return nil, fmt.Errorf("%w: unknown vehicle", ErrInvalidInput)
	}

	existing, err := s.store.ActiveTripForDriver(ctx, driver.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for active trip: %w", err)
	}
	if existing != nil {
		return nil, ErrActiveTripExists
	}

	trip := model.Trip{
		DriverID:     driver.ID,
		DriverName:   driver.Name,
		VehicleID:    vehicle.ID,
		VehicleModel: vehicle.Model,
		PlateNumber:  vehicle.PlateNumber,
		Origin:       origin,
		Destination:  "",
		Passengers:   strings.TrimSpace(req.Passengers),
		StartTime:    s.now().UnixMilli(),
		Status:       model.TripStatusActive,
	}
	id, err := s.store.CreateTrip(ctx, trip)
	if err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}
	trip.ID = id
	return &trip, nil
}

// EndTrip is the driver's thumb-out: destination, end time, duration and
// status move to the store as one update, so a trip is never observed with a
// destination set while still ACTIVE.
func (s *tripService) EndTrip(ctx context.Context, tripID string, req model.EndTripRequest) (*model.Trip, error) {
	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		return nil, fmt.Errorf("%w: destination is required", ErrInvalidInput)
	}

	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, fmt.Errorf("failed to load trip: %w", err)
	}
	if trip.Status != model.TripStatusActive {
		return nil, ErrTripNotActive
	}

	endTime := s.now().UnixMilli()
	duration := computeDuration(trip.StartTime, endTime)

	trip.Destination = destination
	trip.EndTime = &endTime
	trip.DurationMinutes = &duration
	trip.Status = model.TripStatusCompleted
	if remarks := strings.TrimSpace(req.Remarks); remarks != "" {
		trip.Remarks = &remarks
	} else {
		trip.Remarks = nil
	}

	if err := s.store.UpdateTrip(ctx, tripID, *trip); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, fmt.Errorf("failed to complete trip: %w", err)
	}
	return trip, nil
}

// ReviseTrip is the admin override. Status and duration are recomputed purely
// from whether an end time is present after the edit: clearing the end time
// reverts the trip to ACTIVE without re-checking the one-active-trip
// invariant (source behavior, kept as is).
func (s *tripService) ReviseTrip(ctx context.Context, tripID string, req model.ReviseTripRequest) (*model.Trip, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, fmt.Errorf("failed to load trip: %w", err)
	}

	trip.Origin = strings.TrimSpace(req.Origin)
	trip.Destination = strings.TrimSpace(req.Destination)
	trip.Passengers = strings.TrimSpace(req.Passengers)
	trip.Remarks = req.Remarks
	trip.StartTime = req.StartTime

	if req.EndTime != nil {
		duration := computeDuration(req.StartTime, *req.EndTime)
		trip.EndTime = req.EndTime
		trip.DurationMinutes = &duration
		trip.Status = model.TripStatusCompleted
	} else {
		trip.EndTime = nil
		trip.DurationMinutes = nil
		trip.Status = model.TripStatusActive
	}

	if err := s.store.UpdateTrip(ctx, tripID, *trip); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, fmt.Errorf("failed to revise trip: %w", err)
	}
	return trip, nil
}

// GetActiveTrip looks up the driver's in-progress trip, if any. Used on
// session resume so a returning driver sees the trip instead of a start form.
func (s *tripService) GetActiveTrip(ctx context.Context, driverID string) (*model.Trip, error) {
	return s.store.ActiveTripForDriver(ctx, driverID)
}

func (s *tripService) ListTrips(ctx context.Context) ([]model.Trip, error) {
	return s.store.ListTrips(ctx)
}

func (s *tripService) DeleteTrip(ctx context.Context, id string) error {
	if err := s.store.DeleteTrip(ctx, id); err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	return nil
}
