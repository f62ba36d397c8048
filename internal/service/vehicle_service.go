package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trip_logger/internal/model"
	"trip_logger/internal/store"
)

var ErrVehicleNotFound = errors.New("vehicle not found")

// VehicleService covers the admin fleet management surface
type VehicleService interface {
	ListVehicles(ctx context.Context) ([]model.Vehicle, error)
	GetVehicle(ctx context.Context, id string) (*model.Vehicle, error)
	AddVehicle(ctx context.Context, req model.VehicleRequest) (*model.Vehicle, error)
	UpdateVehicle(ctx context.Context, id string, req model.VehicleRequest) (*model.Vehicle, error)
	DeleteVehicle(ctx context.Context, id string) error
}

type vehicleService struct {
	store store.Store
}

// NewVehicleService creates a new VehicleService
func NewVehicleService(s store.Store) VehicleService {
	return &vehicleService{store: s}
}

func (s *vehicleService) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	return s.store.ListVehicles(ctx)
}

func (s *vehicleService) GetVehicle(ctx context.Context, id string) (*model.Vehicle, error) {
	vehicles, err := s.store.ListVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load vehicles: %w", err)
	}
	for i := range vehicles {
		if vehicles[i].ID == id {
			return &vehicles[i], nil
		}
	}
	return nil, ErrVehicleNotFound
}

// AddVehicle creates a vehicle. Plate numbers are normalized to upper case;
// duplicate plates are not rejected.
func (s *vehicleService) AddVehicle(ctx context.Context, req model.VehicleRequest) (*model.Vehicle, error) {
	vehicle := model.Vehicle{
		PlateNumber: strings.ToUpper(strings.TrimSpace(req.PlateNumber)),
		Model:       strings.TrimSpace(req.Model),
		Type:        strings.TrimSpace(req.Type),
	}
	id, err := s.store.CreateVehicle(ctx, vehicle)
	if err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}
	vehicle.ID = id
	return &vehicle, nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, id string, req model.VehicleRequest) (*model.Vehicle, error) {
	vehicle := model.Vehicle{
		ID:          id,
		PlateNumber: strings.ToUpper(strings.TrimSpace(req.PlateNumber)),
		Model:       strings.TrimSpace(req.Model),
		Type:        strings.TrimSpace(req.Type),
	}
	if err := s.store.UpdateVehicle(ctx, id, vehicle); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}
	return &vehicle, nil
}

func (s *vehicleService) DeleteVehicle(ctx context.Context, id string) error {
	if err := s.store.DeleteVehicle(ctx, id); err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	return nil
}
