package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip_logger/internal/model"
)

func TestAddVehicle_NormalizesPlate(t *testing.T) {
	svc := NewVehicleService(newTestStore(t))
	ctx := context.Background()

	v, err := svc.AddVehicle(ctx, model.VehicleRequest{
		PlateNumber: " ab12cd ", Model: "Hilux", Type: "Car",
	})
	require.NoError(t, err)
	assert.Equal(t, "AB12CD", v.PlateNumber)
	assert.NotEmpty(t, v.ID)
}

func TestAddVehicle_AllowsDuplicatePlates(t *testing.T) {
	svc := NewVehicleService(newTestStore(t))
	ctx := context.Background()

	_, err := svc.AddVehicle(ctx, model.VehicleRequest{PlateNumber: "AB12CD", Model: "Hilux", Type: "Car"})
	require.NoError(t, err)
	_, err = svc.AddVehicle(ctx, model.VehicleRequest{PlateNumber: "AB12CD", Model: "Transit", Type: "Van"})
	require.NoError(t, err)

	all, err := svc.ListVehicles(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateVehicle(t *testing.T) {
	svc := NewVehicleService(newTestStore(t))
	ctx := context.Background()

	v, err := svc.AddVehicle(ctx, model.VehicleRequest{PlateNumber: "AB12CD", Model: "Hilux", Type: "Car"})
	require.NoError(t, err)

	updated, err := svc.UpdateVehicle(ctx, v.ID, model.VehicleRequest{
		PlateNumber: "xy99zz", Model: "Transit", Type: "Van",
	})
	require.NoError(t, err)
	assert.Equal(t, "XY99ZZ", updated.PlateNumber)

	_, err = svc.UpdateVehicle(ctx, "missing", model.VehicleRequest{
		PlateNumber: "AA11AA", Model: "Hilux", Type: "Car",
	})
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestDeleteVehicle_Idempotent(t *testing.T) {
	svc := NewVehicleService(newTestStore(t))
	ctx := context.Background()

	v, err := svc.AddVehicle(ctx, model.VehicleRequest{PlateNumber: "AB12CD", Model: "Hilux", Type: "Car"})
	require.NoError(t, err)

	assert.NoError(t, svc.DeleteVehicle(ctx, v.ID))
	assert.NoError(t, svc.DeleteVehicle(ctx, v.ID))
}
