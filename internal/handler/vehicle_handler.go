package handler

import (
	"errors"
	"net/http"

	"trip_logger/internal/model"
	"trip_logger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// VehicleHandler handles the fleet management surface
type VehicleHandler struct {
	service service.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler
func NewVehicleHandler(s service.VehicleService) *VehicleHandler {
	return &VehicleHandler{service: s}
}

func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.service.ListVehicles(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Failed to list vehicles")
		respondStoreError(c, err, "Failed to retrieve vehicles")
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

func (h *VehicleHandler) AddVehicle(c *gin.Context) {
	var req model.VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	vehicle, err := h.service.AddVehicle(c.Request.Context(), req)
	if err != nil {
		logrus.WithError(err).Error("Failed to add vehicle")
		respondStoreError(c, err, "Failed to add vehicle")
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	var req model.VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	vehicle, err := h.service.UpdateVehicle(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logrus.WithError(err).Error("Failed to update vehicle")
		respondStoreError(c, err, "Failed to update vehicle")
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	if err := h.service.DeleteVehicle(c.Request.Context(), c.Param("id")); err != nil {
		logrus.WithError(err).Error("Failed to delete vehicle")
		respondStoreError(c, err, "Failed to delete vehicle")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted successfully"})
}

// RegisterVehicleRoutes registers vehicle routes. Listing is open to every
// authenticated user (drivers pick a vehicle at thumb-in); mutation is admin
// only.
func (h *VehicleHandler) RegisterVehicleRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	vehicles := rg.Group("/vehicles")
	vehicles.Use(authMW)
	{
		vehicles.GET("", h.ListVehicles)
		vehicles.POST("", adminMW, h.AddVehicle)
		vehicles.PUT("/:id", adminMW, h.UpdateVehicle)
		vehicles.DELETE("/:id", adminMW, h.DeleteVehicle)
	}
}
