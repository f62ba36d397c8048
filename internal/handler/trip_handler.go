package handler

import (
	"errors"
	"net/http"

	"trip_logger/internal/middleware"
	"trip_logger/internal/model"
	"trip_logger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// TripHandler handles the driver lifecycle and the admin trip surface
type TripHandler struct {
	service service.TripService
}

// NewTripHandler creates a new TripHandler
func NewTripHandler(s service.TripService) *TripHandler {
	return &TripHandler{service: s}
}

// authDriver rebuilds the driver snapshot from the token claims
func authDriver(c *gin.Context) (model.User, error) {
	idVal, ok := c.Get(middleware.AuthUserKey)
	if !ok {
		return model.User{}, errors.New("user ID not found in context")
	}
	id, ok := idVal.(string)
	if !ok {
		return model.User{}, errors.New("invalid user ID type in context")
	}
	name, _ := c.Get(middleware.AuthNameKey)
	nameStr, _ := name.(string)
	return model.User{ID: id, Name: nameStr}, nil
}

func (h *TripHandler) StartTrip(c *gin.Context) {
	driver, err := authDriver(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req model.StartTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	trip, err := h.service.StartTrip(c.Request.Context(), driver, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrActiveTripExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logrus.WithError(err).Error("Failed to start trip")
			respondStoreError(c, err, "Failed to start trip")
		}
		return
	}
	c.JSON(http.StatusCreated, trip)
}

func (h *TripHandler) EndTrip(c *gin.Context) {
	driver, err := authDriver(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	tripID := c.Param("id")

	// Drivers may only close their own in-progress trip
	active, err := h.service.GetActiveTrip(c.Request.Context(), driver.ID)
	if err != nil {
		logrus.WithError(err).Error("Failed to look up active trip")
		respondStoreError(c, err, "Failed to end trip")
		return
	}
	if active == nil || active.ID != tripID {
		c.JSON(http.StatusNotFound, gin.H{"error": service.ErrTripNotFound.Error()})
		return
	}

	var req model.EndTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	trip, err := h.service.EndTrip(c.Request.Context(), tripID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrTripNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrTripNotActive):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logrus.WithError(err).Error("Failed to end trip")
			respondStoreError(c, err, "Failed to end trip")
		}
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (h *TripHandler) GetActiveTrip(c *gin.Context) {
	driver, err := authDriver(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	trip, err := h.service.GetActiveTrip(c.Request.Context(), driver.ID)
	if err != nil {
		logrus.WithError(err).Error("Failed to look up active trip")
		respondStoreError(c, err, "Failed to retrieve active trip")
		return
	}
	// trip is null when the driver has nothing in progress
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

func (h *TripHandler) ListTrips(c *gin.Context) {
	trips, err := h.service.ListTrips(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Failed to list trips")
		respondStoreError(c, err, "Failed to retrieve trips")
		return
	}
	c.JSON(http.StatusOK, trips)
}

func (h *TripHandler) ReviseTrip(c *gin.Context) {
	var req model.ReviseTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	trip, err := h.service.ReviseTrip(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, service.ErrTripNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logrus.WithError(err).Error("Failed to revise trip")
		respondStoreError(c, err, "Failed to revise trip")
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (h *TripHandler) DeleteTrip(c *gin.Context) {
	if err := h.service.DeleteTrip(c.Request.Context(), c.Param("id")); err != nil {
		logrus.WithError(err).Error("Failed to delete trip")
		respondStoreError(c, err, "Failed to delete trip")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trip deleted successfully"})
}

// RegisterTripRoutes registers trip routes
func (h *TripHandler) RegisterTripRoutes(rg *gin.RouterGroup, authMW, driverMW, adminMW gin.HandlerFunc) {
	trips := rg.Group("/trips")
	trips.Use(authMW)
	{
		trips.GET("/active", driverMW, h.GetActiveTrip)
		trips.POST("/start", driverMW, h.StartTrip)
		trips.POST("/:id/end", driverMW, h.EndTrip)

		trips.GET("", adminMW, h.ListTrips)
		trips.PUT("/:id", adminMW, h.ReviseTrip)
		trips.DELETE("/:id", adminMW, h.DeleteTrip)
	}
}
