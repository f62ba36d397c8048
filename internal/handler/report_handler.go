package handler

import (
	"net/http"

	"trip_logger/internal/model"
	"trip_logger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ReportHandler produces the filtered trip log view and its CSV export
type ReportHandler struct {
	trips    service.TripService
	vehicles service.VehicleService
	reports  service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(trips service.TripService, vehicles service.VehicleService, reports service.ReportService) *ReportHandler {
	return &ReportHandler{trips: trips, vehicles: vehicles, reports: reports}
}

func filterFromQuery(c *gin.Context) (model.TripFilter, service.SortOrder) {
	filter := model.TripFilter{
		DriverID:   c.Query("driverId"),
		DateFilter: c.DefaultQuery("date", model.DateFilterAll),
		StartDate:  c.Query("start"),
		EndDate:    c.Query("end"),
		Search:     c.Query("q"),
	}
	order := service.SortDesc
	if c.Query("sort") == string(service.SortAsc) {
		order = service.SortAsc
	}
	return filter, order
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	trips, err := h.trips.ListTrips(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Failed to load trips for report")
		respondStoreError(c, err, "Failed to build report")
		return
	}

	filter, order := filterFromQuery(c)
	c.JSON(http.StatusOK, h.reports.Query(trips, filter, order))
}

func (h *ReportHandler) ExportCSV(c *gin.Context) {
	trips, err := h.trips.ListTrips(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Failed to load trips for export")
		respondStoreError(c, err, "Failed to export report")
		return
	}

	vehicles, err := h.vehicles.ListVehicles(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Failed to load vehicles for export")
		respondStoreError(c, err, "Failed to export report")
		return
	}
	vehicleLookup := make(map[string]model.Vehicle, len(vehicles))
	for _, v := range vehicles {
		vehicleLookup[v.ID] = v
	}

	filter, order := filterFromQuery(c)
	filtered := h.reports.Query(trips, filter, order)

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="trip-report.csv"`)
	if err := h.reports.WriteCSV(c.Writer, filtered, vehicleLookup); err != nil {
		logrus.WithError(err).Error("Failed to write csv export")
	}
}

// RegisterReportRoutes registers the admin reporting routes
func (h *ReportHandler) RegisterReportRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	reports := rg.Group("/reports")
	reports.Use(authMW, adminMW)
	{
		reports.GET("", h.GetReport)
		reports.GET("/export", h.ExportCSV)
	}
}
