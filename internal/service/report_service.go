package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"trip_logger/internal/model"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ReportService produces filtered, sorted views of the trip collection for
// the table and export surfaces. It never mutates data.
type ReportService interface {
	Query(trips []model.Trip, filter model.TripFilter, order SortOrder) []model.Trip
	WriteCSV(w io.Writer, trips []model.Trip, vehicles map[string]model.Vehicle) error
}

type reportService struct{}

// NewReportService creates a new ReportService
func NewReportService() ReportService {
	return &reportService{}
}

func (s *reportService) Query(trips []model.Trip, filter model.TripFilter, order SortOrder) []model.Trip {
	return queryAt(time.Now(), trips, filter, order)
}

// queryAt filters on trip start time against the reference instant's local
// calendar: "today" is since local midnight, "week" is a rolling seven days
// including today, and a custom range spans whole calendar days inclusive.
func queryAt(now time.Time, trips []model.Trip, filter model.TripFilter, order SortOrder) []model.Trip {
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := todayStart.AddDate(0, 0, -7)

	var customStart, customEnd int64
	customValid := false
	if filter.DateFilter == model.DateFilterCustom {
		start, errStart := time.ParseInLocation("2006-01-02", filter.StartDate, now.Location())
		end, errEnd := time.ParseInLocation("2006-01-02", filter.EndDate, now.Location())
		if errStart == nil && errEnd == nil {
			customStart = start.UnixMilli()
			customEnd = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999000000, now.Location()).UnixMilli()
			customValid = true
		}
	}

	query := strings.ToLower(strings.TrimSpace(filter.Search))

	filtered := make([]model.Trip, 0, len(trips))
	for _, trip := range trips {
		if filter.DriverID != "" && filter.DriverID != "all" && trip.DriverID != filter.DriverID {
			continue
		}

		switch filter.DateFilter {
		case model.DateFilterToday:
			if trip.StartTime < todayStart.UnixMilli() {
				continue
			}
		case model.DateFilterWeek:
			if trip.StartTime < weekStart.UnixMilli() {
				continue
			}
		case model.DateFilterCustom:
			if customValid && (trip.StartTime < customStart || trip.StartTime > customEnd) {
				continue
			}
		}

		if query != "" && !matchesSearch(trip, query) {
			continue
		}

		filtered = append(filtered, trip)
	}

	// Stable sort: trips with equal start times keep their input order
	sort.SliceStable(filtered, func(i, j int) bool {
		if order == SortAsc {
			return filtered[i].StartTime < filtered[j].StartTime
		}
		return filtered[i].StartTime > filtered[j].StartTime
	})

	return filtered
}

// matchesSearch does a case-insensitive substring match over the display
// fields. Absent optional fields simply never match.
func matchesSearch(trip model.Trip, query string) bool {
	fields := []string{trip.DriverName, trip.PlateNumber, trip.Origin, trip.Destination}
	if trip.Remarks != nil {
		fields = append(fields, *trip.Remarks)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// WriteCSV renders the (already filtered and sorted) trip sequence as a
// tabular export, resolving vehicle types through the supplied lookup.
func (s *reportService) WriteCSV(w io.Writer, trips []model.Trip, vehicles map[string]model.Vehicle) error {
	cw := csv.NewWriter(w)

	header := []string{"Driver", "Plate Number", "Vehicle Model", "Vehicle Type", "Origin", "Destination", "Passengers", "Remarks", "Start Time", "End Time", "Duration (min)", "Status"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, t := range trips {
		vehicleType := ""
		if v, ok := vehicles[t.VehicleID]; ok {
			vehicleType = v.Type
		}

		remarks := ""
		if t.Remarks != nil {
			remarks = *t.Remarks
		}
		endTime := ""
		if t.EndTime != nil {
			endTime = formatMillis(*t.EndTime)
		}
		duration := ""
		if t.DurationMinutes != nil {
			duration = fmt.Sprintf("%d", *t.DurationMinutes)
		}

		row := []string{
			t.DriverName,
			t.PlateNumber,
			t.VehicleModel,
			vehicleType,
			t.Origin,
			t.Destination,
			t.Passengers,
			remarks,
			formatMillis(t.StartTime),
			endTime,
			duration,
			t.Status,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatMillis(millis int64) string {
	return time.UnixMilli(millis).Format("2006-01-02 15:04")
}
