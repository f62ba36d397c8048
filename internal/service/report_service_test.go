package service

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip_logger/internal/model"
)

// Noon on a fixed day, local time, so "today"/"week" thresholds are stable
var reportNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)

func tripAt(id, driverID string, start time.Time) model.Trip {
	return model.Trip{
		ID:         id,
		DriverID:   driverID,
		DriverName: "Ali",
		StartTime:  start.UnixMilli(),
		Status:     model.TripStatusCompleted,
	}
}

func ids(trips []model.Trip) []string {
	out := make([]string, len(trips))
	for i, t := range trips {
		out[i] = t.ID
	}
	return out
}

func TestQuery_DriverFilter(t *testing.T) {
	trips := []model.Trip{
		tripAt("t1", "d1", reportNow),
		tripAt("t2", "d2", reportNow),
	}

	got := queryAt(reportNow, trips, model.TripFilter{DriverID: "d1"}, SortAsc)
	assert.Equal(t, []string{"t1"}, ids(got))

	got = queryAt(reportNow, trips, model.TripFilter{DriverID: "all"}, SortAsc)
	assert.Len(t, got, 2)

	got = queryAt(reportNow, trips, model.TripFilter{}, SortAsc)
	assert.Len(t, got, 2)
}

func TestQuery_TodayFilter(t *testing.T) {
	midnight := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	trips := []model.Trip{
		tripAt("yesterday", "d1", midnight.Add(-time.Hour)),
		tripAt("early", "d1", midnight.Add(time.Second)), // 00:00:01 today
		tripAt("later", "d1", reportNow),
	}

	got := queryAt(reportNow, trips, model.TripFilter{DateFilter: model.DateFilterToday}, SortAsc)
	assert.Equal(t, []string{"early", "later"}, ids(got))
}

func TestQuery_WeekFilter(t *testing.T) {
	midnight := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	trips := []model.Trip{
		tripAt("old", "d1", midnight.AddDate(0, 0, -8)),
		tripAt("edge", "d1", midnight.AddDate(0, 0, -7)),
		tripAt("recent", "d1", reportNow),
	}

	got := queryAt(reportNow, trips, model.TripFilter{DateFilter: model.DateFilterWeek}, SortAsc)
	assert.Equal(t, []string{"edge", "recent"}, ids(got))
}

func TestQuery_CustomRangeInclusive(t *testing.T) {
	trips := []model.Trip{
		tripAt("before", "d1", time.Date(2024, 3, 9, 23, 59, 59, 0, time.Local)),
		tripAt("startEdge", "d1", time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)),
		tripAt("endEdge", "d1", time.Date(2024, 3, 12, 23, 59, 59, 999000000, time.Local)),
		tripAt("after", "d1", time.Date(2024, 3, 13, 0, 0, 0, 0, time.Local)),
	}

	filter := model.TripFilter{
		DateFilter: model.DateFilterCustom,
		StartDate:  "2024-03-10",
		EndDate:    "2024-03-12",
	}
	got := queryAt(reportNow, trips, filter, SortAsc)
	assert.Equal(t, []string{"startEdge", "endEdge"}, ids(got))
}

func TestQuery_FreeTextCaseInsensitive(t *testing.T) {
	remarks := "Deliver parts"
	trips := []model.Trip{
		{ID: "t1", DriverName: "Ali", PlateNumber: "AB12CD", Origin: "Depot", StartTime: 1},
		{ID: "t2", DriverName: "Siti", PlateNumber: "XY99ZZ", Origin: "Depot", Destination: "Site A", StartTime: 2},
		{ID: "t3", DriverName: "Muthu", PlateNumber: "QQ11QQ", Origin: "Depot", Remarks: &remarks, StartTime: 3},
	}

	got := queryAt(reportNow, trips, model.TripFilter{Search: "ab12"}, SortAsc)
	assert.Equal(t, []string{"t1"}, ids(got))

	got = queryAt(reportNow, trips, model.TripFilter{Search: "SITE a"}, SortAsc)
	assert.Equal(t, []string{"t2"}, ids(got))

	got = queryAt(reportNow, trips, model.TripFilter{Search: "deliver"}, SortAsc)
	assert.Equal(t, []string{"t3"}, ids(got))

	got = queryAt(reportNow, trips, model.TripFilter{Search: "nothing"}, SortAsc)
	assert.Empty(t, got)
}

func TestQuery_SortStability(t *testing.T) {
	trips := []model.Trip{
		tripAt("a", "d1", reportNow),
		tripAt("b", "d1", reportNow), // same start time as a
		tripAt("c", "d1", reportNow.Add(-time.Hour)),
	}

	got := queryAt(reportNow, trips, model.TripFilter{}, SortAsc)
	assert.Equal(t, []string{"c", "a", "b"}, ids(got))

	got = queryAt(reportNow, trips, model.TripFilter{}, SortDesc)
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))
}

func TestQuery_DoesNotMutateInput(t *testing.T) {
	trips := []model.Trip{
		tripAt("b", "d1", reportNow),
		tripAt("a", "d1", reportNow.Add(-time.Hour)),
	}

	_ = queryAt(reportNow, trips, model.TripFilter{}, SortAsc)
	assert.Equal(t, []string{"b", "a"}, ids(trips))
}

func TestWriteCSV(t *testing.T) {
	svc := NewReportService()

	end := int64(1700002820000)
	duration := 47
	remarks := "towing"
	trips := []model.Trip{
		{
			ID: "t1", DriverName: "Ali", VehicleID: "v1", VehicleModel: "Hilux",
			PlateNumber: "AB12CD", Origin: "Depot", Destination: "Site A",
			Passengers: "2", Remarks: &remarks, StartTime: 1700000000000,
			EndTime: &end, DurationMinutes: &duration, Status: model.TripStatusCompleted,
		},
		{
			ID: "t2", DriverName: "Siti", VehicleID: "v2", VehicleModel: "Transit",
			PlateNumber: "XY99ZZ", Origin: "Depot",
			StartTime: 1700000000000, Status: model.TripStatusActive,
		},
	}
	vehicles := map[string]model.Vehicle{
		"v1": {ID: "v1", PlateNumber: "AB12CD", Model: "Hilux", Type: "Car"},
	}

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(&buf, trips, vehicles))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Driver")
	assert.Contains(t, lines[1], "Ali")
	assert.Contains(t, lines[1], "Car") // resolved through the vehicle lookup
	assert.Contains(t, lines[1], "47")
	assert.Contains(t, lines[2], "ACTIVE")
	assert.NotContains(t, lines[2], "Car") // v2 missing from the lookup
}
