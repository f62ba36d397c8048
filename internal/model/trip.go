package model

const (
	TripStatusActive    = "ACTIVE"
	TripStatusCompleted = "COMPLETED"
)

// Trip is one logbook entry. Driver and vehicle display fields are snapshots
// taken at trip start (or at admin edit time) and are not kept in sync with
// later edits to the source User/Vehicle records. All timestamps are epoch
// milliseconds. EndTime and DurationMinutes are present exactly when the trip
// is COMPLETED.
type Trip struct {
	ID              string  `json:"id" bson:"-"`
	DriverID        string  `json:"driverId" bson:"driverId"`
	DriverName      string  `json:"driverName" bson:"driverName"`
	VehicleID       string  `json:"vehicleId" bson:"vehicleId"`
	VehicleModel    string  `json:"vehicleModel" bson:"vehicleModel"`
	PlateNumber     string  `json:"plateNumber" bson:"plateNumber"`
	Origin          string  `json:"origin" bson:"origin"`
	Destination     string  `json:"destination" bson:"destination"` // Empty while active
	Passengers      string  `json:"passengers" bson:"passengers"`   // Comma separated names or count
	Remarks         *string `json:"remarks,omitempty" bson:"remarks,omitempty"`
	StartTime       int64   `json:"startTime" bson:"startTime"`
	EndTime         *int64  `json:"endTime,omitempty" bson:"endTime,omitempty"`
	DurationMinutes *int    `json:"durationMinutes,omitempty" bson:"durationMinutes,omitempty"`
	Status          string  `json:"status" bson:"status"`
}

// StartTripRequest is the driver's thumb-in payload
type StartTripRequest struct {
	VehicleID  string `json:"vehicleId" binding:"required"`
	Origin     string `json:"origin" binding:"required"`
	Passengers string `json:"passengers"`
}

// EndTripRequest is the driver's thumb-out payload
type EndTripRequest struct {
	Destination string `json:"destination" binding:"required"`
	Remarks     string `json:"remarks"`
}

// ReviseTripRequest is the admin override: a full replacement of the editable
// fields. A nil EndTime clears the end time and reverts the trip to ACTIVE.
type ReviseTripRequest struct {
	Origin      string  `json:"origin" binding:"required"`
	Destination string  `json:"destination"`
	Passengers  string  `json:"passengers"`
	Remarks     *string `json:"remarks"`
	StartTime   int64   `json:"startTime" binding:"required"`
	EndTime     *int64  `json:"endTime"`
}

// Date filter kinds accepted by TripFilter
const (
	DateFilterAll    = "all"
	DateFilterToday  = "today"
	DateFilterWeek   = "week"
	DateFilterCustom = "custom"
)

// TripFilter contains the report filter parameters. A zero value matches
// every trip.
type TripFilter struct {
	DriverID   string // "" or "all" means no driver filter
	DateFilter string // one of the DateFilter* constants; "" means all
	StartDate  string // YYYY-MM-DD, custom range only
	EndDate    string // YYYY-MM-DD, custom range only
	Search     string // case-insensitive substring
}
