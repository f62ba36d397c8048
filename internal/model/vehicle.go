package model

// Vehicle is a fleet vehicle available for trips. Plate numbers are
// normalized to upper case on create/update; uniqueness is not enforced.
type Vehicle struct {
	ID          string `json:"id" bson:"-"`
	PlateNumber string `json:"plateNumber" bson:"plateNumber"`
	Model       string `json:"model" bson:"model"`
	Type        string `json:"type" bson:"type"` // Car, Van, Lorry
}

// VehicleRequest is used for both create and update of a vehicle
type VehicleRequest struct {
	PlateNumber string `json:"plateNumber" binding:"required"`
	Model       string `json:"model" binding:"required"`
	Type        string `json:"type" binding:"required"`
}
