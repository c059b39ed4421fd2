package dto

// Request DTOs

// UpsertAvailabilityRequest sets the working window for one weekday.
// DayOfWeek is an English day name or its number, Monday = 1.
type UpsertAvailabilityRequest struct {
	DayOfWeek string `json:"day_of_week" validate:"required"`
	StartTime string `json:"start_time" validate:"required,clock"`
	EndTime   string `json:"end_time" validate:"required,clock"`
}

// Response DTOs

type AvailabilityResponse struct {
	ID        int64  `json:"id,omitempty"`
	DoctorID  int64  `json:"doctor_id"`
	DayOfWeek int    `json:"day_of_week"`
	DayName   string `json:"day_name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type AvailabilityListResponse struct {
	Slots []AvailabilityResponse `json:"slots"`
	Total int                    `json:"total"`
}
