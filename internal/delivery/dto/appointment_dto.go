package dto

import "time"

// Request DTOs

// CreateAppointmentRequest is sent by a patient. ScheduledAt accepts
// RFC 3339 or the "2006-01-02T15:04" form produced by datetime inputs.
type CreateAppointmentRequest struct {
	DoctorID    int64  `json:"doctor_id" validate:"required,min=1"`
	ScheduledAt string `json:"scheduled_at" validate:"required"`
	Reason      string `json:"reason" validate:"required,max=2000"`
}

type TransitionAppointmentRequest struct {
	Status string `json:"status" validate:"required"`
}

// Response DTOs

type AppointmentResponse struct {
	ID             int64      `json:"id"`
	PatientID      int64      `json:"patient_id"`
	PatientName    string     `json:"patient_name,omitempty"`
	DoctorID       int64      `json:"doctor_id"`
	DoctorName     string     `json:"doctor_name,omitempty"`
	Specialization string     `json:"specialization,omitempty"`
	ScheduledAt    time.Time  `json:"scheduled_at"`
	Reason         string     `json:"reason"`
	Status         string     `json:"status"`
	TransitionedAt *time.Time `json:"transitioned_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
