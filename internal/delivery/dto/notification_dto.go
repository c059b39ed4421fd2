package dto

import "time"

type BadgeCountResponse struct {
	Count int64 `json:"count"`
}

// NotificationResponse tells a patient that a doctor decided on one of
// their appointments.
type NotificationResponse struct {
	AppointmentID  int64      `json:"appointment_id"`
	Status         string     `json:"status"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	DoctorName     string     `json:"doctor_name,omitempty"`
	ScheduledAt    time.Time  `json:"scheduled_at"`
	TransitionedAt *time.Time `json:"transitioned_at,omitempty"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
}
