package entity

import (
	"time"
)

// AppointmentStatus represents the approval state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending  AppointmentStatus = "Pending"
	AppointmentStatusAccepted AppointmentStatus = "Accepted"
	AppointmentStatusRejected AppointmentStatus = "Rejected"
)

// IsDecision reports whether s is a state a doctor may move an appointment to.
func (s AppointmentStatus) IsDecision() bool {
	return s == AppointmentStatusAccepted || s == AppointmentStatusRejected
}

// CanTransition reports whether an appointment in state from may move to
// state to. In strict mode only Pending appointments can be decided;
// otherwise a later decision overwrites an earlier one.
func CanTransition(from, to AppointmentStatus, strict bool) bool {
	if !to.IsDecision() {
		return false
	}
	if strict {
		return from == AppointmentStatusPending
	}
	return true
}

// Appointment is a patient's request to see a doctor at a given time.
// Rows are never deleted.
type Appointment struct {
	ID             int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID      int64             `gorm:"not null;index" json:"patient_id"`
	DoctorID       int64             `gorm:"not null;index" json:"doctor_id"`
	ScheduledAt    time.Time         `gorm:"not null;index" json:"scheduled_at"`
	Reason         string            `gorm:"type:text;not null" json:"reason"`
	Status         AppointmentStatus `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	TransitionedAt *time.Time        `json:"transitioned_at,omitempty"`
	TransitionedBy *int64            `json:"transitioned_by,omitempty"`
	CreatedAt      time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient *PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}
