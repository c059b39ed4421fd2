package entity

import "github.com/google/uuid"

// DoctorProfile links a user account to the numeric doctor id used by
// availability, appointments and encounters.
type DoctorProfile struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Specialization string    `gorm:"type:varchar(100);not null;index" json:"specialization"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
