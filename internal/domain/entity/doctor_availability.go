package entity

import (
	"time"
)

// DoctorAvailabilitySlot is the single weekly window a doctor works on a
// given day. There is at most one row per (doctor, day).
type DoctorAvailabilitySlot struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  int64     `gorm:"not null;uniqueIndex:idx_availability_doctor_day,priority:1" json:"doctor_id"`
	DayOfWeek Weekday   `gorm:"not null;uniqueIndex:idx_availability_doctor_day,priority:2" json:"day_of_week"`
	StartTime string    `gorm:"type:time;not null" json:"start_time"`
	EndTime   string    `gorm:"type:time;not null" json:"end_time"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor *DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (DoctorAvailabilitySlot) TableName() string {
	return "doctor_availability"
}

// ClockHHMM trims a stored time-of-day ("09:00:00" from postgres) to "09:00".
func ClockHHMM(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}

// IsWithinAvailability reports whether at falls inside the slot published
// for its weekday. The end of a window is exclusive.
func IsWithinAvailability(slots []DoctorAvailabilitySlot, at time.Time) bool {
	day := WeekdayOf(at)
	clock := at.Format("15:04")
	for _, slot := range slots {
		if slot.DayOfWeek != day {
			continue
		}
		if clock >= ClockHHMM(slot.StartTime) && clock < ClockHHMM(slot.EndTime) {
			return true
		}
	}
	return false
}
