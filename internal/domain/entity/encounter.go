package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Encounter is the clinical record of one visit. It is written once by the
// encounter recorder and never updated.
type Encounter struct {
	ID               int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID        int64            `gorm:"not null;index" json:"patient_id"`
	DoctorID         int64            `gorm:"not null;index" json:"doctor_id"`
	AppointmentID    *int64           `gorm:"index" json:"appointment_id,omitempty"`
	ReasonForVisit   string           `gorm:"type:text" json:"reason_for_visit"`
	Diagnosis        string           `gorm:"type:text;not null" json:"diagnosis"`
	EvolutionNotes   string           `gorm:"type:text" json:"evolution_notes"`
	BloodPressure    *string          `gorm:"type:varchar(20)" json:"blood_pressure,omitempty"`
	Glycemia         *int             `json:"glycemia,omitempty"`
	OxygenSaturation *int             `json:"oxygen_saturation,omitempty"`
	TemperatureC     *decimal.Decimal `gorm:"type:numeric(4,1)" json:"temperature_c,omitempty"`
	WeightKg         *decimal.Decimal `gorm:"type:numeric(6,2)" json:"weight_kg,omitempty"`
	HeightCm         *int             `json:"height_cm,omitempty"`
	CreatedAt        time.Time        `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Doctor       *DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Prescription *Prescription  `gorm:"foreignKey:EncounterID" json:"prescription,omitempty"`
}

func (Encounter) TableName() string {
	return "encounters"
}
