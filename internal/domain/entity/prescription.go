package entity

import "time"

// Prescription is the header issued during an encounter. An encounter has
// at most one and a prescription always has at least one line.
type Prescription struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	EncounterID  int64     `gorm:"not null;uniqueIndex" json:"encounter_id"`
	Observations string    `gorm:"type:text" json:"observations"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Lines []PrescriptionLine `gorm:"foreignKey:PrescriptionID" json:"lines,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// PrescriptionLine is one medication instruction.
type PrescriptionLine struct {
	ID             int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	PrescriptionID int64  `gorm:"not null;index" json:"prescription_id"`
	MedicationName string `gorm:"type:varchar(255);not null" json:"medication_name"`
	Dose           string `gorm:"type:varchar(100);not null" json:"dose"`
	Frequency      string `gorm:"type:varchar(100);not null" json:"frequency"`
	Duration       string `gorm:"type:varchar(100);not null" json:"duration"`
}

func (PrescriptionLine) TableName() string {
	return "prescription_lines"
}
