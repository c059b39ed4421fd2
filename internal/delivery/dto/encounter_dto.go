package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

// VitalsRequest carries the measurements as the clinician typed them.
// Numbers may arrive as JSON numbers or strings; anything unparseable is
// stored as absent.
type VitalsRequest struct {
	BloodPressure    interface{} `json:"blood_pressure"`
	Glycemia         interface{} `json:"glycemia"`
	OxygenSaturation interface{} `json:"oxygen_saturation"`
	TemperatureC     interface{} `json:"temperature_c"`
	WeightKg         interface{} `json:"weight_kg"`
	HeightCm         interface{} `json:"height_cm"`
}

type PrescriptionLineRequest struct {
	MedicationName string `json:"medication_name" validate:"max=255"`
	Dose           string `json:"dose" validate:"max=100"`
	Frequency      string `json:"frequency" validate:"max=100"`
	Duration       string `json:"duration" validate:"max=100"`
}

type RecordEncounterRequest struct {
	PatientID                int64                     `json:"patient_id" validate:"required,min=1"`
	AppointmentID            *int64                    `json:"appointment_id" validate:"omitempty,min=1"`
	ReasonForVisit           string                    `json:"reason_for_visit"`
	Diagnosis                string                    `json:"diagnosis" validate:"required"`
	EvolutionNotes           string                    `json:"evolution_notes"`
	Vitals                   VitalsRequest             `json:"vitals"`
	PrescriptionObservations string                    `json:"prescription_observations"`
	PrescriptionLines        []PrescriptionLineRequest `json:"prescription_lines" validate:"dive"`
}

// Response DTOs

type RecordEncounterResponse struct {
	EncounterID    int64  `json:"encounter_id"`
	PrescriptionID *int64 `json:"prescription_id"`
}

type VitalsResponse struct {
	BloodPressure    *string          `json:"blood_pressure"`
	Glycemia         *int             `json:"glycemia"`
	OxygenSaturation *int             `json:"oxygen_saturation"`
	TemperatureC     *decimal.Decimal `json:"temperature_c"`
	WeightKg         *decimal.Decimal `json:"weight_kg"`
	HeightCm         *int             `json:"height_cm"`
}

type EncounterResponse struct {
	ID              int64                 `json:"id"`
	PatientID       int64                 `json:"patient_id"`
	DoctorID        int64                 `json:"doctor_id"`
	DoctorName      string                `json:"doctor_name,omitempty"`
	AppointmentID   *int64                `json:"appointment_id,omitempty"`
	ReasonForVisit  string                `json:"reason_for_visit"`
	Diagnosis       string                `json:"diagnosis"`
	EvolutionNotes  string                `json:"evolution_notes"`
	Vitals          VitalsResponse        `json:"vitals"`
	HasPrescription bool                  `json:"has_prescription"`
	Prescription    *PrescriptionResponse `json:"prescription,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}

type EncounterListResponse struct {
	Encounters []EncounterResponse `json:"encounters"`
	Total      int                 `json:"total"`
}

type PrescriptionLineResponse struct {
	ID             int64  `json:"id"`
	MedicationName string `json:"medication_name"`
	Dose           string `json:"dose"`
	Frequency      string `json:"frequency"`
	Duration       string `json:"duration"`
}

type PrescriptionResponse struct {
	ID           int64                      `json:"id"`
	EncounterID  int64                      `json:"encounter_id"`
	Observations string                     `json:"observations"`
	Lines        []PrescriptionLineResponse `json:"lines"`
	CreatedAt    time.Time                  `json:"created_at"`
}
