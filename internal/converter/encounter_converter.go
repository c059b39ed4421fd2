package converter

import (
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
)

// EncounterToResponse converts an Encounter entity to EncounterResponse DTO.
// The prescription body is included only when its lines were loaded.
func EncounterToResponse(encounter *entity.Encounter) *dto.EncounterResponse {
	if encounter == nil {
		return nil
	}

	response := &dto.EncounterResponse{
		ID:             encounter.ID,
		PatientID:      encounter.PatientID,
		DoctorID:       encounter.DoctorID,
		AppointmentID:  encounter.AppointmentID,
		ReasonForVisit: encounter.ReasonForVisit,
		Diagnosis:      encounter.Diagnosis,
		EvolutionNotes: encounter.EvolutionNotes,
		Vitals: dto.VitalsResponse{
			BloodPressure:    encounter.BloodPressure,
			Glycemia:         encounter.Glycemia,
			OxygenSaturation: encounter.OxygenSaturation,
			TemperatureC:     encounter.TemperatureC,
			WeightKg:         encounter.WeightKg,
			HeightCm:         encounter.HeightCm,
		},
		HasPrescription: encounter.Prescription != nil,
		CreatedAt:       encounter.CreatedAt,
	}

	if encounter.Doctor != nil {
		response.DoctorName = encounter.Doctor.User.FullName
	}
	if encounter.Prescription != nil && len(encounter.Prescription.Lines) > 0 {
		response.Prescription = PrescriptionToResponse(encounter.Prescription)
	}

	return response
}

// EncountersToResponses converts the listing form: header flag only
func EncountersToResponses(encounters []entity.Encounter) []dto.EncounterResponse {
	responses := make([]dto.EncounterResponse, len(encounters))
	for i := range encounters {
		responses[i] = *EncounterToResponse(&encounters[i])
		responses[i].Prescription = nil
	}
	return responses
}

func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	lines := make([]dto.PrescriptionLineResponse, len(prescription.Lines))
	for i, line := range prescription.Lines {
		lines[i] = dto.PrescriptionLineResponse{
			ID:             line.ID,
			MedicationName: line.MedicationName,
			Dose:           line.Dose,
			Frequency:      line.Frequency,
			Duration:       line.Duration,
		}
	}

	return &dto.PrescriptionResponse{
		ID:           prescription.ID,
		EncounterID:  prescription.EncounterID,
		Observations: prescription.Observations,
		Lines:        lines,
		CreatedAt:    prescription.CreatedAt,
	}
}
