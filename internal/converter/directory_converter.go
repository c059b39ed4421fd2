package converter

import (
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
)

func DoctorsToSummaries(profiles []entity.DoctorProfile) []dto.DoctorSummaryResponse {
	responses := make([]dto.DoctorSummaryResponse, len(profiles))
	for i, profile := range profiles {
		responses[i] = dto.DoctorSummaryResponse{
			ID:             profile.ID,
			FullName:       profile.User.FullName,
			Specialization: profile.Specialization,
		}
	}
	return responses
}

func PatientsToSummaries(profiles []entity.PatientProfile) []dto.PatientSummaryResponse {
	responses := make([]dto.PatientSummaryResponse, len(profiles))
	for i, profile := range profiles {
		responses[i] = dto.PatientSummaryResponse{
			ID:       profile.ID,
			FullName: profile.User.FullName,
		}
	}
	return responses
}
