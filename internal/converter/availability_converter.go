package converter

import (
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
)

// AvailabilityToResponse converts a slot to its DTO with HH:MM clock values
func AvailabilityToResponse(slot *entity.DoctorAvailabilitySlot) *dto.AvailabilityResponse {
	if slot == nil {
		return nil
	}

	return &dto.AvailabilityResponse{
		ID:        slot.ID,
		DoctorID:  slot.DoctorID,
		DayOfWeek: int(slot.DayOfWeek),
		DayName:   slot.DayOfWeek.String(),
		StartTime: entity.ClockHHMM(slot.StartTime),
		EndTime:   entity.ClockHHMM(slot.EndTime),
	}
}

func AvailabilitiesToResponses(slots []entity.DoctorAvailabilitySlot) []dto.AvailabilityResponse {
	responses := make([]dto.AvailabilityResponse, len(slots))
	for i := range slots {
		responses[i] = *AvailabilityToResponse(&slots[i])
	}
	return responses
}

// PublicAvailabilitiesToResponses drops slot ids, which only the owning
// doctor needs.
func PublicAvailabilitiesToResponses(slots []entity.DoctorAvailabilitySlot) []dto.AvailabilityResponse {
	responses := AvailabilitiesToResponses(slots)
	for i := range responses {
		responses[i].ID = 0
	}
	return responses
}
