package converter

import (
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO.
// Patient and doctor names are filled when the relations are preloaded.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:             appointment.ID,
		PatientID:      appointment.PatientID,
		DoctorID:       appointment.DoctorID,
		ScheduledAt:    appointment.ScheduledAt,
		Reason:         appointment.Reason,
		Status:         string(appointment.Status),
		TransitionedAt: appointment.TransitionedAt,
		CreatedAt:      appointment.CreatedAt,
	}

	if appointment.Patient != nil {
		response.PatientName = appointment.Patient.User.FullName
	}
	if appointment.Doctor != nil {
		response.DoctorName = appointment.Doctor.User.FullName
		response.Specialization = appointment.Doctor.Specialization
	}

	return response
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
