package converter

import (
	"fmt"
	"strings"

	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
)

const notificationTimeLayout = "2006-01-02 15:04"

// AppointmentToNotification renders a decided appointment as a patient
// notification. The doctor name is empty unless Doctor.User is preloaded.
func AppointmentToNotification(appointment *entity.Appointment) dto.NotificationResponse {
	notification := dto.NotificationResponse{
		AppointmentID:  appointment.ID,
		Status:         string(appointment.Status),
		Title:          fmt.Sprintf("Your appointment was %s", strings.ToLower(string(appointment.Status))),
		ScheduledAt:    appointment.ScheduledAt,
		TransitionedAt: appointment.TransitionedAt,
	}

	when := appointment.ScheduledAt.UTC().Format(notificationTimeLayout)
	if appointment.Doctor != nil && appointment.Doctor.User.FullName != "" {
		notification.DoctorName = appointment.Doctor.User.FullName
		notification.Message = fmt.Sprintf("With %s on %s", notification.DoctorName, when)
	} else {
		notification.Message = fmt.Sprintf("Scheduled for %s", when)
	}

	return notification
}

func AppointmentsToNotifications(appointments []entity.Appointment) []dto.NotificationResponse {
	notifications := make([]dto.NotificationResponse, len(appointments))
	for i := range appointments {
		notifications[i] = AppointmentToNotification(&appointments[i])
	}
	return notifications
}
