package handler

import (
	"net/http"

	"hospital-scheduling/internal/delivery/http/middleware"
	"hospital-scheduling/internal/usecase"
	"hospital-scheduling/pkg/response"
)

type NotificationHandler struct {
	notificationUsecase usecase.NotificationUsecase
}

func NewNotificationHandler(notificationUsecase usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{
		notificationUsecase: notificationUsecase,
	}
}

func (h *NotificationHandler) DoctorCount(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "Doctor profile not found")
		return
	}

	count, err := h.notificationUsecase.DoctorPendingCount(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get notification count")
		return
	}

	response.Success(w, http.StatusOK, "Notification count retrieved successfully", count)
}

func (h *NotificationHandler) PatientCount(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetPatientIDFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "Patient profile not found")
		return
	}

	count, err := h.notificationUsecase.PatientNotificationCount(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to get notification count")
		return
	}

	response.Success(w, http.StatusOK, "Notification count retrieved successfully", count)
}

func (h *NotificationHandler) PatientList(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetPatientIDFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "Patient profile not found")
		return
	}

	notifications, err := h.notificationUsecase.PatientNotificationList(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to get notifications")
		return
	}

	response.Success(w, http.StatusOK, "Notifications retrieved successfully", notifications)
}
