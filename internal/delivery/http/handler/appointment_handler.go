package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/delivery/http/middleware"
	"hospital-scheduling/internal/usecase"
	"hospital-scheduling/pkg/response"
	"hospital-scheduling/pkg/validator"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetPatientIDFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "Patient profile not found")
		return
	}

	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.CreateAppointment(r.Context(), patientID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidScheduledAt), errors.Is(err, usecase.ErrReasonRequired):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, usecase.ErrOutsideAvailability):
			response.Error(w, http.StatusUnprocessableEntity, err.Error(), nil)
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to create appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment requested successfully", appointment)
}

func (h *AppointmentHandler) TransitionAppointment(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "Doctor profile not found")
		return
	}

	appointmentID, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.TransitionAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.TransitionAppointment(r.Context(), doctorID, appointmentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidTargetState):
			response.Error(w, http.StatusBadRequest, "Invalid status, use Accepted or Rejected", nil)
		case errors.Is(err, usecase.ErrAppointmentNotFound):
			response.NotFound(w, "Appointment not found")
		case errors.Is(err, usecase.ErrAppointmentAlreadyDecided):
			response.Conflict(w, "Appointment has already been decided")
		default:
			response.InternalServerError(w, "Failed to update appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) ListPendingForDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "Doctor profile not found")
		return
	}

	appointments, err := h.appointmentUsecase.ListPendingForDoctor(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) ListAcceptedForDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "Doctor profile not found")
		return
	}

	appointments, err := h.appointmentUsecase.ListAcceptedForDoctor(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) ListMyAppointments(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetPatientIDFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "Patient profile not found")
		return
	}

	appointments, err := h.appointmentUsecase.ListForPatient(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) ListPendingForPatient(w http.ResponseWriter, r *http.Request) {
	h.listForPatient(w, r, h.appointmentUsecase.ListPendingForPatient)
}

func (h *AppointmentHandler) ListAcceptedForPatient(w http.ResponseWriter, r *http.Request) {
	h.listForPatient(w, r, h.appointmentUsecase.ListAcceptedForPatient)
}

func (h *AppointmentHandler) listForPatient(w http.ResponseWriter, r *http.Request, list func(ctx context.Context, patientID int64) (*dto.AppointmentListResponse, error)) {
	patientID, ok := pathID(r, "patientId")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	appointments, err := list(r.Context(), patientID)
	if err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}
