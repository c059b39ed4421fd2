package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/delivery/http/middleware"
	"hospital-scheduling/internal/usecase"
	"hospital-scheduling/pkg/response"
	"hospital-scheduling/pkg/validator"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

func (h *AvailabilityHandler) UpsertSlot(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "Doctor profile not found")
		return
	}

	var req dto.UpsertAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.availabilityUsecase.UpsertSlot(r.Context(), doctorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidDayOfWeek):
			response.Error(w, http.StatusBadRequest, "Invalid day of week, use Monday through Sunday", nil)
		case errors.Is(err, usecase.ErrInvalidTimeFormat):
			response.Error(w, http.StatusBadRequest, "Invalid time format, use HH:MM", nil)
		default:
			response.InternalServerError(w, "Failed to save availability")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Availability saved successfully", slot)
}

func (h *AvailabilityHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "Doctor profile not found")
		return
	}

	slotID, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid slot ID", nil)
		return
	}

	if err := h.availabilityUsecase.DeleteSlot(r.Context(), doctorID, slotID); err != nil {
		if errors.Is(err, usecase.ErrSlotNotFound) {
			response.NotFound(w, "Availability slot not found")
			return
		}
		response.InternalServerError(w, "Failed to delete availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability deleted successfully", nil)
}

func (h *AvailabilityHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "Doctor profile not found")
		return
	}

	slots, err := h.availabilityUsecase.ListSlots(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", slots)
}

func (h *AvailabilityHandler) ListPublicSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(r, "doctorId")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	slots, err := h.availabilityUsecase.ListPublicSlots(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", slots)
}
