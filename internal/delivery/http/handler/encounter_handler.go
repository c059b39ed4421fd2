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

type EncounterHandler struct {
	encounterUsecase usecase.EncounterUsecase
	validator        *validator.CustomValidator
}

func NewEncounterHandler(encounterUsecase usecase.EncounterUsecase, validator *validator.CustomValidator) *EncounterHandler {
	return &EncounterHandler{
		encounterUsecase: encounterUsecase,
		validator:        validator,
	}
}

func (h *EncounterHandler) RecordEncounter(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "Doctor profile not found")
		return
	}

	var req dto.RecordEncounterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.encounterUsecase.RecordEncounter(r.Context(), doctorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDiagnosisRequired):
			response.ValidationError(w, map[string]string{"diagnosis": "diagnosis is required"})
		case errors.Is(err, usecase.ErrIncompletePrescriptionLine):
			response.ValidationError(w, map[string]string{"prescription_lines": err.Error()})
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrAppointmentNotFound):
			response.NotFound(w, "Appointment not found")
		case errors.Is(err, usecase.ErrEncounterSaveFailed):
			response.InternalServerError(w, usecase.ErrEncounterSaveFailed.Error())
		default:
			response.InternalServerError(w, "Failed to record encounter")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Encounter recorded successfully", result)
}

func (h *EncounterHandler) GetEncounter(w http.ResponseWriter, r *http.Request) {
	encounterID, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid encounter ID", nil)
		return
	}

	encounter, err := h.encounterUsecase.GetEncounter(r.Context(), encounterID)
	if err != nil {
		if errors.Is(err, usecase.ErrEncounterNotFound) {
			response.NotFound(w, "Encounter not found")
			return
		}
		response.InternalServerError(w, "Failed to get encounter")
		return
	}

	response.Success(w, http.StatusOK, "Encounter retrieved successfully", encounter)
}

func (h *EncounterHandler) ListPatientEncounters(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(r, "patientId")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	encounters, err := h.encounterUsecase.ListPatientEncounters(r.Context(), patientID)
	if err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to get encounters")
		return
	}

	response.Success(w, http.StatusOK, "Encounters retrieved successfully", encounters)
}

func (h *EncounterHandler) GetPrescription(w http.ResponseWriter, r *http.Request) {
	prescriptionID, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid prescription ID", nil)
		return
	}

	prescription, err := h.encounterUsecase.GetPrescription(r.Context(), prescriptionID)
	h.writePrescription(w, prescription, err)
}

func (h *EncounterHandler) GetPrescriptionByEncounter(w http.ResponseWriter, r *http.Request) {
	encounterID, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid encounter ID", nil)
		return
	}

	prescription, err := h.encounterUsecase.GetPrescriptionByEncounter(r.Context(), encounterID)
	h.writePrescription(w, prescription, err)
}

func (h *EncounterHandler) writePrescription(w http.ResponseWriter, prescription *dto.PrescriptionResponse, err error) {
	if err != nil {
		if errors.Is(err, usecase.ErrPrescriptionNotFound) {
			response.NotFound(w, "Prescription not found")
			return
		}
		response.InternalServerError(w, "Failed to get prescription")
		return
	}

	response.Success(w, http.StatusOK, "Prescription retrieved successfully", prescription)
}
