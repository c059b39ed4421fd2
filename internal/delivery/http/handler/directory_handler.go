package handler

import (
	"errors"
	"net/http"

	"hospital-scheduling/internal/usecase"
	"hospital-scheduling/pkg/response"

	"github.com/gorilla/mux"
)

type DirectoryHandler struct {
	directoryUsecase usecase.DirectoryUsecase
}

func NewDirectoryHandler(directoryUsecase usecase.DirectoryUsecase) *DirectoryHandler {
	return &DirectoryHandler{
		directoryUsecase: directoryUsecase,
	}
}

func (h *DirectoryHandler) ListSpecializations(w http.ResponseWriter, r *http.Request) {
	specializations, err := h.directoryUsecase.ListSpecializations(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get specializations")
		return
	}

	response.Success(w, http.StatusOK, "Specializations retrieved successfully", specializations)
}

func (h *DirectoryHandler) ListDoctorsBySpecialization(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.directoryUsecase.ListDoctorsBySpecialization(r.Context(), mux.Vars(r)["specialization"])
	if err != nil {
		if errors.Is(err, usecase.ErrSpecializationRequired) {
			response.Error(w, http.StatusBadRequest, "Specialization is required", nil)
			return
		}
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DirectoryHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.directoryUsecase.ListPatients(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}
