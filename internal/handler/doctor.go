package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/docpoint/docpoint-go/internal/media"
	"github.com/docpoint/docpoint-go/internal/model"
	"github.com/docpoint/docpoint-go/internal/repository"
	"github.com/docpoint/docpoint-go/internal/service"
)

// DoctorHandler handles the admin panel and the public doctor listing.
type DoctorHandler struct {
	service *service.DoctorService
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(svc *service.DoctorService) *DoctorHandler {
	return &DoctorHandler{service: svc}
}

// HandleAdminLogin handles POST /api/admin/login requests.
func (h *DoctorHandler) HandleAdminLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid request body"))
		return
	}

	token, err := h.service.AdminLogin(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, failure(err.Error()))
			return
		}
		slog.Error("admin login failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, failure("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, successToken(token))
}

// HandleAddDoctor handles POST /api/admin/add-doctor requests. The body is
// a multipart form with the doctor's details plus a required image file.
func (h *DoctorHandler) HandleAddDoctor(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid multipart form"))
		return
	}

	req := model.AddDoctorRequest{
		Name:       r.FormValue("name"),
		Email:      r.FormValue("email"),
		Password:   r.FormValue("password"),
		Speciality: r.FormValue("speciality"),
		Degree:     r.FormValue("degree"),
		Experience: r.FormValue("experience"),
		About:      r.FormValue("about"),
		Fees:       r.FormValue("fees"),
		Address:    r.FormValue("address"),
	}

	imagePath, cleanup, err := saveUpload(r, "image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid image upload"))
		return
	}
	defer cleanup()
	req.ImagePath = imagePath

	if err := h.service.AddDoctor(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields),
			errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, service.ErrWeakPassword),
			errors.Is(err, service.ErrMalformedAddress),
			errors.Is(err, service.ErrInvalidFees),
			errors.Is(err, service.ErrImageRequired):
			writeJSON(w, http.StatusBadRequest, failure(err.Error()))
		case errors.Is(err, repository.ErrDuplicateEmail):
			writeJSON(w, http.StatusConflict, failure(err.Error()))
		case errors.Is(err, media.ErrUploadFailed):
			writeJSON(w, http.StatusBadGateway, failure(err.Error()))
		default:
			slog.Error("add doctor failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, failure("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, successMessage("doctor added"))
}

// HandleAllDoctors handles GET /api/admin/all-doctors requests.
func (h *DoctorHandler) HandleAllDoctors(w http.ResponseWriter, r *http.Request) {
	h.listDoctors(w, r, true)
}

// HandleDoctorList handles GET /api/doctor/list requests, the public
// listing the patient frontend renders.
func (h *DoctorHandler) HandleDoctorList(w http.ResponseWriter, r *http.Request) {
	h.listDoctors(w, r, false)
}

func (h *DoctorHandler) listDoctors(w http.ResponseWriter, r *http.Request, includeEmail bool) {
	doctors, err := h.service.ListDoctors(r.Context(), includeEmail)
	if err != nil {
		slog.Error("list doctors failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, failure("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "doctors": doctors})
}

// HandleChangeAvailability handles POST /api/admin/change-availability requests.
func (h *DoctorHandler) HandleChangeAvailability(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req struct {
		DocID string `json:"docId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DocID == "" {
		writeJSON(w, http.StatusBadRequest, failure("invalid request body"))
		return
	}

	if err := h.service.ChangeAvailability(r.Context(), req.DocID); err != nil {
		if errors.Is(err, repository.ErrDoctorNotFound) {
			writeJSON(w, http.StatusNotFound, failure(err.Error()))
			return
		}
		slog.Error("change availability failed", "doc_id", req.DocID, "error", err)
		writeJSON(w, http.StatusInternalServerError, failure("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, successMessage("availability changed"))
}
