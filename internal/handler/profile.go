package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/docpoint/docpoint-go/internal/media"
	"github.com/docpoint/docpoint-go/internal/middleware"
	"github.com/docpoint/docpoint-go/internal/repository"
	"github.com/docpoint/docpoint-go/internal/service"
)

const maxUploadBytes = 10 << 20 // 10MB

// ProfileHandler handles profile fetch and update requests.
type ProfileHandler struct {
	service *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// HandleGetProfile handles GET /api/user/get-profile requests.
func (h *ProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, failure("not authorized, login again"))
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, failure(err.Error()))
			return
		}
		slog.Error("get profile failed", "user_id", userID, "error", err)
		writeJSON(w, http.StatusInternalServerError, failure("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "userData": profile})
}

// HandleUpdateProfile handles POST /api/user/update-profile requests. The
// body is a multipart form with scalar fields plus an optional image file.
func (h *ProfileHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, failure("not authorized, login again"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid multipart form"))
		return
	}

	in := service.UpdateProfileInput{
		Name:    r.FormValue("name"),
		Phone:   r.FormValue("phone"),
		Address: r.FormValue("address"),
		DOB:     r.FormValue("dob"),
		Gender:  r.FormValue("gender"),
	}

	imagePath, cleanup, err := saveUpload(r, "image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid image upload"))
		return
	}
	defer cleanup()
	in.ImagePath = imagePath

	if err := h.service.UpdateProfile(r.Context(), userID, in); err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields),
			errors.Is(err, service.ErrMalformedAddress):
			writeJSON(w, http.StatusBadRequest, failure(err.Error()))
		case errors.Is(err, repository.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, failure(err.Error()))
		case errors.Is(err, media.ErrUploadFailed):
			writeJSON(w, http.StatusBadGateway, failure(err.Error()))
		default:
			slog.Error("update profile failed", "user_id", userID, "error", err)
			writeJSON(w, http.StatusInternalServerError, failure("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, successMessage("profile updated"))
}

// saveUpload spools the named multipart file to a temp file and returns
// its path. The path is empty when the client sent no file. cleanup is
// always safe to call.
func saveUpload(r *http.Request, field string) (path string, cleanup func(), err error) {
	cleanup = func() {}

	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", cleanup, nil
	}
	if err != nil {
		return "", cleanup, err
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "docpoint-upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", cleanup, err
	}

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", cleanup, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", cleanup, err
	}

	return tmp.Name(), func() { os.Remove(tmp.Name()) }, nil
}
