package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/docpoint/docpoint-go/internal/media"
	"github.com/docpoint/docpoint-go/internal/model"
	"github.com/docpoint/docpoint-go/internal/repository"
)

var ErrMalformedAddress = errors.New("address must be a JSON object with line1 and line2")

// UpdateProfileInput carries the multipart form fields of a profile
// update. Address is the raw JSON string the client submitted; ImagePath
// points at the uploaded temp file, empty when no image was attached.
type UpdateProfileInput struct {
	Name      string
	Phone     string
	Address   string
	DOB       string
	Gender    string
	ImagePath string
}

// ProfileService reads and mutates patient profiles.
type ProfileService struct {
	users         repository.UserStore
	uploader      media.Uploader
	storeTimeout  time.Duration
	uploadTimeout time.Duration
}

// NewProfileService creates a new ProfileService.
func NewProfileService(users repository.UserStore, uploader media.Uploader, storeTimeout, uploadTimeout time.Duration) *ProfileService {
	return &ProfileService{
		users:         users,
		uploader:      uploader,
		storeTimeout:  storeTimeout,
		uploadTimeout: uploadTimeout,
	}
}

// GetProfile returns the profile of a user. The password hash never
// appears in the result.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (model.UserProfile, error) {
	cctx, cancel := withTimeout(ctx, s.storeTimeout)
	defer cancel()
	user, err := s.users.GetByID(cctx, userID)
	if err != nil {
		return model.UserProfile{}, err
	}

	return user.Profile(), nil
}

// UpdateProfile validates and applies a profile update, then attaches a
// freshly uploaded image if one was supplied.
//
// The scalar update and the image update are two separate writes with no
// transaction around them. When the upload or the second write fails the
// scalar fields stay committed and the image keeps its prior value; that
// partial state is logged and the error is returned to the caller.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) error {
	if in.Name == "" || in.Phone == "" || in.DOB == "" || in.Gender == "" {
		return ErrMissingFields
	}

	address, err := parseAddress(in.Address)
	if err != nil {
		return err
	}

	upd := model.ProfileUpdate{
		Name:    in.Name,
		Phone:   in.Phone,
		Address: address,
		DOB:     in.DOB,
		Gender:  in.Gender,
	}

	cctx, cancel := withTimeout(ctx, s.storeTimeout)
	err = s.users.UpdateByID(cctx, userID, upd)
	cancel()
	if err != nil {
		return err
	}

	if in.ImagePath == "" {
		return nil
	}

	uctx, cancel := withTimeout(ctx, s.uploadTimeout)
	imageURL, err := s.uploader.Upload(uctx, in.ImagePath)
	cancel()
	if err != nil {
		slog.Warn("image upload failed after profile fields were committed, image unchanged",
			"user_id", userID, "error", err)
		return err
	}

	cctx, cancel = withTimeout(ctx, s.storeTimeout)
	err = s.users.UpdateImage(cctx, userID, imageURL)
	cancel()
	if err != nil {
		slog.Warn("image update failed after profile fields were committed, image unchanged",
			"user_id", userID, "error", err)
		return err
	}

	return nil
}

// parseAddress decodes the client-submitted address JSON. Empty lines are
// accepted; only unparseable input is rejected.
func parseAddress(raw string) (model.Address, error) {
	var address model.Address
	if raw == "" {
		return address, ErrMalformedAddress
	}
	if err := json.Unmarshal([]byte(raw), &address); err != nil {
		return model.Address{}, ErrMalformedAddress
	}
	return address, nil
}
