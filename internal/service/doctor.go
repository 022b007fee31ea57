package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/mail"
	"strconv"
	"time"

	"github.com/docpoint/docpoint-go/internal/crypto"
	"github.com/docpoint/docpoint-go/internal/media"
	"github.com/docpoint/docpoint-go/internal/model"
	"github.com/docpoint/docpoint-go/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrImageRequired = errors.New("doctor image is required")
	ErrInvalidFees   = errors.New("fees must be a whole number")
)

// DoctorService handles the admin panel: admin login, doctor onboarding,
// listing and availability.
type DoctorService struct {
	doctors       repository.DoctorStore
	uploader      media.Uploader
	adminEmail    string
	adminPassword string
	jwtSecret     string
	jwtExpiry     time.Duration
	storeTimeout  time.Duration
	uploadTimeout time.Duration
}

// NewDoctorService creates a new DoctorService.
func NewDoctorService(doctors repository.DoctorStore, uploader media.Uploader, adminEmail, adminPassword, jwtSecret string, jwtExpiry, storeTimeout, uploadTimeout time.Duration) *DoctorService {
	return &DoctorService{
		doctors:       doctors,
		uploader:      uploader,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
		jwtSecret:     jwtSecret,
		jwtExpiry:     jwtExpiry,
		storeTimeout:  storeTimeout,
		uploadTimeout: uploadTimeout,
	}
}

// AdminLogin checks the submitted credentials against the configured admin
// account and mints an admin-role token.
func (s *DoctorService) AdminLogin(_ context.Context, req model.LoginRequest) (string, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(s.adminEmail))
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.adminPassword))
	if emailOK&passOK != 1 {
		return "", ErrInvalidCredentials
	}

	return crypto.GenerateToken(s.adminEmail, crypto.RoleAdmin, s.jwtSecret, s.jwtExpiry)
}

// AddDoctor validates an onboarding form, uploads the doctor photo and
// creates the record with the durable image URL.
func (s *DoctorService) AddDoctor(ctx context.Context, req model.AddDoctorRequest) error {
	if req.Name == "" || req.Email == "" || req.Password == "" ||
		req.Speciality == "" || req.Degree == "" || req.Experience == "" ||
		req.About == "" || req.Fees == "" || req.Address == "" {
		return ErrMissingFields
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return ErrInvalidEmail
	}
	if len(req.Password) < minPasswordLength {
		return ErrWeakPassword
	}
	if req.ImagePath == "" {
		return ErrImageRequired
	}

	fees, err := strconv.ParseInt(req.Fees, 10, 64)
	if err != nil || fees < 0 {
		return ErrInvalidFees
	}

	address, err := parseAddress(req.Address)
	if err != nil {
		return err
	}

	// Upload before the insert so a failed upload never leaves a doctor
	// without a photo.
	uctx, cancel := withTimeout(ctx, s.uploadTimeout)
	imageURL, err := s.uploader.Upload(uctx, req.ImagePath)
	cancel()
	if err != nil {
		return err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return err
	}

	doctor := &model.Doctor{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Image:        imageURL,
		Speciality:   req.Speciality,
		Degree:       req.Degree,
		Experience:   req.Experience,
		About:        req.About,
		Fees:         fees,
		Address:      address,
		Available:    true,
	}

	cctx, cancel := withTimeout(ctx, s.storeTimeout)
	defer cancel()
	return s.doctors.Create(cctx, doctor)
}

// ListDoctors returns all doctor profiles. includeEmail is false for the
// public listing the patient frontend consumes.
func (s *DoctorService) ListDoctors(ctx context.Context, includeEmail bool) ([]model.DoctorInfo, error) {
	cctx, cancel := withTimeout(ctx, s.storeTimeout)
	defer cancel()
	doctors, err := s.doctors.List(cctx)
	if err != nil {
		return nil, err
	}

	infos := make([]model.DoctorInfo, 0, len(doctors))
	for i := range doctors {
		infos = append(infos, doctors[i].Info(includeEmail))
	}
	return infos, nil
}

// ChangeAvailability toggles whether a doctor accepts new appointments.
// Read-modify-write with no locking; concurrent toggles are last-write-wins.
func (s *DoctorService) ChangeAvailability(ctx context.Context, doctorID string) error {
	cctx, cancel := withTimeout(ctx, s.storeTimeout)
	defer cancel()

	doctor, err := s.doctors.GetByID(cctx, doctorID)
	if err != nil {
		return err
	}

	return s.doctors.SetAvailability(cctx, doctorID, !doctor.Available)
}
