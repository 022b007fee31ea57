package service

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/docpoint/docpoint-go/internal/crypto"
	"github.com/docpoint/docpoint-go/internal/model"
	"github.com/docpoint/docpoint-go/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrMissingFields = errors.New("missing details")
	ErrInvalidEmail  = errors.New("enter a valid email")
	ErrWeakPassword  = errors.New("password must be at least 8 characters")

	// Login keeps the original client-visible distinction between an
	// unknown account and a wrong password. See DESIGN.md on the
	// enumeration trade-off.
	ErrUserNotFound       = errors.New("User does not exist")
	ErrInvalidCredentials = errors.New("Invalid credentials")
)

const minPasswordLength = 8

// AuthService handles patient registration and login.
type AuthService struct {
	users        repository.UserStore
	jwtSecret    string
	jwtExpiry    time.Duration
	storeTimeout time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserStore, secret string, expiry, storeTimeout time.Duration) *AuthService {
	return &AuthService{
		users:        users,
		jwtSecret:    secret,
		jwtExpiry:    expiry,
		storeTimeout: storeTimeout,
	}
}

// Register creates a new patient account and returns a signed token bound
// to the new user's ID.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (string, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return "", ErrMissingFields
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return "", ErrInvalidEmail
	}
	// Length is the whole policy. Complexity rules are a client concern.
	if len(req.Password) < minPasswordLength {
		return "", ErrWeakPassword
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return "", err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        "000000000",
		DOB:          "Not Selected",
		Gender:       "Not Selected",
	}

	cctx, cancel := withTimeout(ctx, s.storeTimeout)
	defer cancel()
	if err := s.users.Create(cctx, user); err != nil {
		return "", err
	}

	return crypto.GenerateToken(user.ID, crypto.RoleUser, s.jwtSecret, s.jwtExpiry)
}

// Login authenticates a patient and returns a signed token. An unknown
// email is a normal outcome, not an internal error.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (string, error) {
	cctx, cancel := withTimeout(ctx, s.storeTimeout)
	defer cancel()
	user, err := s.users.GetByEmail(cctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return "", err
	}
	if !match {
		return "", ErrInvalidCredentials
	}

	return crypto.GenerateToken(user.ID, crypto.RoleUser, s.jwtSecret, s.jwtExpiry)
}

// withTimeout bounds a store or upload call. A zero duration leaves the
// request context untouched.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
