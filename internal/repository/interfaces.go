package repository

import (
	"context"
	"errors"

	"github.com/docpoint/docpoint-go/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDoctorNotFound = errors.New("doctor not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserStore is the persistence boundary for patient accounts. Email
// uniqueness is enforced by the store itself; concurrent Creates with the
// same email resolve to exactly one winner.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	UpdateByID(ctx context.Context, id string, upd model.ProfileUpdate) error
	UpdateImage(ctx context.Context, id string, imageURL string) error
}

// DoctorStore is the persistence boundary for doctor profiles.
type DoctorStore interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	GetByID(ctx context.Context, id string) (*model.Doctor, error)
	List(ctx context.Context) ([]model.Doctor, error)
	SetAvailability(ctx context.Context, id string, available bool) error
}
