package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/docpoint/docpoint-go/internal/model"
)

// UserRepository is the MySQL-backed UserStore.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. The caller assigns the ID before calling.
// Returns ErrDuplicateEmail when the unique email index rejects the row.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, name, email, password_hash, phone, address_line1, address_line2, dob, gender, image)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash,
		user.Phone, user.Address.Line1, user.Address.Line2,
		user.DOB, user.Gender, user.Image,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

const userColumns = `id, name, email, password_hash, phone, address_line1, address_line2, dob, gender, image, created_at, updated_at`

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	user := &model.User{}
	var image sql.NullString
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Phone, &user.Address.Line1, &user.Address.Line2,
		&user.DOB, &user.Gender, &image,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.Image = image.String

	return user, nil
}

// UpdateByID replaces the profile fields of a user. The image column is
// untouched; see UpdateImage.
func (r *UserRepository) UpdateByID(ctx context.Context, id string, upd model.ProfileUpdate) error {
	query := `UPDATE users SET name = ?, phone = ?, address_line1 = ?, address_line2 = ?, dob = ?, gender = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		upd.Name, upd.Phone, upd.Address.Line1, upd.Address.Line2, upd.DOB, upd.Gender, id,
	)
	if err != nil {
		return err
	}

	return r.requireRow(ctx, result, id)
}

// UpdateImage sets only the profile image URL of a user.
func (r *UserRepository) UpdateImage(ctx context.Context, id string, imageURL string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET image = ? WHERE id = ?`, imageURL, id)
	if err != nil {
		return err
	}

	return r.requireRow(ctx, result, id)
}

// requireRow maps a zero-match UPDATE to ErrUserNotFound. MySQL reports
// zero affected rows for updates that change nothing, so a zero count
// falls back to an existence check to keep identical updates idempotent.
func (r *UserRepository) requireRow(ctx context.Context, result sql.Result, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var one int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	return err
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
