package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/docpoint/docpoint-go/internal/model"
)

// DoctorRepository is the MySQL-backed DoctorStore.
type DoctorRepository struct {
	db *sql.DB
}

// NewDoctorRepository creates a new DoctorRepository.
func NewDoctorRepository(db *sql.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

// Create inserts a new doctor. Returns ErrDuplicateEmail when the unique
// email index rejects the row.
func (r *DoctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `INSERT INTO doctors (id, name, email, password_hash, image, speciality, degree, experience, about, fees, address_line1, address_line2, available)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		doctor.ID, doctor.Name, doctor.Email, doctor.PasswordHash, doctor.Image,
		doctor.Speciality, doctor.Degree, doctor.Experience, doctor.About, doctor.Fees,
		doctor.Address.Line1, doctor.Address.Line2, doctor.Available,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

const doctorColumns = `id, name, email, image, speciality, degree, experience, about, fees, address_line1, address_line2, available, created_at`

// GetByID retrieves a doctor by ID. The password hash is not selected; it
// is only needed by the (future) doctor-panel login path.
func (r *DoctorRepository) GetByID(ctx context.Context, id string) (*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE id = ?`

	doctor := &model.Doctor{}
	var image sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&doctor.ID, &doctor.Name, &doctor.Email, &image,
		&doctor.Speciality, &doctor.Degree, &doctor.Experience, &doctor.About, &doctor.Fees,
		&doctor.Address.Line1, &doctor.Address.Line2, &doctor.Available, &doctor.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	doctor.Image = image.String

	return doctor, nil
}

// List returns all doctors, newest first.
func (r *DoctorRepository) List(ctx context.Context) ([]model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var doctors []model.Doctor
	for rows.Next() {
		var doctor model.Doctor
		var image sql.NullString
		if err := rows.Scan(
			&doctor.ID, &doctor.Name, &doctor.Email, &image,
			&doctor.Speciality, &doctor.Degree, &doctor.Experience, &doctor.About, &doctor.Fees,
			&doctor.Address.Line1, &doctor.Address.Line2, &doctor.Available, &doctor.CreatedAt,
		); err != nil {
			return nil, err
		}
		doctor.Image = image.String
		doctors = append(doctors, doctor)
	}

	return doctors, rows.Err()
}

// SetAvailability updates the availability flag of a doctor.
func (r *DoctorRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE doctors SET available = ? WHERE id = ?`, available, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var one int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM doctors WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrDoctorNotFound
	}
	return err
}
