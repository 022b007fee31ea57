package model

import "time"

// Address is the structured postal address attached to users and doctors.
// Clients submit it as a JSON string inside multipart forms.
type Address struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
}

// User represents a patient account in the database. PasswordHash holds a
// bcrypt digest from the moment of creation; the plaintext is never stored.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Address      Address
	DOB          string
	Gender       string
	Image        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfileUpdate is the set of fields a profile update replaces. The image
// URL is applied separately (see service.ProfileService.UpdateProfile).
type ProfileUpdate struct {
	Name    string
	Phone   string
	Address Address
	DOB     string
	Gender  string
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserProfile represents user data safe for API responses. There is
// deliberately no field for the password hash.
type UserProfile struct {
	ID      string  `json:"_id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Address Address `json:"address"`
	DOB     string  `json:"dob"`
	Gender  string  `json:"gender"`
	Image   string  `json:"image,omitempty"`
}

// Profile converts a stored user into its API representation.
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Address: u.Address,
		DOB:     u.DOB,
		Gender:  u.Gender,
		Image:   u.Image,
	}
}
