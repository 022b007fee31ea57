package model

import "time"

// Doctor represents a doctor profile managed through the admin panel.
type Doctor struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Image        string
	Speciality   string
	Degree       string
	Experience   string
	About        string
	Fees         int64
	Address      Address
	Available    bool
	CreatedAt    time.Time
}

// AddDoctorRequest carries the multipart form fields of an add-doctor
// request. Address arrives as a JSON string, Fees as a decimal string.
type AddDoctorRequest struct {
	Name       string
	Email      string
	Password   string
	Speciality string
	Degree     string
	Experience string
	About      string
	Fees       string
	Address    string
	ImagePath  string
}

// DoctorInfo represents doctor data safe for API responses.
type DoctorInfo struct {
	ID         string  `json:"_id"`
	Name       string  `json:"name"`
	Email      string  `json:"email,omitempty"`
	Image      string  `json:"image"`
	Speciality string  `json:"speciality"`
	Degree     string  `json:"degree"`
	Experience string  `json:"experience"`
	About      string  `json:"about"`
	Fees       int64   `json:"fees"`
	Address    Address `json:"address"`
	Available  bool    `json:"available"`
}

// Info converts a stored doctor into its API representation.
// includeEmail is false on the public listing.
func (d *Doctor) Info(includeEmail bool) DoctorInfo {
	info := DoctorInfo{
		ID:         d.ID,
		Name:       d.Name,
		Image:      d.Image,
		Speciality: d.Speciality,
		Degree:     d.Degree,
		Experience: d.Experience,
		About:      d.About,
		Fees:       d.Fees,
		Address:    d.Address,
		Available:  d.Available,
	}
	if includeEmail {
		info.Email = d.Email
	}
	return info
}
