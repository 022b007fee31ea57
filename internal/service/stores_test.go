package service

import (
	"context"
	"errors"
	"sync"

	"github.com/docpoint/docpoint-go/internal/model"
	"github.com/docpoint/docpoint-go/internal/repository"
)

// memUserStore is an in-memory UserStore enforcing the same email
// uniqueness guarantee the MySQL index provides.
type memUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*model.User)}
}

func (s *memUserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *memUserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *memUserStore) UpdateByID(_ context.Context, id string, upd model.ProfileUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Name = upd.Name
	u.Phone = upd.Phone
	u.Address = upd.Address
	u.DOB = upd.DOB
	u.Gender = upd.Gender
	return nil
}

func (s *memUserStore) UpdateImage(_ context.Context, id string, imageURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Image = imageURL
	return nil
}

// memDoctorStore is an in-memory DoctorStore.
type memDoctorStore struct {
	mu      sync.Mutex
	doctors map[string]*model.Doctor
}

func newMemDoctorStore() *memDoctorStore {
	return &memDoctorStore{doctors: make(map[string]*model.Doctor)}
}

func (s *memDoctorStore) Create(_ context.Context, doctor *model.Doctor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.doctors {
		if d.Email == doctor.Email {
			return repository.ErrDuplicateEmail
		}
	}
	copied := *doctor
	s.doctors[doctor.ID] = &copied
	return nil
}

func (s *memDoctorStore) GetByID(_ context.Context, id string) (*model.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.doctors[id]
	if !ok {
		return nil, repository.ErrDoctorNotFound
	}
	copied := *d
	return &copied, nil
}

func (s *memDoctorStore) List(_ context.Context) ([]model.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]model.Doctor, 0, len(s.doctors))
	for _, d := range s.doctors {
		list = append(list, *d)
	}
	return list, nil
}

func (s *memDoctorStore) SetAvailability(_ context.Context, id string, available bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.doctors[id]
	if !ok {
		return repository.ErrDoctorNotFound
	}
	d.Available = available
	return nil
}

// fakeUploader records calls and returns a fixed URL or error.
type fakeUploader struct {
	url   string
	err   error
	calls int
}

func (f *fakeUploader) Upload(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

var errUploaderUnused = errors.New("uploader should not be called")

// failUploader fails every test that reaches it.
type failUploader struct{}

func (failUploader) Upload(_ context.Context, _ string) (string, error) {
	return "", errUploaderUnused
}
