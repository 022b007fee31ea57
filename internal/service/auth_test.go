package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/docpoint/docpoint-go/internal/crypto"
	"github.com/docpoint/docpoint-go/internal/model"
	"github.com/docpoint/docpoint-go/internal/repository"
)

const testSecret = "test-secret"

func newTestAuthService(store repository.UserStore) *AuthService {
	return NewAuthService(store, testSecret, time.Hour, time.Second)
}

func TestRegisterSuccess(t *testing.T) {
	store := newMemUserStore()
	svc := newTestAuthService(store)

	token, err := svc.Register(context.Background(), model.RegisterRequest{
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		Password: "password1",
	})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	claims, err := crypto.ValidateToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateToken() unexpected error: %v", err)
	}

	user, err := store.GetByEmail(context.Background(), "asha@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() unexpected error: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("token UserID = %q, want created user id %q", claims.UserID, user.ID)
	}
}

func TestRegisterStoresDigestNotPlaintext(t *testing.T) {
	store := newMemUserStore()
	svc := newTestAuthService(store)

	if _, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "Asha Rao", Email: "asha@example.com", Password: "password1",
	}); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	user, err := store.GetByEmail(context.Background(), "asha@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() unexpected error: %v", err)
	}
	if user.PasswordHash == "password1" {
		t.Fatal("password stored in plaintext")
	}
	match, err := crypto.VerifyPassword("password1", user.PasswordHash)
	if err != nil || !match {
		t.Errorf("stored digest does not verify: match=%v err=%v", match, err)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	svc := newTestAuthService(newMemUserStore())

	cases := []model.RegisterRequest{
		{Name: "", Email: "a@x.com", Password: "password1"},
		{Name: "A", Email: "", Password: "password1"},
		{Name: "A", Email: "a@x.com", Password: ""},
	}
	for _, req := range cases {
		if _, err := svc.Register(context.Background(), req); err != ErrMissingFields {
			t.Errorf("Register(%+v) error = %v, want ErrMissingFields", req, err)
		}
	}
}

func TestRegisterInvalidEmail(t *testing.T) {
	svc := newTestAuthService(newMemUserStore())

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "A", Email: "not-an-email", Password: "password1",
	})
	if err != ErrInvalidEmail {
		t.Errorf("Register() error = %v, want ErrInvalidEmail", err)
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	svc := newTestAuthService(newMemUserStore())

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "A", Email: "a@x.com", Password: "short7b",
	})
	if err != ErrWeakPassword {
		t.Errorf("Register() error = %v, want ErrWeakPassword", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(newMemUserStore())

	if _, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "A", Email: "a@x.com", Password: "password1",
	}); err != nil {
		t.Fatalf("first Register() unexpected error: %v", err)
	}

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "B", Email: "a@x.com", Password: "password2",
	})
	if err != repository.ErrDuplicateEmail {
		t.Errorf("second Register() error = %v, want ErrDuplicateEmail", err)
	}
}

func TestRegisterConcurrentSameEmail(t *testing.T) {
	svc := newTestAuthService(newMemUserStore())

	const goroutines = 8
	var wg sync.WaitGroup
	errs := make([]error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(context.Background(), model.RegisterRequest{
				Name: "A", Email: "race@example.com", Password: "password1",
			})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		switch err {
		case nil:
			successes++
		case repository.ErrDuplicateEmail:
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Errorf("successes = %d, want exactly 1", successes)
	}
}

func TestRegisterAndLoginLongPassword(t *testing.T) {
	svc := newTestAuthService(newMemUserStore())
	password := strings.Repeat("correct-horse-", 8) // 112 bytes, past bcrypt's 72-byte limit

	if _, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "A", Email: "a@x.com", Password: password,
	}); err != nil {
		t.Fatalf("Register() unexpected error for long password: %v", err)
	}

	if _, err := svc.Login(context.Background(), model.LoginRequest{
		Email: "a@x.com", Password: password,
	}); err != nil {
		t.Fatalf("Login() unexpected error for long password: %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	store := newMemUserStore()
	svc := newTestAuthService(store)

	if _, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "A", Email: "a@x.com", Password: "password1",
	}); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	token, err := svc.Login(context.Background(), model.LoginRequest{
		Email: "a@x.com", Password: "password1",
	})
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}

	claims, err := crypto.ValidateToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateToken() unexpected error: %v", err)
	}
	user, _ := store.GetByEmail(context.Background(), "a@x.com")
	if claims.UserID != user.ID {
		t.Errorf("token UserID = %q, want %q", claims.UserID, user.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestAuthService(newMemUserStore())

	if _, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "A", Email: "a@x.com", Password: "password1",
	}); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email: "a@x.com", Password: "password2",
	})
	if err != ErrInvalidCredentials {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestAuthService(newMemUserStore())

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email: "nobody@x.com", Password: "password1",
	})
	if err != ErrUserNotFound {
		t.Errorf("Login() error = %v, want ErrUserNotFound", err)
	}
}

func TestRegisterThenLoginRoundTrip(t *testing.T) {
	svc := newTestAuthService(newMemUserStore())

	regToken, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "A", Email: "a@x.com", Password: "password1",
	})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	loginToken, err := svc.Login(context.Background(), model.LoginRequest{
		Email: "a@x.com", Password: "password1",
	})
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}

	regClaims, err := crypto.ValidateToken(regToken, testSecret)
	if err != nil {
		t.Fatalf("ValidateToken(register) unexpected error: %v", err)
	}
	loginClaims, err := crypto.ValidateToken(loginToken, testSecret)
	if err != nil {
		t.Fatalf("ValidateToken(login) unexpected error: %v", err)
	}
	if regClaims.UserID != loginClaims.UserID {
		t.Errorf("tokens resolve to different users: %q vs %q", regClaims.UserID, loginClaims.UserID)
	}
}
