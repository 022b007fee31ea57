package crypto

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrEmptyPassword = errors.New("password must not be empty")

// bcryptCost matches the work factor the rest of the deployment was
// provisioned for. Changing it invalidates no existing digests (cost is
// encoded per digest) but new hashes become correspondingly slower.
const bcryptCost = 10

// maxPasswordBytes is bcrypt's input limit. The algorithm never reads
// beyond it, and most client-side bcrypt implementations truncate
// silently, so existing accounts were hashed from the first 72 bytes.
// Truncating here keeps those passwords hashing and verifying instead of
// erroring on longer passphrases.
const maxPasswordBytes = 72

func truncatePassword(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

// HashPassword hashes a password with bcrypt at a fixed cost.
// Each call salts independently, so equal inputs produce distinct digests.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	digest, err := bcrypt.GenerateFromPassword(truncatePassword(password), bcryptCost)
	if err != nil {
		return "", err
	}

	return string(digest), nil
}

// VerifyPassword checks whether a password matches the given bcrypt digest.
// Comparison is constant-time with respect to the stored digest.
func VerifyPassword(password, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), truncatePassword(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
