package auth

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores input past 72 bytes and rejects longer passwords outright
const maxPasswordBytes = 72

var (
	dummyOnce sync.Once
	dummyHash string
)

// HashPassword creates a bcrypt hash from the given plaintext password.
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(truncate(password)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifyPassword checks if the provided plaintext password matches the stored bcrypt hash.
func VerifyPassword(hashedPassword, providedPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(truncate(providedPassword)))
}

// CompareDummy runs one full-cost bcrypt comparison against a throwaway hash.
// Failed credential checks call it so every miss costs the same.
func CompareDummy(provided string) {
	dummyOnce.Do(func() {
		dummyHash, _ = HashPassword("yamdb-unusable-password")
	})
	_ = VerifyPassword(dummyHash, provided)
}

func truncate(s string) string {
	if len(s) > maxPasswordBytes {
		return s[:maxPasswordBytes]
	}
	return s
}
