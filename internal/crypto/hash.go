package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// HashCost is the bcrypt work factor used for every stored password.
	HashCost = bcrypt.DefaultCost
	// MaxPasswordBytes is the longest password bcrypt compares in full.
	MaxPasswordBytes = 72
)

// dummyHash is compared against when no stored hash exists, so unknown
// accounts take as long to reject as wrong passwords.
var dummyHash = mustHash("crimson-dominion-placeholder")

// HashPassword hashes a password with bcrypt. Every call draws a fresh salt,
// so hashing the same password twice yields different strings.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches encodedHash.
// A malformed hash is reported as a mismatch, and so is a password longer
// than MaxPasswordBytes, since bcrypt would only compare its prefix.
func VerifyPassword(password, encodedHash string) bool {
	if len(password) > MaxPasswordBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
}

// BurnVerify runs a comparison that always fails.
func BurnVerify(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

func mustHash(password string) []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		panic(err)
	}
	return hash
}
