package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the cost the original deployment hashed its records
// with, so existing hashes keep verifying.
const bcryptCost = 10

// HashPassword derives a salted one-way hash of plaintext. The plaintext is
// never logged or stored.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches the stored hash. A
// malformed stored hash counts as a mismatch, never an error.
func CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
