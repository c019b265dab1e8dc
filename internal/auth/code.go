package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// NewConfirmationCode returns a random 12-character hex code used to
// confirm a signup by email.
func NewConfirmationCode() (string, error) {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
