package security

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword : Hash Password
func HashPassword(password string) string {
	bytes, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes)
}

// VerifyPassword : Compare a bcrypt hash with a candidate password
func VerifyPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
