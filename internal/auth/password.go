// Package auth wraps bcrypt for the shared credential. Hashing happens only
// in cmd/hashgen; the server itself only ever verifies.
package auth

import "golang.org/x/crypto/bcrypt"

// DefaultCost is the bcrypt cost used when provisioning the credential.
const DefaultCost = 10

// HashPassword returns a bcrypt hash using the given cost. Costs below
// DefaultCost are raised to it; a fast hash defeats the point.
func HashPassword(plain string, cost int) (string, error) {
	if cost < DefaultCost {
		cost = DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares a bcrypt hash and a plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
