package utils

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost matches the work factor used when the service was
// first deployed; config can raise it without invalidating old hashes.
const DefaultBcryptCost = 10

// HashPassword returns the bcrypt hash of plain using the given cost.
// Costs below bcrypt's minimum fall back to DefaultBcryptCost.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost {
		cost = DefaultBcryptCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares a bcrypt hash and a plain password.
// A mismatch is reported as false, never as an error.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
