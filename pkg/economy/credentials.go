package economy

import (
	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier hashes and checks user secrets
type CredentialVerifier interface {
	Hash(secret string) (string, error)
	Verify(hash, secret string) bool
}

// BcryptCredentials stores secrets as bcrypt hashes
type BcryptCredentials struct {
	// Cost defaults to bcrypt.DefaultCost
	Cost int
}

var _ CredentialVerifier = BcryptCredentials{}

// Hash returns the bcrypt hash of secret
func (b BcryptCredentials) Hash(secret string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// Verify returns true if secret matches the hash
func (b BcryptCredentials) Verify(hash, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
