package access

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrAccessDenied is returned when a candidate password does not unlock the portal.
var ErrAccessDenied = errors.New("access: denied")

// CheckAccess compares the input with the secret in plaintext.
// The portal gate is a demo lock, not a security boundary.
func CheckAccess(input, secret string) bool {
	return input == secret
}

// Authenticator decides whether a candidate password unlocks the portal.
type Authenticator interface {
	Verify(candidate string) bool
}

// SecretAuthenticator checks candidates against a plaintext secret.
type SecretAuthenticator struct {
	secret string
}

// NewSecretAuthenticator constructs a SecretAuthenticator.
func NewSecretAuthenticator(secret string) SecretAuthenticator {
	return SecretAuthenticator{secret: secret}
}

// Verify implements Authenticator.
func (a SecretAuthenticator) Verify(candidate string) bool {
	return CheckAccess(candidate, a.secret)
}

// HashAuthenticator checks candidates against a bcrypt hash.
type HashAuthenticator struct {
	hash []byte
}

// NewHashAuthenticator validates the bcrypt hash and wraps it.
func NewHashAuthenticator(hash string) (HashAuthenticator, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return HashAuthenticator{}, fmt.Errorf("access: invalid bcrypt hash: %w", err)
	}
	return HashAuthenticator{hash: []byte(hash)}, nil
}

// Verify implements Authenticator.
func (a HashAuthenticator) Verify(candidate string) bool {
	return bcrypt.CompareHashAndPassword(a.hash, []byte(candidate)) == nil
}

// AllowAll grants every candidate. Use it in tests only.
type AllowAll struct{}

// Verify implements Authenticator.
func (AllowAll) Verify(string) bool { return true }

// Gate turns an Authenticator verdict into an error.
type Gate struct {
	auth Authenticator
}

// NewGate constructs a Gate.
func NewGate(auth Authenticator) *Gate {
	return &Gate{auth: auth}
}

// Check returns ErrAccessDenied unless the candidate unlocks the portal.
func (g *Gate) Check(candidate string) error {
	if g == nil || g.auth == nil {
		return ErrAccessDenied
	}
	if !g.auth.Verify(candidate) {
		return ErrAccessDenied
	}
	return nil
}
