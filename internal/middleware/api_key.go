package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"sync/atomic"

	"productapi/internal/apperrors"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// APIKeyHeader carries the shared secret on protected requests.
const APIKeyHeader = "x-api-key"

const forbiddenMessage = "Forbidden: Invalid or missing API Key"

// Authenticate reports whether presented matches configured exactly.
// An empty presented or configured key never matches.
func Authenticate(presented, configured string) bool {
	if presented == "" || configured == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(configured)) == 1
}

// AuthenticateHash reports whether presented is the secret behind a bcrypt hash.
func AuthenticateHash(presented string, hash []byte) bool {
	if presented == "" || len(hash) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(presented)) == nil
}

// APIKeyGuard checks presented keys against a plaintext key or a bcrypt hash.
type APIKeyGuard struct {
	key  string
	hash []byte

	// verified holds the SHA-256 digest of the last key that passed the
	// bcrypt check. Header strings from Fiber are only valid for the request.
	verified atomic.Value
}

// NewAPIKeyGuard creates a guard. When hash is set it takes precedence over key.
func NewAPIKeyGuard(key, hash string) *APIKeyGuard {
	g := &APIKeyGuard{key: key}
	if hash != "" {
		g.hash = []byte(hash)
	}
	return g
}

// Allow reports whether presented grants access.
func (g *APIKeyGuard) Allow(presented string) bool {
	if g.hash == nil {
		return Authenticate(presented, g.key)
	}
	if presented == "" {
		return false
	}
	digest := sha256.Sum256([]byte(presented))
	if known, ok := g.verified.Load().([sha256.Size]byte); ok && subtle.ConstantTimeCompare(digest[:], known[:]) == 1 {
		return true
	}
	if !AuthenticateHash(presented, g.hash) {
		return false
	}
	g.verified.Store(digest)
	return true
}

// APIKeyRequired is a Fiber middleware rejecting requests without a valid x-api-key header.
// The 403 body keeps the short {"message": ...} shape existing clients parse.
func APIKeyRequired(guard *APIKeyGuard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !guard.Allow(c.Get(APIKeyHeader)) {
			ferr := apperrors.NewForbiddenError(forbiddenMessage)
			return c.Status(ferr.StatusCode()).JSON(fiber.Map{
				"message": ferr.Message,
			})
		}
		return c.Next()
	}
}
