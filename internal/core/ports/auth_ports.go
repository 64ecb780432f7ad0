package ports

import "github.com/google/uuid"

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

type TokenClaims struct {
	UserID  uuid.UUID
	Purpose string
}

// TokenCodec signs and checks self-contained bearer tokens. Verify reports
// a single opaque failure for any bad token; callers must not learn whether
// the signature, the structure or the claims were at fault.
type TokenCodec interface {
	Issue(userID uuid.UUID, purpose string) (string, error)
	Verify(token string) (TokenClaims, error)
}
