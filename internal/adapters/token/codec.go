package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/taskvault/api/internal/core/domain"
	"github.com/taskvault/api/internal/core/ports"
)

// Codec signs HS256 tokens carrying the user id and a purpose claim. Tokens
// do not expire on their own; they stay valid until removed from the user's
// allow-list.
type Codec struct {
	secret []byte
}

func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

func (c *Codec) Issue(userID uuid.UUID, purpose string) (string, error) {
	// The jti claim keeps tokens issued in the same second distinct, so
	// every login gets its own revocable allow-list entry.
	claims := jwt.MapClaims{
		"sub":     userID.String(),
		"purpose": purpose,
		"iat":     time.Now().Unix(),
		"jti":     uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify collapses every failure mode into domain.ErrInvalidToken so the
// caller cannot tell a tampered token from a malformed one.
func (c *Codec) Verify(tokenStr string) (ports.TokenClaims, error) {
	parsed, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return ports.TokenClaims{}, domain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return ports.TokenClaims{}, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ports.TokenClaims{}, domain.ErrInvalidToken
	}

	purpose, _ := claims["purpose"].(string)
	if purpose == "" {
		return ports.TokenClaims{}, domain.ErrInvalidToken
	}

	return ports.TokenClaims{UserID: userID, Purpose: purpose}, nil
}
