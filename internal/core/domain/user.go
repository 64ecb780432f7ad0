package domain

import (
	"time"

	"github.com/google/uuid"
)

// TokenPurposeAuth is the purpose stamped on session tokens. Tokens carrying
// any other purpose never authenticate a request.
const TokenPurposeAuth = "auth"

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserToken struct {
	UserID    uuid.UUID `json:"-"`
	Purpose   string    `json:"purpose"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}
