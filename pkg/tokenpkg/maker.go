// Package tokenpkg issues and verifies access tokens.
package tokenpkg

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Token types supported by NewMaker.
const (
	TypeJWT    = "jwt"
	TypePaseto = "paseto"
)

// Maker is an interface for managing tokens.
type Maker interface {
	// CreateToken creates a new token for the given user and duration.
	CreateToken(userID uuid.UUID, username, role string, duration time.Duration) (string, *Payload, error)

	// VerifyToken checks if the token is valid or not.
	VerifyToken(token string) (*Payload, error)
}

// NewMaker returns the Maker of the given token type.
func NewMaker(tokenType, symmetricKey string) (Maker, error) {
	switch tokenType {
	case TypeJWT:
		return NewJWTMaker(symmetricKey)
	case TypePaseto:
		return NewPasetoMaker(symmetricKey)
	}

	return nil, fmt.Errorf("unsupported token type %q", tokenType)
}
