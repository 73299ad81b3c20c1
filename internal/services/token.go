package services

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/freshplate/freshplate-backend/internal/models"
)

// TokenDuration matches the 7-day browser session the client keeps.
const TokenDuration = 7 * 24 * time.Hour

// ErrInvalidToken covers every verification failure: bad signature, expiry,
// malformed token. Callers only need to know the bearer credential is unusable.
var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the decoded caller identity the auth middleware attaches to the
// request context. It is request-scoped; nothing process-wide holds it.
type Identity struct {
	ID   string
	Name string
	Role string
}

type tokenClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// CreateToken issues a signed bearer token for the user. The claims carry the
// user's name because recipe ownership is keyed by name, not by id.
func CreateToken(user *models.User, secret string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Name: user.Name,
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenDuration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies signature and expiry and returns the caller identity.
func ParseToken(tokenString, secret string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return &Identity{ID: claims.Subject, Name: claims.Name, Role: claims.Role}, nil
}
