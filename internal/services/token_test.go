package services

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/freshplate/freshplate-backend/internal/models"
)

const testSecret = "unit-test-secret"

func testUser() *models.User {
	return &models.User{
		ID:    primitive.NewObjectID(),
		Name:  "alice",
		Email: "alice@example.com",
		Role:  models.RoleUser,
	}
}

func TestTokenRoundtrip(t *testing.T) {
	user := testUser()

	token, err := CreateToken(user, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), identity.ID)
	assert.Equal(t, "alice", identity.Name)
	assert.Equal(t, models.RoleUser, identity.Role)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := CreateToken(testUser(), testSecret)
	require.NoError(t, err)

	_, err = ParseToken(token, "a-different-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	now := time.Now()
	claims := tokenClaims{
		Name: "alice",
		Role: models.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   primitive.NewObjectID().Hex(),
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseToken(token, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Malformed(t *testing.T) {
	for _, bad := range []string{"", "garbage", "a.b.c"} {
		_, err := ParseToken(bad, testSecret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestParseToken_RejectsUnsignedToken(t *testing.T) {
	claims := jwt.MapClaims{"name": "alice", "sub": "abc"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(token, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
