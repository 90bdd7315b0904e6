package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	id := uuid.New()

	token, err := m.CreateToken(id)
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.UserID)
	assert.Equal(t, id.String(), claims.Subject)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("secret", time.Minute)
	issued := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issued }
	token, err := m.CreateToken(uuid.New())
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("one", time.Hour).CreateToken(uuid.New())
	require.NoError(t, err)

	_, err = NewTokenManager("two", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestTokenManager_RejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{UserID: uuid.NewString()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestTokenManager_RejectsMalformedUserID(t *testing.T) {
	claims := &Claims{UserID: "nobody"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)

	assert.NoError(t, ComparePasswords(hash, "hunter22"))
	assert.Error(t, ComparePasswords(hash, "hunter23"))
}
