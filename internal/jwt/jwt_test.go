package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func useTestKeys(t *testing.T) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}

	privateKey = key
	publicKey = &key.PublicKey
}

func TestSignAndValidPlayerID(t *testing.T) {
	useTestKeys(t)

	signed, err := Sign(18)
	assert.NoError(t, err)

	id, err := ValidPlayerID(signed)
	assert.NoError(t, err)
	assert.Equal(t, int64(18), id)
}

func TestValidPlayerID_invalidAudience(t *testing.T) {
	useTestKeys(t)

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{"different-audience"},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   Issuer,
		Subject:  "15",
	})

	signed, err := token.SignedString(privateKey)
	assert.NoError(t, err)

	id, err := ValidPlayerID(signed)
	assert.Error(t, err)
	assert.Equal(t, int64(0), id)
}

func TestValidPlayerID_invalidIssuer(t *testing.T) {
	useTestKeys(t)

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   "invalid-issuer",
		Subject:  "15",
	})

	signed, err := token.SignedString(privateKey)
	assert.NoError(t, err)

	id, err := ValidPlayerID(signed)
	assert.Error(t, err)
	assert.Equal(t, int64(0), id)
}

func TestValidPlayerID_expired(t *testing.T) {
	useTestKeys(t)

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, jwtgo.RegisteredClaims{
		Audience:  jwtgo.ClaimStrings{Audience},
		ID:        uuid.New().String(),
		IssuedAt:  jwtgo.NewNumericDate(time.Now()),
		ExpiresAt: jwtgo.NewNumericDate(time.Now().Add(time.Hour * -1)),
		Issuer:    Issuer,
		Subject:   "15",
	})

	signed, err := token.SignedString(privateKey)
	assert.NoError(t, err)

	id, err := ValidPlayerID(signed)
	assert.ErrorIs(t, err, jwtgo.ErrTokenExpired)
	assert.Equal(t, int64(0), id)
}

func TestValidPlayerID_wrongSigningMethod(t *testing.T) {
	useTestKeys(t)

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		Issuer:   Issuer,
		Subject:  "15",
	})

	signed, err := token.SignedString([]byte("secret"))
	assert.NoError(t, err)

	_, err = ValidPlayerID(signed)
	assert.Error(t, err)
}
