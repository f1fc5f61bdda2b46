package jwtmanager

import (
	"context"
	"doccare-service/internal/app/config"
	"doccare-service/internal/app/models"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newManager(t *testing.T, secret, issuer string) *JWTManager {
	t.Helper()
	manager, err := NewJWTManager(&config.InternalConfig{
		JWT: config.AppJWT{Secret: secret, Issuer: issuer, TokenTTLInMinutes: 30},
	}, zap.NewNop())
	require.NoError(t, err)
	return manager
}

func TestJWTManager_RoundTrip(t *testing.T) {
	ctx := context.Background()
	manager := newManager(t, "s3cret", "doccare-service")

	created, err := manager.CreateToken(ctx, &CreateTokenInput{Actor: models.Actor{ID: "doctor-1", Role: models.ActorRoleDoctor}})
	require.NoError(t, err)
	assert.NotEmpty(t, created.Token)

	verified, err := manager.VerifyToken(ctx, &VerifyTokenInput{Token: created.Token})
	require.NoError(t, err)
	assert.Equal(t, "doctor-1", verified.Actor.ID)
	assert.Equal(t, models.ActorRoleDoctor, verified.Actor.Role)
	assert.WithinDuration(t, created.ExpiresAt, verified.ExpiresAt, time.Second)
}

func TestJWTManager_Rejections(t *testing.T) {
	ctx := context.Background()
	manager := newManager(t, "s3cret", "doccare-service")
	patient := models.Actor{ID: "patient-1", Role: models.ActorRolePatient}

	t.Run("empty token", func(t *testing.T) {
		_, err := manager.VerifyToken(ctx, &VerifyTokenInput{})
		assert.ErrorIs(t, err, ErrTokenRequired)
	})

	t.Run("other secret", func(t *testing.T) {
		other := newManager(t, "different", "doccare-service")
		created, err := other.CreateToken(ctx, &CreateTokenInput{Actor: patient})
		require.NoError(t, err)
		_, err = manager.VerifyToken(ctx, &VerifyTokenInput{Token: created.Token})
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other issuer", func(t *testing.T) {
		other := newManager(t, "s3cret", "someone-else")
		created, err := other.CreateToken(ctx, &CreateTokenInput{Actor: patient})
		require.NoError(t, err)
		_, err = manager.VerifyToken(ctx, &VerifyTokenInput{Token: created.Token})
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expiring := newManager(t, "s3cret", "doccare-service")
		expiring.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		created, err := expiring.CreateToken(ctx, &CreateTokenInput{Actor: patient})
		require.NoError(t, err)
		_, err = manager.VerifyToken(ctx, &VerifyTokenInput{Token: created.Token})
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown role", func(t *testing.T) {
		claims := ActorClaims{
			Role: "admin",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "admin-1",
				Issuer:    "doccare-service",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("s3cret"))
		require.NoError(t, err)
		_, err = manager.VerifyToken(ctx, &VerifyTokenInput{Token: signed})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("cannot mint tokens for unknown roles", func(t *testing.T) {
		_, err := manager.CreateToken(ctx, &CreateTokenInput{Actor: models.Actor{ID: "x", Role: "admin"}})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}

func TestJWTManager_SigningKeyNamesRejectedAlgorithm(t *testing.T) {
	manager := newManager(t, "s3cret", "doccare-service")

	key, err := manager.signingKey(jwt.New(jwt.SigningMethodHS256))
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), key)

	_, err = manager.signingKey(jwt.New(jwt.SigningMethodHS512))
	assert.EqualError(t, err, "unexpected signing method: HS512")

	_, err = manager.signingKey(jwt.New(jwt.SigningMethodNone))
	assert.EqualError(t, err, "unexpected signing method: none")
}
