package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sagarsaathi/saathi/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestConfig() models.JWTConfig {
	return models.JWTConfig{
		Secret:     "test-secret-key-for-jwt-signing",
		Expiration: 60,
		Issuer:     "saathi-test",
	}
}

func TestAuthenticate(t *testing.T) {
	cfg := getTestConfig()
	auth := NewAuthenticator(cfg)

	tests := []struct {
		name    string
		subject string
		role    models.Role
	}{
		{"requester", "U1", models.RoleUser},
		{"driver", "D1", models.RoleDriver},
		{"admin", "A1", models.RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, expiresAt, err := GenerateToken(tt.subject, tt.role, cfg)
			require.NoError(t, err)
			assert.Greater(t, expiresAt, time.Now().Unix())

			identity, err := auth.Authenticate(token)
			require.NoError(t, err)
			assert.Equal(t, tt.subject, identity.SubjectID)
			assert.Equal(t, tt.role, identity.Role)
		})
	}
}

func TestAuthenticate_Rejects(t *testing.T) {
	cfg := getTestConfig()
	auth := NewAuthenticator(cfg)

	t.Run("garbage", func(t *testing.T) {
		_, err := auth.Authenticate("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := cfg
		other.Secret = "another-secret"
		token, _, err := GenerateToken("U1", models.RoleUser, other)
		require.NoError(t, err)

		_, err = auth.Authenticate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired := cfg
		expired.Expiration = -5
		token, _, err := GenerateToken("U1", models.RoleUser, expired)
		require.NoError(t, err)

		_, err = auth.Authenticate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		foreign := cfg
		foreign.Issuer = "someone-else"
		token, _, err := GenerateToken("U1", models.RoleUser, foreign)
		require.NoError(t, err)

		_, err = auth.Authenticate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown role", func(t *testing.T) {
		token, _, err := GenerateToken("U1", models.Role("passenger"), cfg)
		require.NoError(t, err)

		_, err = auth.Authenticate(token)
		assert.ErrorIs(t, err, ErrMissingClaims)
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := Claims{UserID: "U1", Role: "admin", RegisteredClaims: jwt.RegisteredClaims{Issuer: cfg.Issuer}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = auth.Authenticate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
