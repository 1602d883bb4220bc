package jwt_test

import (
	"context"
	"testing"
	"time"

	"ecodash/config"
	"ecodash/infras/jwt"
	otelMocks "ecodash/infras/otel/mocks"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-access-secret"

func newVerifier(issuer string) jwt.Verifier {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = secret
	cfg.JWT.Issuer = issuer

	return jwt.New(cfg, otelMocks.NewOtel())
}

func sign(t *testing.T, method gojwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()

	token, err := gojwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)

	return token
}

func claimsFor(subject, userID, issuer string, expiresAt time.Time) jwt.Claims {
	return jwt.Claims{
		UserID: userID,
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			ID:        uuid.NewString(),
			IssuedAt:  gojwt.NewNumericDate(time.Now().Add(-time.Minute)),
			ExpiresAt: gojwt.NewNumericDate(expiresAt),
		},
	}
}

func TestVerify(t *testing.T) {
	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	tests := []struct {
		name     string
		issuer   string
		token    func(t *testing.T) string
		wantUser string
		wantErr  error
	}{
		{
			name: "subject identifies caller",
			token: func(t *testing.T) string {
				return sign(t, gojwt.SigningMethodHS256, []byte(secret), claimsFor("user-1", "", "", future))
			},
			wantUser: "user-1",
		},
		{
			name: "user_id claim wins over subject",
			token: func(t *testing.T) string {
				return sign(t, gojwt.SigningMethodHS256, []byte(secret), claimsFor("firebase|1", "user-2", "", future))
			},
			wantUser: "user-2",
		},
		{
			name:   "matching issuer",
			issuer: "https://id.ecodash.test",
			token: func(t *testing.T) string {
				return sign(t, gojwt.SigningMethodHS256, []byte(secret), claimsFor("user-3", "", "https://id.ecodash.test", future))
			},
			wantUser: "user-3",
		},
		{
			name:   "wrong issuer",
			issuer: "https://id.ecodash.test",
			token: func(t *testing.T) string {
				return sign(t, gojwt.SigningMethodHS256, []byte(secret), claimsFor("user-3", "", "https://elsewhere.test", future))
			},
			wantErr: jwt.ErrInvalidClaim,
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				return sign(t, gojwt.SigningMethodHS256, []byte(secret), claimsFor("user-1", "", "", past))
			},
			wantErr: jwt.ErrExpiredToken,
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				return sign(t, gojwt.SigningMethodHS256, []byte("other"), claimsFor("user-1", "", "", future))
			},
			wantErr: jwt.ErrInvalidToken,
		},
		{
			name: "unexpected algorithm",
			token: func(t *testing.T) string {
				return sign(t, gojwt.SigningMethodHS512, []byte(secret), claimsFor("user-1", "", "", future))
			},
			wantErr: jwt.ErrInvalidToken,
		},
		{
			name: "no identity",
			token: func(t *testing.T) string {
				return sign(t, gojwt.SigningMethodHS256, []byte(secret), claimsFor("", "", "", future))
			},
			wantErr: jwt.ErrInvalidClaim,
		},
		{
			name:    "garbage",
			token:   func(_ *testing.T) string { return "not.a.token" },
			wantErr: jwt.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := newVerifier(tt.issuer).Verify(context.Background(), tt.token(t))

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, claims.Identity())
		})
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	for _, header := range []string{"", "Basic abc", "Bearer ", "bearer abc"} {
		_, err := jwt.ExtractTokenFromHeader(header)
		assert.Error(t, err, header)
	}
}
