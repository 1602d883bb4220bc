package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ecodash/config"
	"ecodash/infras/otel"
	"ecodash/shared/constant"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")
)

const bearerPrefix = "Bearer "

// Claims are the claims the identity provider puts in an access token. The
// caller is identified by user_id, falling back to the registered subject.
type Claims struct {
	UserID string `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// Identity returns the verified user id carried by the claims.
func (c *Claims) Identity() string {
	if c.UserID != "" {
		return c.UserID
	}

	return c.Subject
}

// Verifier checks access tokens minted by the identity provider.
type Verifier interface {
	Verify(ctx context.Context, tokenString string) (*Claims, error)
}

type verifierImpl struct {
	config *config.Config
	otel   otel.Otel
}

// New creates a new token verifier
func New(cfg *config.Config, otl otel.Otel) Verifier {
	return &verifierImpl{
		config: cfg,
		otel:   otl,
	}
}

// Verify validates the signature, expiry and issuer of an HS256 access token.
func (v *verifierImpl) Verify(ctx context.Context, tokenString string) (claims *Claims, err error) {
	_, scope := v.otel.NewScope(ctx, constant.OtelMiddlewareScopeName, constant.OtelMiddlewareScopeName+".jwt.Verify")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}

	if v.config.JWT.Issuer != "" {
		options = append(options, jwt.WithIssuer(v.config.JWT.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return []byte(v.config.JWT.AccessSecret), nil
	}, options...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenInvalidIssuer):
			return nil, ErrInvalidClaim
		default:
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Identity() == "" {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

// ExtractTokenFromHeader extracts JWT token from Authorization header
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is required")
	}

	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", fmt.Errorf("authorization header must start with %q", bearerPrefix)
	}

	token := strings.TrimSpace(authHeader[len(bearerPrefix):])
	if token == "" {
		return "", errors.New("authorization header carries no token")
	}

	return token, nil
}
