package middleware

import (
	"context"
	"errors"
	"net/http"

	"ecodash/infras/jwt"
	"ecodash/infras/otel"
	"ecodash/permissions"
	"ecodash/shared/constant"
	"ecodash/shared/failure"
	"ecodash/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	ErrNoToken       = "no token provided"
	ErrInvalidFormat = "invalid token format"
	ErrTokenExpired  = "token has expired"
	ErrInvalidToken  = "invalid token"
)

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
}

type authImpl struct {
	verifier   jwt.Verifier
	otel       otel.Otel
	permission *permissions.PermissionData
}

// NewAuthMiddleware creates a new middleware instance
func NewAuthMiddleware(verifier jwt.Verifier, otel otel.Otel, permissions *permissions.PermissionData) Auth {
	return &authImpl{
		verifier:   verifier,
		otel:       otel,
		permission: permissions,
	}
}

// Auth verifies the bearer token and stores the caller's user id in the
// request context. Routes the permission table marks as public pass through.
func (m *authImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelMiddlewareScopeName, constant.OtelMiddlewareScopeName+".auth")
		defer scope.End()

		method := request.Method
		path := routePattern(request)

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     method,
		})

		if m.permission.IsPublic(path, method) {
			next.ServeHTTP(writer, request)

			return
		}

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == "" {
			err := failure.Unauthorized(ErrNoToken)
			scope.TraceError(err)

			response.WithError(writer, err)

			return
		}

		tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			err := failure.Unauthorized(ErrInvalidFormat)
			scope.TraceError(err)

			response.WithError(writer, err)

			return
		}

		claims, err := m.verifier.Verify(ctx, tokenString)
		if err != nil {
			message := ErrInvalidToken
			if errors.Is(err, jwt.ErrExpiredToken) {
				message = ErrTokenExpired
			}

			log.Warn().Err(err).Str("http.path", path).Msg("rejected bearer token")

			err := failure.Unauthorized(message)
			scope.TraceError(err)

			response.WithError(writer, err)

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.Identity())
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.ID)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// routePattern resolves the chi route pattern the request will be served by.
func routePattern(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return request.URL.Path
	}

	return rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
}
