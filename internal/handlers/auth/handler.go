package auth

import (
	"net/http"

	"ecodash/infras/otel"
	"ecodash/shared/constant"
	"ecodash/shared/failure"
	"ecodash/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type AuthenticateResponse struct {
	UserID string `json:"user_id"`
}

type Handler struct {
	otel otel.Otel
}

func New(otel otel.Otel) Handler {
	return Handler{
		otel: otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Get("/authenticate", handler.Authenticate)
}

// Authenticate echoes the identity carried by the bearer token.
// @Summary Verify a token
// @Description Returns the user ID of the verified caller.
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Data[AuthenticateResponse]
// @Failure 401 {object} response.Error
// @Router /v1/authenticate [get]
// @Security BearerAuth
func (handler *Handler) Authenticate(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Authenticate")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)
		log.Error().Msg("failed to get user ID from context")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, AuthenticateResponse{UserID: userID})
}
