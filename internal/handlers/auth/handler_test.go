package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"ecodash/infras/otel/mocks"
	"ecodash/internal/handlers/auth"
	"ecodash/shared/constant"
)

func TestHandler_Authenticate(t *testing.T) {
	handler := auth.New(mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	t.Run("echoes the caller", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/authenticate", nil)
		req = req.WithContext(context.WithValue(req.Context(), constant.ContextKeyUserID, "user-1"))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":{"user_id":"user-1"}}`, rec.Body.String())
	})

	t.Run("no caller", func(t *testing.T) {
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/authenticate", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
