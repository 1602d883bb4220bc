package reservation

import (
	"net/http"

	"ecodash/infras/otel"
	"ecodash/internal/domains/reservation/model"
	"ecodash/internal/domains/reservation/model/dto"
	"ecodash/internal/domains/reservation/service"
	"ecodash/shared/constant"
	gDto "ecodash/shared/dto"
	"ecodash/shared/failure"
	"ecodash/shared/timerange"
	"ecodash/shared/validator"
	"ecodash/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryReservationID = "reservation_id"

	MessageCreated      = "reservation created successfully"
	MessageDeleted      = "reservation deleted successfully"
	ErrUnauthorized     = "unauthorized action"
	ErrMissingUser      = "unauthorized"
	ErrUserScopedFilter = "please send an authenticated request to /reservations/user to access user-specific reservations"
)

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Post("/add", handler.AddReservation)
		routerGroup.Delete("/delete/{id}", handler.DeleteReservation)
		routerGroup.Get("/user", handler.GetUserReservations)
		routerGroup.Get("/get", handler.GetReservations)
	})
}

// AddReservation books a parking space for the authenticated user.
// @Summary Create a reservation
// @Description Book a parking space for a future time range. Overlapping an active reservation on the same space is rejected.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Create Reservation Request"
// @Success 201 {object} response.Data[dto.CreateReservationResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/add [post]
// @Security BearerAuth
func (handler *Handler) AddReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddReservation")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, failure.Unauthorized(ErrMissingUser))

		return
	}

	req := dto.CreateReservationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	id, err := handler.service.Schedule(ctx, userID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str(model.FieldSpaceID, req.SpaceID).Msg("failed to create reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation created successfully by user " + userID)

	response.WithJSON(w, http.StatusCreated, dto.CreateReservationResponse{
		ID:      id,
		Message: MessageCreated,
	})
}

// DeleteReservation removes one of the caller's reservations.
// @Summary Delete a reservation
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Message
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/delete/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReservation")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, failure.Unauthorized(ErrMissingUser))

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	reservations, err := handler.service.Get(ctx, dto.ReservationFilters{ReservationID: id}, gDto.QueryParams{})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str(model.FieldID, id).Msg("failed to get reservation")

		response.WithError(w, err)

		return
	}

	if len(reservations) == 0 || reservations[0].UserID != userID {
		err := failure.Forbidden(ErrUnauthorized)
		scope.TraceError(err)
		log.Warn().Str(model.FieldID, id).Str(model.FieldUserID, userID).Msg("refused to delete reservation of another user")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str(model.FieldID, id).Msg("failed to delete reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation deleted successfully")

	response.WithMessage(w, http.StatusOK, MessageDeleted)
}

// GetUserReservations lists the caller's reservations.
// @Summary Get my reservations
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param space_id query string false "Filter by space ID"
// @Param start_timestamp query string false "Filter by start, optionally prefixed by >=, <=, >, <, == or !="
// @Param end_timestamp query string false "Filter by end, optionally prefixed by >=, <=, >, <, == or !="
// @Success 200 {object} response.Data[[]dto.ReservationResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/user [get]
// @Security BearerAuth
func (handler *Handler) GetUserReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUserReservations")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, failure.Unauthorized(ErrMissingUser))

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)

	filters := filtersFromRequest(r)
	filters.ReservationID = constant.Empty
	filters.UserID = userID

	reservations, err := handler.service.Get(ctx, filters, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetReservations lists reservations without revealing who made them.
// @Summary Get reservations
// @Description Public reservation query. Filtering by user_id is refused; use /v1/reservations/user instead.
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param reservation_id query string false "Reservation ID, other filters are ignored when set"
// @Param space_id query string false "Filter by space ID"
// @Param start_timestamp query string false "Filter by start, optionally prefixed by >=, <=, >, <, == or !="
// @Param end_timestamp query string false "Filter by end, optionally prefixed by >=, <=, >, <, == or !="
// @Success 200 {object} response.Data[[]dto.ReservationResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/get [get]
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	if r.URL.Query().Has(model.FieldUserID) {
		err := failure.Forbidden(ErrUserScopedFilter)
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)

	reservations, err := handler.service.Get(ctx, filtersFromRequest(r), queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dto.WithoutOwners(reservations))
}

func filtersFromRequest(r *http.Request) dto.ReservationFilters {
	query := r.URL.Query()

	return dto.ReservationFilters{
		ReservationID:  query.Get(queryReservationID),
		SpaceID:        query.Get(model.FieldSpaceID),
		StartTimestamp: timerange.RestoreQueryValue(query.Get(model.FieldStartTimestamp)),
		EndTimestamp:   timerange.RestoreQueryValue(query.Get(model.FieldEndTimestamp)),
	}
}
