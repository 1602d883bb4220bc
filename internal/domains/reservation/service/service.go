package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Reservation=MockReservationService

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecodash/config"
	"ecodash/infras/kafka"
	"ecodash/infras/otel"
	"ecodash/internal/domains/reservation/model"
	"ecodash/internal/domains/reservation/model/dto"
	"ecodash/internal/domains/reservation/repository"
	"ecodash/shared"
	"ecodash/shared/clock"
	"ecodash/shared/constant"
	gDto "ecodash/shared/dto"
	"ecodash/shared/failure"
	"ecodash/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	ErrStartInPast       = "start time must be in the future"
	ErrStartNotBeforeEnd = "start time must be before end time"
	ErrTimeConflict      = "time conflict with existing reservation"
	ErrNotFound          = "reservation not found"
	ErrInvalidTimestamp  = "invalid timestamp format, use ISO 8601 with a UTC offset"
)

type Reservation interface {
	Schedule(ctx context.Context, userID string, req dto.CreateReservationRequest) (string, error)
	Get(ctx context.Context, filters dto.ReservationFilters, params gDto.QueryParams) ([]dto.ReservationResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Reservation
	cfg   *config.Config
	kafka kafka.Client
	clock clock.Clock
	otel  otel.Otel
}

func New(repo repository.Reservation, cfg *config.Config, kafka kafka.Client, clock clock.Clock, otel otel.Otel) Reservation {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		kafka: kafka,
		clock: clock,
		otel:  otel,
	}
}

// Schedule validates the requested interval and books it for userID,
// returning the new reservation id.
func (s *serviceImpl) Schedule(ctx context.Context, userID string, req dto.CreateReservationRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Schedule")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	start, err := timezone.ParseInstant(req.StartTimestamp)
	if err != nil {
		return "", failure.BadRequestFromString(ErrInvalidTimestamp) // nolint:wrapcheck
	}

	end, err := timezone.ParseInstant(req.EndTimestamp)
	if err != nil {
		return "", failure.BadRequestFromString(ErrInvalidTimestamp) // nolint:wrapcheck
	}

	now := s.clock.Now()

	if !start.After(now) {
		return "", failure.BadRequestFromString(ErrStartInPast) // nolint:wrapcheck
	}

	if !start.Before(end) {
		return "", failure.BadRequestFromString(ErrStartNotBeforeEnd) // nolint:wrapcheck
	}

	reservation := model.Reservation{
		ID:             uuid.NewString(),
		UserID:         userID,
		SpaceID:        req.SpaceID,
		StartTimestamp: start,
		EndTimestamp:   end,
		Status:         model.StatusActive,
		CreatedAt:      now,
	}

	scope.SetAttributes(map[string]any{
		model.FieldSpaceID: reservation.SpaceID,
		model.FieldID:      reservation.ID,
	})

	err = s.repo.Schedule(ctx, reservation)
	if errors.Is(err, repository.ErrConflict) {
		log.Warn().Str(model.FieldSpaceID, req.SpaceID).Msg("rejected overlapping reservation")

		return "", failure.Conflict(ErrTimeConflict) // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to schedule reservation")

		return "", fmt.Errorf("failed to schedule reservation: %w", err)
	}

	log.Debug().
		Str(model.FieldID, reservation.ID).
		Str(model.FieldSpaceID, reservation.SpaceID).
		Str("start", timezone.Format(reservation.StartTimestamp, time.RFC3339)).
		Str("end", timezone.Format(reservation.EndTimestamp, time.RFC3339)).
		Msg("reservation scheduled")

	s.publish(ctx, dto.EventReservationCreated, reservation)

	return reservation.ID, nil
}

// Get returns the reservations matching filters. A ReservationID short-circuits
// the other filters and yields exactly one reservation or a not found failure.
func (s *serviceImpl) Get(ctx context.Context, filters dto.ReservationFilters, params gDto.QueryParams) (res []dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if filters.ReservationID != constant.Empty {
		reservation, err := s.get(ctx, filters.ReservationID)
		if err != nil {
			return nil, err
		}

		return dto.FromModels([]model.Reservation{reservation}), nil
	}

	filter, err := filters.ToFilterGroup()
	if err != nil {
		return nil, err
	}

	params.RestrictSortBy(model.SortableFields...)

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return nil, fmt.Errorf("failed to get reservations: %w", err)
	}

	return dto.FromModels(models), nil
}

// Delete removes a reservation. It does not check who owns it.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reservation, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete reservation")

		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	s.publish(ctx, dto.EventReservationDeleted, reservation)

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Reservation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return model.Reservation{}, failure.NotFound(ErrNotFound) // nolint:wrapcheck
	}

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return reservation, failure.NotFound(ErrNotFound) // nolint:wrapcheck
	}

	return reservation, nil
}

func (s *serviceImpl) publish(ctx context.Context, event string, reservation model.Reservation) {
	message := kafka.Message{
		Key:     reservation.SpaceID,
		Value:   dto.NewEvent(event, reservation, s.clock.Now()),
		Headers: map[string]string{"event": event},
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.Reservation, message); err != nil {
			log.Error().Err(err).Str("event", event).Str(model.FieldID, reservation.ID).Msg("failed to publish reservation event")
		}
	}()
}
