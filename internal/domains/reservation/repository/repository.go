package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"ecodash/infras/otel"
	"ecodash/infras/postgres"
	"ecodash/internal/domains/reservation/model"
	"ecodash/shared/constant"
	gDto "ecodash/shared/dto"
	"ecodash/shared/logger"
	gRepo "ecodash/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// ErrConflict reports that an active reservation on the same space overlaps
// the one being scheduled.
var ErrConflict = errors.New("reservation conflicts with an active reservation")

type Reservation interface {
	Schedule(ctx context.Context, reservation model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

// ConflictFilter matches active reservations on spaceID whose interval
// overlaps interval: stored.start < interval.End AND stored.end > interval.Start.
func ConflictFilter(spaceID string, interval model.Interval) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldSpaceID,
				Value:    spaceID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.StatusActive,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "requested_end",
				Field:    model.FieldStartTimestamp,
				Value:    interval.End,
				Operator: gDto.FilterOperatorLess,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "requested_start",
				Field:    model.FieldEndTimestamp,
				Value:    interval.Start,
				Operator: gDto.FilterOperatorGreater,
				Table:    model.TableName,
			},
		},
	}
}

// Schedule inserts reservation unless it overlaps an active reservation on the
// same space, in which case it returns ErrConflict. The check and the insert
// share one transaction holding an advisory lock on the space, so concurrent
// calls for one space are serialized.
func (r *repositoryImpl) Schedule(ctx context.Context, reservation model.Reservation) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.Schedule")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(model.FieldSpaceID, reservation.SpaceID)

	err = r.WithTransaction(ctx, func(sqltx *sqlx.Tx) error {
		if err := r.LockTx(ctx, sqltx, reservation.SpaceID); err != nil {
			return err
		}

		conflict, err := r.ExistTx(ctx, sqltx, ConflictFilter(reservation.SpaceID, reservation.Interval()))
		if err != nil {
			return err
		}

		if conflict {
			return ErrConflict
		}

		return r.InsertTx(ctx, sqltx, reservation)
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrConflict):
		return ErrConflict
	case isExclusionViolation(err):
		log.Warn().Str(model.FieldSpaceID, reservation.SpaceID).Msg("exclusion constraint rejected overlapping reservation")

		return ErrConflict
	default:
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to schedule reservation: %w", err)
	}
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeExclusionViolation
}
