package repository_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecodash/helper"
	"ecodash/infras/otel/mocks"
	"ecodash/infras/postgres"
	"ecodash/internal/domains/reservation/model"
	"ecodash/internal/domains/reservation/repository"
	"ecodash/shared"
	gDto "ecodash/shared/dto"
)

const (
	envTestDatabaseURL = "ECODASH_TEST_DATABASE_URL"
	migrationsSource   = "file://../../../../migrations/postgres"
)

func setupRepository(t *testing.T) repository.Reservation {
	t.Helper()

	dsn := os.Getenv(envTestDatabaseURL)
	if dsn == "" {
		t.Skipf("%s not set, skipping postgres integration test", envTestDatabaseURL)
	}

	require.NoError(t, helper.Run(migrationsSource, dsn, helper.ActionUp))

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)

	_, err = db.Exec("TRUNCATE TABLE " + model.TableName)
	require.NoError(t, err)

	conn := postgres.NewFromDB(db)
	t.Cleanup(func() { _ = conn.Close() })

	return repository.New(conn, mocks.NewOtel())
}

func newReservation(spaceID string, start time.Time, d time.Duration) model.Reservation {
	return model.Reservation{
		ID:             uuid.NewString(),
		UserID:         "user-1",
		SpaceID:        spaceID,
		StartTimestamp: start,
		EndTimestamp:   start.Add(d),
		Status:         model.StatusActive,
		CreatedAt:      time.Now().UTC(),
	}
}

func TestReservationRepository_Schedule(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()
	base := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Hour)

	first := newReservation("A1", base, time.Hour)
	require.NoError(t, repo.Schedule(ctx, first))

	t.Run("overlap conflicts", func(t *testing.T) {
		err := repo.Schedule(ctx, newReservation("A1", base.Add(30*time.Minute), time.Hour))
		assert.ErrorIs(t, err, repository.ErrConflict)
	})

	t.Run("containing interval conflicts", func(t *testing.T) {
		err := repo.Schedule(ctx, newReservation("A1", base.Add(-time.Hour), 3*time.Hour))
		assert.ErrorIs(t, err, repository.ErrConflict)
	})

	t.Run("adjacent interval does not conflict", func(t *testing.T) {
		assert.NoError(t, repo.Schedule(ctx, newReservation("A1", base.Add(time.Hour), time.Hour)))
		assert.NoError(t, repo.Schedule(ctx, newReservation("A1", base.Add(-time.Hour), time.Hour)))
	})

	t.Run("other space does not conflict", func(t *testing.T) {
		assert.NoError(t, repo.Schedule(ctx, newReservation("B2", base, time.Hour)))
	})

	t.Run("stored reservation is readable", func(t *testing.T) {
		got, err := repo.Get(ctx, shared.FilterByID(first.ID, model.FieldID, model.TableName))
		require.NoError(t, err)

		assert.Equal(t, first.ID, got.ID)
		assert.True(t, first.StartTimestamp.Equal(got.StartTimestamp))
		assert.True(t, first.EndTimestamp.Equal(got.EndTimestamp))
	})
}

func TestReservationRepository_ConcurrentSchedule(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()
	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Hour)

	const attempts = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	for range attempts {
		wg.Add(1)

		go func() {
			defer wg.Done()

			err := repo.Schedule(ctx, newReservation("C3", start, time.Hour))

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, repository.ErrConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)
}

func TestReservationRepository_Delete(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()
	start := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Hour)

	reservation := newReservation("D4", start, time.Hour)
	require.NoError(t, repo.Schedule(ctx, reservation))

	filter := shared.FilterByID(reservation.ID, model.FieldID, model.TableName)
	require.NoError(t, repo.Delete(ctx, filter))

	got, err := repo.Get(ctx, filter)
	require.NoError(t, err)
	assert.Empty(t, got.ID)

	// the freed slot can be booked again
	assert.NoError(t, repo.Schedule(ctx, newReservation("D4", start, time.Hour)))

	all, err := repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{gDto.Filter{
			Field:    model.FieldSpaceID,
			Value:    "D4",
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		}},
	})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
