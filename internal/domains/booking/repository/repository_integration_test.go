//go:build integration

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/sync/errgroup"

	otelMocks "hotel/infras/otel/mocks"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/repository"
	"hotel/shared"
	"hotel/shared/constant"
)

const migrationsSource = "file://../../../../migrations/booking"

func newRepository(t *testing.T) repository.Booking {
	t.Helper()

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("booking"),
		tcPostgres.WithUsername("booking"),
		tcPostgres.WithPassword("booking"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	mig, err := migrate.New(migrationsSource, dsn)
	require.NoError(t, err)
	require.NoError(t, mig.Up())

	srcErr, dbErr := mig.Close()
	require.NoError(t, srcErr)
	require.NoError(t, dbErr)

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return repository.New(postgres.FromDB(db), otelMocks.NewOtel())
}

func stay(roomID, checkIn, checkOut string) model.Booking {
	in, _ := time.Parse(constant.DateOnlyFormat, checkIn)
	out, _ := time.Parse(constant.DateOnlyFormat, checkOut)
	now := time.Now().UTC()
	customer := uuid.NewString()

	booking := model.Booking{
		ID:           uuid.NewString(),
		CustomerID:   customer,
		RoomID:       roomID,
		BookingMode:  model.ModeDaily,
		CheckInDate:  &in,
		CheckOutDate: &out,
		BookingDate:  now,
		Status:       model.StatusPending,
		Billing: model.Billing{
			FullName: "Guest", Email: "guest@example.com", Phone: "1", Address1: "Street",
			City: "City", State: "State", PostalCode: "1", Country: model.DefaultCountry,
		},
	}
	booking.Metadata.Stamp(now, customer)

	return booking
}

func TestInsertIfAvailable_Integration(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()
	roomID := uuid.NewString()

	require.NoError(t, repo.InsertIfAvailable(ctx, stay(roomID, "2024-03-10", "2024-03-12")))

	t.Run("overlapping stay is rejected", func(t *testing.T) {
		err := repo.InsertIfAvailable(ctx, stay(roomID, "2024-03-11", "2024-03-13"))
		assert.ErrorIs(t, err, repository.ErrOverlap)
	})

	t.Run("back to back stay is accepted", func(t *testing.T) {
		assert.NoError(t, repo.InsertIfAvailable(ctx, stay(roomID, "2024-03-12", "2024-03-14")))
	})

	t.Run("other room is independent", func(t *testing.T) {
		assert.NoError(t, repo.InsertIfAvailable(ctx, stay(uuid.NewString(), "2024-03-10", "2024-03-12")))
	})
}

func TestInsertIfAvailable_ConcurrentWriters(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()
	roomID := uuid.NewString()

	const writers = 8

	var group errgroup.Group

	results := make([]error, writers)

	for i := range writers {
		group.Go(func() error {
			results[i] = repo.InsertIfAvailable(ctx, stay(roomID, "2024-05-01", "2024-05-04"))

			return nil
		})
	}

	require.NoError(t, group.Wait())

	var stored, rejected int

	for _, err := range results {
		switch {
		case err == nil:
			stored++
		case errors.Is(err, repository.ErrOverlap):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, stored)
	assert.Equal(t, writers-1, rejected)

	count, err := repo.Count(ctx, repository.OverlapFilter(stay(roomID, "2024-05-01", "2024-05-04")))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUpdateIfAvailable_Integration(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()
	roomID := uuid.NewString()

	first := stay(roomID, "2024-06-01", "2024-06-03")
	second := stay(roomID, "2024-06-05", "2024-06-07")

	require.NoError(t, repo.InsertIfAvailable(ctx, first))
	require.NoError(t, repo.InsertIfAvailable(ctx, second))

	moved := second
	checkIn, _ := time.Parse(constant.DateOnlyFormat, "2024-06-02")
	moved.CheckInDate = &checkIn

	err := repo.UpdateIfAvailable(ctx, moved, map[string]any{model.FieldCheckInDate: checkIn})
	assert.ErrorIs(t, err, repository.ErrOverlap)

	shrunk := second
	checkIn, _ = time.Parse(constant.DateOnlyFormat, "2024-06-04")
	shrunk.CheckInDate = &checkIn

	require.NoError(t, repo.UpdateIfAvailable(ctx, shrunk, map[string]any{model.FieldCheckInDate: checkIn}))

	stored, err := repo.Get(ctx, shared.FilterByID(second.ID, model.FieldID, model.TableName))
	require.NoError(t, err)
	assert.Equal(t, "2024-06-04", stored.CheckInDate.Format(constant.DateOnlyFormat))
}
