package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ErrOverlap is returned when a daily stay would overlap another booking of
// the same room.
var ErrOverlap = errors.New("booking dates overlap with existing booking")

// ErrNotFound is returned when no booking matches.
var ErrNotFound = gRepo.ErrNotFound

const lockRoomQuery = "SELECT pg_advisory_xact_lock(hashtext($1))"

type Booking interface {
	InsertIfAvailable(ctx context.Context, booking model.Booking) error
	UpdateIfAvailable(ctx context.Context, booking model.Booking, changes map[string]any) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

// InsertIfAvailable stores a new booking. A daily booking is written only if
// no other booking of its room overlaps the stay; the check and the insert
// run in one transaction holding a per-room lock.
func (r *repositoryImpl) InsertIfAvailable(ctx context.Context, booking model.Booking) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.InsertIfAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if booking.IsDaily() {
			if err := r.ensureAvailable(ctx, tx, booking); err != nil {
				return err
			}
		}

		return r.InsertTx(ctx, tx, booking)
	})

	return overlapFromConstraint(err)
}

// UpdateIfAvailable applies changes to the booking. booking must already
// carry the changed values; when its stay moves the overlap check is run
// again, ignoring the booking itself.
func (r *repositoryImpl) UpdateIfAvailable(ctx context.Context, booking model.Booking, changes map[string]any) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.UpdateIfAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, movesIn := changes[model.FieldCheckInDate]
	_, movesOut := changes[model.FieldCheckOutDate]

	err = r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if booking.IsDaily() && (movesIn || movesOut) {
			if err := r.ensureAvailable(ctx, tx, booking); err != nil {
				return err
			}
		}

		return r.UpdateTx(ctx, tx, changes, shared.FilterByID(booking.ID, model.FieldID, model.TableName))
	})

	return overlapFromConstraint(err)
}

func (r *repositoryImpl) ensureAvailable(ctx context.Context, tx *sqlx.Tx, booking model.Booking) error {
	if _, err := tx.ExecContext(ctx, lockRoomQuery, booking.RoomID); err != nil {
		return fmt.Errorf("failed to lock room %s: %w", booking.RoomID, err)
	}

	taken, err := r.ExistTx(ctx, tx, OverlapFilter(booking))
	if err != nil {
		return fmt.Errorf("failed to check overlapping bookings: %w", err)
	}

	if taken {
		return ErrOverlap
	}

	return nil
}

// OverlapFilter matches the bookings of the same room whose stay intersects
// [check_in, check_out) of booking, excluding booking itself. Hourly
// bookings have no dates and never match.
func OverlapFilter(booking model.Booking) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    booking.RoomID,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "exclude_id",
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorNotEq,
				Value:    booking.ID,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "stay_check_in",
				Field:    model.FieldCheckOutDate,
				Operator: gDto.FilterOperatorGreater,
				Value:    booking.CheckInDate,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "stay_check_out",
				Field:    model.FieldCheckInDate,
				Operator: gDto.FilterOperatorLess,
				Value:    booking.CheckOutDate,
				Table:    model.TableName,
			},
		},
	}
}

// overlapFromConstraint maps a violation of the stay exclusion constraint,
// raised when a write races past the check, to ErrOverlap.
func overlapFromConstraint(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeExclusionViolation {
		return ErrOverlap
	}

	return err
}
