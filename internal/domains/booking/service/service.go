package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"errors"
	"fmt"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/directory"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/policy"
	"hotel/internal/domains/booking/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/identity"
	"hotel/shared/metrics"
	"hotel/shared/timezone"
	"hotel/shared/validator"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	msgInsufficientPermissions = "Insufficient permissions"
	msgStatusNotPermitted      = "Insufficient permissions to update status"
	msgAdminRequired           = "Admin privileges required"
	msgBookingNotFound         = "Booking not found"
	msgInvalidMode             = "Invalid booking mode"
	msgInvalidRoomID           = "Invalid room_id"
	msgInvalidDateTime         = "Invalid date or time format"
	msgInvalidDate             = "Invalid date format, expected YYYY-MM-DD"
	msgInvalidTime             = "Invalid time format, expected HH:MM"
	msgStayOrder               = "Check-in date must be before check-out date"
	msgInvalidDuration         = "Invalid duration_hours, must be integer"
	msgDurationTooShort        = "duration_hours must be at least 1"
	msgOverlap                 = "Booking dates overlap with existing booking"
	msgDailyFieldsOnly         = "start_time and duration_hours apply to hourly bookings only"
	msgHourlyFieldsOnly        = "check_in_date and check_out_date apply to daily bookings only"
)

const lookupConcurrency = 4

var sortableColumns = []string{
	constant.FieldCreatedAt,
	model.FieldBookingDate,
	model.FieldCheckInDate,
	model.FieldStatus,
}

type Booking interface {
	Create(ctx context.Context, caller identity.Identity, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	List(ctx context.Context, caller identity.Identity, params gDto.QueryParams, filter gDto.FilterGroup) ([]dto.BookingResponse, error)
	Get(ctx context.Context, caller identity.Identity, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, caller identity.Identity, id string, req dto.UpdateBookingRequest) (dto.BookingResponse, error)
	Delete(ctx context.Context, caller identity.Identity, id string) error
}

type serviceImpl struct {
	repo      repository.Booking
	directory directory.Directory
	policy    policy.Policy
	otel      otel.Otel
}

func New(repo repository.Booking, directory directory.Directory, policy policy.Policy, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:      repo,
		directory: directory,
		policy:    policy,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, caller identity.Identity, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !caller.IsAdmin() && !caller.IsCustomer() {
		return res, failure.Forbidden(msgInsufficientPermissions) // nolint:wrapcheck
	}

	if req.BookingMode != model.ModeDaily && req.BookingMode != model.ModeHourly {
		return res, failure.BadRequestFromString(msgInvalidMode) // nolint:wrapcheck
	}

	if missing := req.Billing.Missing(); len(missing) > 0 {
		return res, failure.BadRequestFromString("Missing billing fields: " + strings.Join(missing, ", ")) // nolint:wrapcheck
	}

	if missing := req.MissingFields(); len(missing) > 0 {
		return res, failure.BadRequestFromString("Missing required fields: " + strings.Join(missing, ", ")) // nolint:wrapcheck
	}

	if err = validator.ValidateVar(*req.RoomID, "uuid"); err != nil {
		return res, failure.BadRequestFromString(msgInvalidRoomID) // nolint:wrapcheck
	}

	schedule, err := parseSchedule(req)
	if err != nil {
		return res, err
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err // nolint:wrapcheck
	}

	booking := req.ToModel(caller.UserID, schedule, timezone.Now())

	if err = s.repo.InsertIfAvailable(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			metrics.BookingConflictsTotal.WithLabelValues("create").Inc()

			return res, failure.Conflict(msgOverlap) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	metrics.BookingsCreatedTotal.WithLabelValues(booking.BookingMode).Inc()
	scope.SetAttribute("booking.id", booking.ID)

	res.FromModel(booking)
	s.enrich(ctx, &res)

	return res, nil
}

// parseSchedule reads the temporal fields of the request's mode. Daily stays
// must end after they start, hourly slots need a whole number of hours.
func parseSchedule(req dto.CreateBookingRequest) (dto.Schedule, error) {
	if req.BookingMode == model.ModeDaily {
		checkIn, errIn := timezone.ParseDate(*req.CheckInDate)
		checkOut, errOut := timezone.ParseDate(*req.CheckOutDate)

		if errIn != nil || errOut != nil {
			return dto.Schedule{}, failure.BadRequestFromString(msgInvalidDateTime) // nolint:wrapcheck
		}

		if !checkIn.Before(checkOut) {
			return dto.Schedule{}, failure.BadRequestFromString(msgStayOrder) // nolint:wrapcheck
		}

		return dto.Schedule{CheckIn: &checkIn, CheckOut: &checkOut}, nil
	}

	clock, err := timezone.ParseClock(*req.StartTime)
	if err != nil {
		return dto.Schedule{}, failure.BadRequestFromString(msgInvalidDateTime) // nolint:wrapcheck
	}

	hours, err := parseDuration(*req.DurationHours)
	if err != nil {
		return dto.Schedule{}, err
	}

	start := model.Clock(clock)

	return dto.Schedule{StartTime: &start, DurationHours: &hours}, nil
}

func parseDuration(raw dto.Hours) (int, error) {
	hours, err := raw.Int()
	if err != nil {
		return 0, failure.BadRequestFromString(msgInvalidDuration) // nolint:wrapcheck
	}

	if hours < 1 {
		return 0, failure.BadRequestFromString(msgDurationTooShort) // nolint:wrapcheck
	}

	return hours, nil
}

// List returns every booking to admins and only their own to customers.
func (s *serviceImpl) List(ctx context.Context, caller identity.Identity, params gDto.QueryParams, filter gDto.FilterGroup) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !caller.IsAdmin() {
		filter = gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				filter,
				gDto.Filter{
					Field:    model.FieldCustomerID,
					Operator: gDto.FilterOperatorEq,
					Value:    caller.UserID,
					Table:    model.TableName,
				},
			},
		}
	}

	params.RestrictSort(sortableColumns...)

	bookings, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	res = dto.FromModels(bookings)

	pointers := make([]*dto.BookingResponse, len(res))
	for i := range res {
		pointers[i] = &res[i]
	}

	s.enrich(ctx, pointers...)

	scope.SetAttribute("booking.count", len(res))

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, caller identity.Identity, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !caller.IsAdmin() && booking.CustomerID != caller.UserID {
		return res, failure.Forbidden(msgInsufficientPermissions) // nolint:wrapcheck
	}

	res.FromModel(booking)
	s.enrich(ctx, &res)

	return res, nil
}

// Update applies a partial change. Every field in the request is checked
// against the role policy before anything is parsed or written.
func (s *serviceImpl) Update(ctx context.Context, caller identity.Identity, id string, req dto.UpdateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !caller.IsAdmin() && booking.CustomerID != caller.UserID {
		return res, failure.Forbidden(msgInsufficientPermissions) // nolint:wrapcheck
	}

	if err = s.authorizeFields(caller, req); err != nil {
		return res, err
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err // nolint:wrapcheck
	}

	changes, err := applyChanges(&booking, req)
	if err != nil {
		return res, err
	}

	if len(changes) > 0 {
		changes[constant.FieldModifiedAt] = timezone.Now()
		changes[constant.FieldModifiedBy] = caller.UserID

		if err = s.repo.UpdateIfAvailable(ctx, booking, changes); err != nil {
			if errors.Is(err, repository.ErrOverlap) {
				metrics.BookingConflictsTotal.WithLabelValues("update").Inc()

				return res, failure.Conflict(msgOverlap) // nolint:wrapcheck
			}

			log.Error().Err(err).Str("booking_id", id).Msg("failed to update booking")

			return res, fmt.Errorf("failed to update booking: %w", err)
		}
	}

	res.FromModel(booking)
	s.enrich(ctx, &res)

	return res, nil
}

func (s *serviceImpl) authorizeFields(caller identity.Identity, req dto.UpdateBookingRequest) error {
	for _, field := range req.Fields() {
		if field == model.FieldStatus {
			if !s.policy.CanSet(caller.Role, field, *req.Status) {
				return failure.Forbidden(msgStatusNotPermitted) // nolint:wrapcheck
			}

			continue
		}

		if !s.policy.CanWrite(caller.Role, field) {
			return failure.Forbidden(msgInsufficientPermissions) // nolint:wrapcheck
		}
	}

	return nil
}

// applyChanges validates the request against the stored booking, writes the
// new values into booking and returns them as column updates. A single date
// is checked together with the stored other date.
func applyChanges(booking *model.Booking, req dto.UpdateBookingRequest) (map[string]any, error) {
	changes := map[string]any{}

	if req.ChangesStay() && !booking.IsDaily() {
		return nil, failure.BadRequestFromString(msgHourlyFieldsOnly) // nolint:wrapcheck
	}

	if req.ChangesSlot() && booking.IsDaily() {
		return nil, failure.BadRequestFromString(msgDailyFieldsOnly) // nolint:wrapcheck
	}

	if req.ChangesStay() {
		checkIn, err := dateOr(req.CheckInDate, booking.CheckInDate)
		if err != nil {
			return nil, err
		}

		checkOut, err := dateOr(req.CheckOutDate, booking.CheckOutDate)
		if err != nil {
			return nil, err
		}

		if checkIn == nil || checkOut == nil || !checkIn.Before(*checkOut) {
			return nil, failure.BadRequestFromString(msgStayOrder) // nolint:wrapcheck
		}

		booking.CheckInDate, booking.CheckOutDate = checkIn, checkOut
		changes[model.FieldCheckInDate] = *checkIn
		changes[model.FieldCheckOutDate] = *checkOut
	}

	if req.StartTime != nil {
		clock, err := timezone.ParseClock(*req.StartTime)
		if err != nil {
			return nil, failure.BadRequestFromString(msgInvalidTime) // nolint:wrapcheck
		}

		start := model.Clock(clock)
		booking.StartTime = &start
		changes[model.FieldStartTime] = start
	}

	if req.DurationHours != nil {
		hours, err := parseDuration(*req.DurationHours)
		if err != nil {
			return nil, err
		}

		booking.DurationHours = &hours
		changes[model.FieldDurationHours] = hours
	}

	if req.Status != nil {
		booking.Status = *req.Status
		changes[model.FieldStatus] = *req.Status
	}

	return changes, nil
}

func dateOr(value *string, stored *time.Time) (*time.Time, error) {
	if value == nil {
		return stored, nil
	}

	day, err := timezone.ParseDate(*value)
	if err != nil {
		return nil, failure.BadRequestFromString(msgInvalidDate) // nolint:wrapcheck
	}

	return &day, nil
}

// Delete removes a booking. Only admins may delete, whoever owns it.
func (s *serviceImpl) Delete(ctx context.Context, caller identity.Identity, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !caller.IsAdmin() {
		return failure.Forbidden(msgAdminRequired) // nolint:wrapcheck
	}

	if !isUUID(id) {
		return failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	deleted, err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	if deleted == 0 {
		return failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	if !isUUID(id) {
		return model.Booking{}, failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if errors.Is(err, repository.ErrNotFound) {
		return booking, failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	return booking, nil
}

// enrich decorates bookings with room details. Each room is looked up once;
// lookups that do not find the room leave the fields empty, and unavailable
// lookups also mark the booking degraded.
func (s *serviceImpl) enrich(ctx context.Context, bookings ...*dto.BookingResponse) {
	seen := make(map[string]struct{})
	roomIDs := make([]string, 0, len(bookings))

	for _, booking := range bookings {
		if _, ok := seen[booking.RoomID]; !ok {
			seen[booking.RoomID] = struct{}{}
			roomIDs = append(roomIDs, booking.RoomID)
		}
	}

	found := make([]directory.Result, len(roomIDs))

	var group errgroup.Group

	group.SetLimit(lookupConcurrency)

	for i, roomID := range roomIDs {
		group.Go(func() error {
			found[i] = s.directory.Lookup(ctx, roomID)

			return nil
		})
	}

	_ = group.Wait()

	results := make(map[string]directory.Result, len(roomIDs))
	for i, roomID := range roomIDs {
		results[roomID] = found[i]
	}

	for _, booking := range bookings {
		switch result := results[booking.RoomID]; result.Outcome {
		case directory.Found:
			booking.Enrich(result.Room)
		case directory.Unavailable:
			booking.Degraded = true
		}
	}
}

func isUUID(id string) bool {
	return validator.ValidateVar(id, "uuid") == nil
}
