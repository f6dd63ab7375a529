package dto

import (
	"encoding/json"
	"fmt"
	"hotel/internal/domains/booking/model"
	"hotel/shared/timezone"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BillingRequest is the billing block of a new booking.
type BillingRequest struct {
	FullName   string `json:"fullName"   validate:"max=120"`
	Email      string `json:"email"      validate:"max=120"`
	Phone      string `json:"phone"      validate:"max=20"`
	GSTIN      string `json:"gstin"      validate:"max=15"`
	Address1   string `json:"address1"   validate:"max=255"`
	Address2   string `json:"address2"   validate:"max=255"`
	City       string `json:"city"       validate:"max=100"`
	State      string `json:"state"      validate:"max=100"`
	PostalCode string `json:"postalCode" validate:"max=20"`
	Country    string `json:"country"    validate:"max=100"`
}

// Missing lists the required billing fields left blank, in a fixed order.
func (b *BillingRequest) Missing() []string {
	if b == nil {
		b = &BillingRequest{}
	}

	required := []struct {
		name  string
		value string
	}{
		{"fullName", b.FullName},
		{"email", b.Email},
		{"phone", b.Phone},
		{"address1", b.Address1},
		{"city", b.City},
		{"state", b.State},
		{"postalCode", b.PostalCode},
		{"country", b.Country},
	}

	var missing []string

	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}

	return missing
}

func (b *BillingRequest) toModel() model.Billing {
	country := strings.TrimSpace(b.Country)
	if country == "" {
		country = model.DefaultCountry
	}

	return model.Billing{
		FullName:   b.FullName,
		Email:      b.Email,
		Phone:      b.Phone,
		GSTIN:      optional(b.GSTIN),
		Address1:   b.Address1,
		Address2:   optional(b.Address2),
		City:       b.City,
		State:      b.State,
		PostalCode: b.PostalCode,
		Country:    country,
	}
}

// Hours is duration_hours as sent by a client, either a JSON number or a
// numeric string. The raw value is kept so that a bad value is reported
// when the booking is validated rather than when the body is decoded.
type Hours struct {
	raw    string
	number bool
}

func (h *Hours) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		h.raw = strings.TrimSpace(text)

		return nil
	}

	h.raw = string(data)
	h.number = true

	return nil
}

func (h Hours) MarshalJSON() ([]byte, error) {
	if h.number {
		return []byte(h.raw), nil
	}

	return json.Marshal(h.raw)
}

// Int returns the value as a whole number. Numbers with a fractional part,
// non-numeric strings and other JSON types are rejected.
func (h Hours) Int() (int, error) {
	if value, err := strconv.Atoi(h.raw); err == nil {
		return value, nil
	}

	if h.number {
		value, err := strconv.ParseFloat(h.raw, 64)
		if err == nil && value == math.Trunc(value) && math.Abs(value) <= math.MaxInt32 {
			return int(value), nil
		}
	}

	return 0, fmt.Errorf("duration_hours %s is not an integer", h.raw)
}

// CreateBookingRequest is the body of POST /api/bookings. Pointer fields are
// nil when the client left them out.
type CreateBookingRequest struct {
	RoomID        *string         `json:"room_id"        validate:"omitempty,max=255"`
	BookingMode   string          `json:"booking_mode"`
	CheckInDate   *string         `json:"check_in_date"`
	CheckOutDate  *string         `json:"check_out_date"`
	StartTime     *string         `json:"start_time"`
	DurationHours *Hours          `json:"duration_hours"`
	Status        *string         `json:"status"         validate:"omitempty,max=40"`
	Billing       *BillingRequest `json:"billing"`
}

// MissingFields lists room_id and the temporal fields required by the
// booking mode that are absent from the request.
func (c *CreateBookingRequest) MissingFields() []string {
	var missing []string

	if c.RoomID == nil {
		missing = append(missing, model.FieldRoomID)
	}

	if c.BookingMode == model.ModeHourly {
		if c.StartTime == nil {
			missing = append(missing, model.FieldStartTime)
		}

		if c.DurationHours == nil {
			missing = append(missing, model.FieldDurationHours)
		}

		return missing
	}

	if c.CheckInDate == nil {
		missing = append(missing, model.FieldCheckInDate)
	}

	if c.CheckOutDate == nil {
		missing = append(missing, model.FieldCheckOutDate)
	}

	return missing
}

// Schedule holds the parsed temporal fields of one booking mode.
type Schedule struct {
	CheckIn       *time.Time
	CheckOut      *time.Time
	StartTime     *model.Clock
	DurationHours *int
}

func (c *CreateBookingRequest) ToModel(customerID string, schedule Schedule, now time.Time) model.Booking {
	status := model.StatusPending
	if c.Status != nil && strings.TrimSpace(*c.Status) != "" {
		status = *c.Status
	}

	booking := model.Booking{
		ID:          uuid.NewString(),
		CustomerID:  customerID,
		RoomID:      *c.RoomID,
		BookingMode: c.BookingMode,
		BookingDate: now,
		Status:      status,
		Billing:     c.Billing.toModel(),
	}

	if c.BookingMode == model.ModeDaily {
		booking.CheckInDate = schedule.CheckIn
		booking.CheckOutDate = schedule.CheckOut
	} else {
		booking.StartTime = schedule.StartTime
		booking.DurationHours = schedule.DurationHours
	}

	booking.Stamp(now, customerID)

	return booking
}

// UpdateBookingRequest is the body of PUT /api/bookings/{id}. Only the
// fields present in the body are changed.
type UpdateBookingRequest struct {
	Status        *string `json:"status"         validate:"omitempty,max=40"`
	CheckInDate   *string `json:"check_in_date"`
	CheckOutDate  *string `json:"check_out_date"`
	StartTime     *string `json:"start_time"`
	DurationHours *Hours  `json:"duration_hours"`
}

// Fields lists the columns the request touches.
func (u *UpdateBookingRequest) Fields() []string {
	var fields []string

	present := []struct {
		name string
		set  bool
	}{
		{model.FieldStatus, u.Status != nil},
		{model.FieldCheckInDate, u.CheckInDate != nil},
		{model.FieldCheckOutDate, u.CheckOutDate != nil},
		{model.FieldStartTime, u.StartTime != nil},
		{model.FieldDurationHours, u.DurationHours != nil},
	}

	for _, field := range present {
		if field.set {
			fields = append(fields, field.name)
		}
	}

	return fields
}

// ChangesStay reports whether either daily date is part of the update.
func (u *UpdateBookingRequest) ChangesStay() bool {
	return u.CheckInDate != nil || u.CheckOutDate != nil
}

// ChangesSlot reports whether the hourly start time or duration is part of the update.
func (u *UpdateBookingRequest) ChangesSlot() bool {
	return u.StartTime != nil || u.DurationHours != nil
}

type BillingResponse struct {
	FullName   string  `json:"fullName"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	GSTIN      *string `json:"gstin"`
	Address1   string  `json:"address1"`
	Address2   *string `json:"address2"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	PostalCode string  `json:"postalCode"`
	Country    string  `json:"country"`
}

// BookingResponse is the public representation of a booking. The room_*
// fields are present only when the room directory answered the lookup.
type BookingResponse struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id"`
	RoomID        string          `json:"room_id"`
	BookingMode   string          `json:"booking_mode"`
	CheckInDate   *string         `json:"check_in_date"`
	CheckOutDate  *string         `json:"check_out_date"`
	BookingDate   string          `json:"booking_date"`
	StartTime     *string         `json:"start_time"`
	DurationHours *int            `json:"duration_hours"`
	Status        string          `json:"status"`
	Billing       BillingResponse `json:"billing"`
	RoomName      *string         `json:"room_name,omitempty"`
	RoomType      *string         `json:"room_type,omitempty"`
	RoomMainImage *string         `json:"room_main_image,omitempty"`

	// Degraded is set when the room directory could not be reached.
	Degraded bool `json:"-"`
}

func (r *BookingResponse) FromModel(booking model.Booking) {
	r.ID = booking.ID
	r.CustomerID = booking.CustomerID
	r.RoomID = booking.RoomID
	r.BookingMode = booking.BookingMode
	r.CheckInDate = formatDate(booking.CheckInDate)
	r.CheckOutDate = formatDate(booking.CheckOutDate)
	r.BookingDate = timezone.FormatDate(booking.BookingDate)
	r.DurationHours = booking.DurationHours
	r.Status = booking.Status

	if booking.StartTime != nil {
		clock := booking.StartTime.String()
		r.StartTime = &clock
	}

	r.Billing = BillingResponse{
		FullName:   booking.FullName,
		Email:      booking.Email,
		Phone:      booking.Phone,
		GSTIN:      booking.GSTIN,
		Address1:   booking.Address1,
		Address2:   booking.Address2,
		City:       booking.City,
		State:      booking.State,
		PostalCode: booking.PostalCode,
		Country:    booking.Country,
	}
}

// Enrich copies the room's display fields into the response.
func (r *BookingResponse) Enrich(room model.Room) {
	r.RoomName = &room.Name
	r.RoomType = &room.RoomType
	r.RoomMainImage = &room.MainImage
}

// FromModels converts a page of bookings.
func FromModels(bookings []model.Booking) []BookingResponse {
	res := make([]BookingResponse, len(bookings))
	for i, booking := range bookings {
		res[i].FromModel(booking)
	}

	return res
}

// AnyDegraded reports whether at least one booking could not be enriched
// because the room directory was unavailable.
func AnyDegraded(bookings ...BookingResponse) bool {
	for _, booking := range bookings {
		if booking.Degraded {
			return true
		}
	}

	return false
}

func formatDate(day *time.Time) *string {
	if day == nil {
		return nil
	}

	formatted := timezone.FormatDate(*day)

	return &formatted
}

func optional(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	return &value
}
