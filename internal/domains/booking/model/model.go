package model

import (
	"database/sql/driver"
	"fmt"
	"hotel/shared/constant"
	"hotel/shared/model"
	"hotel/shared/timezone"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldCustomerID    = "customer_id"
	FieldRoomID        = "room_id"
	FieldBookingMode   = "booking_mode"
	FieldCheckInDate   = "check_in_date"
	FieldCheckOutDate  = "check_out_date"
	FieldBookingDate   = "booking_date"
	FieldStartTime     = "start_time"
	FieldDurationHours = "duration_hours"
	FieldStatus        = "status"
)

const (
	ModeDaily  = "daily"
	ModeHourly = "hourly"
)

const (
	StatusPending               = "pending"
	StatusCancellationRequested = "cancellation_requested"
)

const DefaultCountry = "India"

// Booking is a reservation of one room. Daily bookings carry the check-in and
// check-out dates, hourly bookings carry start time and duration. The other
// pair is always NULL.
type Booking struct {
	ID            string     `db:"id"`
	CustomerID    string     `db:"customer_id"`
	RoomID        string     `db:"room_id"`
	BookingMode   string     `db:"booking_mode"`
	CheckInDate   *time.Time `db:"check_in_date"`
	CheckOutDate  *time.Time `db:"check_out_date"`
	BookingDate   time.Time  `db:"booking_date"`
	StartTime     *Clock     `db:"start_time"`
	DurationHours *int       `db:"duration_hours"`
	Status        string     `db:"status"`
	Billing
	model.Metadata
}

type Billing struct {
	FullName   string  `db:"bill_full_name"`
	Email      string  `db:"bill_email"`
	Phone      string  `db:"bill_phone"`
	GSTIN      *string `db:"bill_gstin"`
	Address1   string  `db:"bill_address1"`
	Address2   *string `db:"bill_address2"`
	City       string  `db:"bill_city"`
	State      string  `db:"bill_state"`
	PostalCode string  `db:"bill_postal_code"`
	Country    string  `db:"bill_country"`
}

// IsDaily reports whether the booking reserves whole days.
func (b Booking) IsDaily() bool {
	return b.BookingMode == ModeDaily
}

// Clock is a wall-clock time of day stored in a TIME column as HH:MM.
type Clock string

func (c Clock) String() string {
	return string(c)
}

// Value implements driver.Valuer.
func (c Clock) Value() (driver.Value, error) {
	return string(c), nil
}

// Scan implements sql.Scanner. The postgres driver hands TIME columns over as
// time.Time on day zero, other drivers as text.
func (c *Clock) Scan(src any) error {
	switch value := src.(type) {
	case time.Time:
		*c = Clock(value.Format(constant.ClockFormat))
	case []byte:
		return c.parse(string(value))
	case string:
		return c.parse(value)
	default:
		return fmt.Errorf("unsupported type %T for clock", src)
	}

	return nil
}

func (c *Clock) parse(value string) error {
	clock, err := timezone.ParseClock(value)
	if err != nil {
		return err
	}

	*c = Clock(clock)

	return nil
}

// Room is the part of a room directory entry shown next to a booking.
type Room struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	RoomType  string `json:"room_type"`
	MainImage string `json:"main_image"`
}
