package dto_test

import (
	"encoding/json"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHours_Int(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: `3`, want: 3},
		{raw: `"3"`, want: 3},
		{raw: `" 12 "`, want: 12},
		{raw: `4.0`, want: 4},
		{raw: `2.5`, wantErr: true},
		{raw: `"2.5"`, wantErr: true},
		{raw: `"three"`, wantErr: true},
		{raw: `true`, wantErr: true},
		{raw: `[1]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var hours dto.Hours
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &hours))

			got, err := hours.Int()
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateBookingRequest_NullIsMissing(t *testing.T) {
	var req dto.CreateBookingRequest
	require.NoError(t, json.Unmarshal([]byte(`{"booking_mode":"daily","room_id":null,"check_in_date":"2024-01-10"}`), &req))

	assert.Equal(t, []string{model.FieldRoomID, model.FieldCheckOutDate}, req.MissingFields())
}

func TestUpdateBookingRequest_Fields(t *testing.T) {
	var req dto.UpdateBookingRequest
	require.NoError(t, json.Unmarshal([]byte(`{"duration_hours":2,"status":"confirmed"}`), &req))

	assert.Equal(t, []string{model.FieldStatus, model.FieldDurationHours}, req.Fields())
	assert.True(t, req.ChangesSlot())
	assert.False(t, req.ChangesStay())
}

func TestBookingResponse_JSONShape(t *testing.T) {
	checkIn := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	var res dto.BookingResponse
	res.FromModel(model.Booking{
		ID:           "b1",
		CustomerID:   "c1",
		RoomID:       "r1",
		BookingMode:  model.ModeDaily,
		CheckInDate:  &checkIn,
		CheckOutDate: &checkOut,
		BookingDate:  checkIn,
		Status:       model.StatusPending,
		Billing:      model.Billing{FullName: "A", Country: "India"},
	})

	body, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))

	assert.Equal(t, "2024-01-10", decoded["check_in_date"])
	assert.Equal(t, "2024-01-15", decoded["check_out_date"])
	assert.Nil(t, decoded["start_time"])
	assert.Nil(t, decoded["duration_hours"])
	assert.Contains(t, decoded, "start_time")
	assert.NotContains(t, decoded, "room_name")
	assert.NotContains(t, decoded, "Degraded")

	billing, ok := decoded["billing"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "A", billing["fullName"])
	assert.Nil(t, billing["gstin"])

	res.Enrich(model.Room{Name: "Deluxe", RoomType: "suite", MainImage: "/uploads/a.png"})

	body, err = json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"room_name":"Deluxe"`)
	assert.Contains(t, string(body), `"room_main_image":"/uploads/a.png"`)
}
