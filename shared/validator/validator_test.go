package validator_test

import (
	"hotel/shared/failure"
	"hotel/shared/validator"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roomRequest struct {
	Name        string  `json:"name"          validate:"notblank"`
	RoomType    string  `json:"room_type"     validate:"required"`
	PricePerDay float64 `json:"price_per_day" validate:"gte=0"`
	Email       string  `json:"email"         validate:"omitempty,email"`
}

type uploadRequest struct {
	Image multipart.FileHeader `form:"image" validate:"fileext=png jpg jpeg gif,maxfilesize=5"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "valid", body: `{"name":"Deluxe","room_type":"suite","price_per_day":120}`},
		{name: "blank name uses json field", body: `{"name":"   ","room_type":"suite"}`, wantMsg: "name is required"},
		{name: "missing room type", body: `{"name":"Deluxe"}`, wantMsg: "room_type is required"},
		{name: "negative price", body: `{"name":"Deluxe","room_type":"suite","price_per_day":-1}`, wantMsg: "price_per_day must be greater than or equal to 0"},
		{name: "bad email", body: `{"name":"Deluxe","room_type":"suite","email":"nope"}`, wantMsg: "email must be a valid email address"},
		{name: "malformed json", body: `{"name":`, wantMsg: "failed to decode request body"},
		{name: "empty body", body: ``, wantMsg: "request body is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req roomRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)
			if tt.wantMsg == "" {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

type billingRequest struct {
	Phone string `json:"phone"`
}

type bookingRequest struct {
	RoomID  *string         `json:"room_id"`
	Billing *billingRequest `json:"billing"`
}

func TestDecode_TypeMismatchNamesJSONField(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "top level field", body: `{"room_id":123}`, wantMsg: "failed to decode request body: invalid value for room_id: unexpected JSON number"},
		{name: "nested field", body: `{"billing":{"phone":5551234}}`, wantMsg: "failed to decode request body: invalid value for billing.phone: unexpected JSON number"},
		{name: "body is not an object", body: `["room"]`, wantMsg: "failed to decode request body: unexpected JSON array"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req bookingRequest

			err := validator.Decode(strings.NewReader(tt.body), &req)

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Equal(t, tt.wantMsg, failure.GetMessage(err))
			assert.NotContains(t, err.Error(), "Go struct field")
			assert.NotContains(t, err.Error(), "bookingRequest")
		})
	}
}

func TestDecode_DoesNotValidate(t *testing.T) {
	var req roomRequest

	require.NoError(t, validator.Decode(strings.NewReader(`{"price_per_day":-5}`), &req))
	assert.Equal(t, -5.0, req.PricePerDay)
}

func TestFileValidation(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		wantErr  bool
	}{
		{name: "png", filename: "room.png", size: 1024},
		{name: "upper case jpeg", filename: "ROOM.JPEG", size: 1024},
		{name: "gif at limit", filename: "a.gif", size: 5 * 1024 * 1024},
		{name: "too large", filename: "a.jpg", size: 5*1024*1024 + 1, wantErr: true},
		{name: "disallowed extension", filename: "shell.php", size: 10, wantErr: true},
		{name: "no extension", filename: "image", size: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := uploadRequest{Image: multipart.FileHeader{Filename: tt.filename, Size: tt.size}}

			err := validator.ValidateStruct(&req)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("guest@example.com", "required,email"))
	assert.Error(t, validator.ValidateVar("", "required"))
	assert.Error(t, validator.ValidateVar("photo.bmp", "fileext=png jpg"))
}
