package dto_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/shared/validator"
)

func TestCreateRoomRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "valid", body: `{"name":"Deluxe","room_type":"suite","price_per_day":120}`},
		{name: "missing price", body: `{"name":"Deluxe","room_type":"suite"}`, wantMsg: "price_per_day is required"},
		{name: "free room", body: `{"name":"Staff","room_type":"single","price_per_day":0}`},
		{name: "blank name", body: `{"name":" ","room_type":"suite","price_per_day":1}`, wantMsg: "name is required"},
		{name: "negative hourly price", body: `{"name":"Deluxe","room_type":"suite","price_per_day":1,"price_per_hour":-1}`, wantMsg: "price_per_hour must be greater than or equal to 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.CreateRoomRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)
			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestCreateRoomRequest_ToModel(t *testing.T) {
	price := 99.5
	req := dto.CreateRoomRequest{Name: "Deluxe", RoomType: "suite", PricePerDay: &price}
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	room := req.ToModel("admin-1", now)

	assert.NotEmpty(t, room.ID)
	assert.Equal(t, 99.5, room.PricePerDay)
	assert.Equal(t, "admin-1", room.CreatedBy)
	assert.Equal(t, now, room.ModifiedAt)
}

func TestUpdateRoomRequest_Apply(t *testing.T) {
	var req dto.UpdateRoomRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Royal","secondary_images":["/uploads/b.png"]}`), &req))

	room := model.Room{ID: "r-1", Name: "Deluxe", RoomType: "suite", PricePerDay: 100}
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	changes := req.Apply(&room, "admin-1", now)

	assert.Equal(t, "Royal", room.Name)
	assert.Equal(t, "suite", room.RoomType)
	assert.Equal(t, model.StringList{"/uploads/b.png"}, room.SecondaryImages)
	assert.Equal(t, map[string]any{
		"name":             "Royal",
		"secondary_images": model.StringList{"/uploads/b.png"},
		"modified_at":      now,
		"modified_by":      "admin-1",
	}, changes)

	empty := dto.UpdateRoomRequest{}
	assert.Empty(t, empty.Apply(&room, "admin-1", now))
}

func TestRoomResponse_JSON(t *testing.T) {
	var res dto.RoomResponse
	res.FromModel(model.Room{ID: "r-1", Name: "Deluxe", RoomType: "suite"})

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.Equal(t, []any{}, body["secondary_images"])
	assert.Equal(t, "suite", body["room_type"])
	assert.Contains(t, body, "main_image")
}
