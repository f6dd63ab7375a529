package dto

import (
	"hotel/internal/domains/room/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"time"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Name            string   `json:"name"                       validate:"notblank,max=120"`
	RoomType        string   `json:"room_type"                  validate:"notblank,max=50"`
	Description     string   `json:"description"`
	PricePerDay     *float64 `json:"price_per_day"              validate:"required,gte=0"`
	PricePerHour    float64  `json:"price_per_hour"             validate:"gte=0"`
	MainImage       string   `json:"main_image"                 validate:"max=250"`
	SecondaryImages []string `json:"secondary_images,omitempty"`
}

func (c *CreateRoomRequest) ToModel(actor string, now time.Time) model.Room {
	room := model.Room{
		ID:              uuid.NewString(),
		Name:            c.Name,
		RoomType:        c.RoomType,
		Description:     c.Description,
		PricePerDay:     *c.PricePerDay,
		PricePerHour:    c.PricePerHour,
		MainImage:       c.MainImage,
		SecondaryImages: model.StringList(c.SecondaryImages),
	}
	room.Stamp(now, actor)

	return room
}

// UpdateRoomRequest changes only the fields present in the body.
type UpdateRoomRequest struct {
	Name            *string   `json:"name"             validate:"omitempty,notblank,max=120"`
	RoomType        *string   `json:"room_type"        validate:"omitempty,notblank,max=50"`
	Description     *string   `json:"description"`
	PricePerDay     *float64  `json:"price_per_day"    validate:"omitempty,gte=0"`
	PricePerHour    *float64  `json:"price_per_hour"   validate:"omitempty,gte=0"`
	MainImage       *string   `json:"main_image"       validate:"omitempty,max=250"`
	SecondaryImages *[]string `json:"secondary_images"`
}

// Apply copies the present fields onto room and returns them as column
// changes, audit columns included. The map is empty when nothing was sent.
func (u *UpdateRoomRequest) Apply(room *model.Room, actor string, now time.Time) map[string]any {
	changes := map[string]any{}

	set := func(column string, value any) {
		changes[column] = value
	}

	if u.Name != nil {
		room.Name = *u.Name
		set(model.FieldName, room.Name)
	}

	if u.RoomType != nil {
		room.RoomType = *u.RoomType
		set(model.FieldRoomType, room.RoomType)
	}

	if u.Description != nil {
		room.Description = *u.Description
		set(model.FieldDescription, room.Description)
	}

	if u.PricePerDay != nil {
		room.PricePerDay = *u.PricePerDay
		set(model.FieldPricePerDay, room.PricePerDay)
	}

	if u.PricePerHour != nil {
		room.PricePerHour = *u.PricePerHour
		set(model.FieldPricePerHour, room.PricePerHour)
	}

	if u.MainImage != nil {
		room.MainImage = *u.MainImage
		set(model.FieldMainImage, room.MainImage)
	}

	if u.SecondaryImages != nil {
		room.SecondaryImages = model.StringList(*u.SecondaryImages)
		set(model.FieldSecondaryImages, room.SecondaryImages)
	}

	if len(changes) == 0 {
		return changes
	}

	room.ModifiedAt = now
	room.ModifiedBy = actor
	set(constant.FieldModifiedAt, now)
	set(constant.FieldModifiedBy, actor)

	return changes
}

type RoomResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	RoomType        string   `json:"room_type"`
	Description     string   `json:"description"`
	PricePerDay     float64  `json:"price_per_day"`
	PricePerHour    float64  `json:"price_per_hour"`
	MainImage       string   `json:"main_image"`
	SecondaryImages []string `json:"secondary_images"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(m model.Room) {
	r.ID = m.ID
	r.Name = m.Name
	r.RoomType = m.RoomType
	r.Description = m.Description
	r.PricePerDay = m.PricePerDay
	r.PricePerHour = m.PricePerHour
	r.MainImage = m.MainImage

	r.SecondaryImages = []string{}
	if m.SecondaryImages != nil {
		r.SecondaryImages = append(r.SecondaryImages, m.SecondaryImages...)
	}

	r.Metadata.FromModel(m.Metadata)
}

func FromModels(models []model.Room) []RoomResponse {
	res := make([]RoomResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res
}

type UploadResponse struct {
	URL string `json:"url"`
}
