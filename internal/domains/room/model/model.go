package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"hotel/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID              = "id"
	FieldName            = "name"
	FieldRoomType        = "room_type"
	FieldDescription     = "description"
	FieldPricePerDay     = "price_per_day"
	FieldPricePerHour    = "price_per_hour"
	FieldMainImage       = "main_image"
	FieldSecondaryImages = "secondary_images"
)

type Room struct {
	ID              string     `db:"id"`
	Name            string     `db:"name"`
	RoomType        string     `db:"room_type"`
	Description     string     `db:"description"`
	PricePerDay     float64    `db:"price_per_day"`
	PricePerHour    float64    `db:"price_per_hour"`
	MainImage       string     `db:"main_image"`
	SecondaryImages StringList `db:"secondary_images"`
	model.Metadata
}

// StringList is a list of strings kept in a JSONB column. A nil list is
// stored as an empty array.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}

	raw, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("failed to encode string list: %w", err)
	}

	return raw, nil
}

func (l *StringList) Scan(src any) error {
	var raw []byte

	switch value := src.(type) {
	case nil:
		*l = StringList{}

		return nil
	case []byte:
		raw = value
	case string:
		raw = []byte(value)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}

	list := []string{}
	if err := json.Unmarshal(raw, &list); err != nil {
		return fmt.Errorf("failed to decode string list: %w", err)
	}

	*l = list

	return nil
}
