package entity

import (
	"encoding/json"

	"gorm.io/gorm"
)

type CartItem struct {
	gorm.Model
	CartID       uint `json:"cartId"`
	RestaurantID uint `json:"restaurantId"`
	DishID       uint `json:"dishId"`
	Qty          int  `json:"qty"`

	// chosen option ids as a JSON array, same encoding as OrderItem
	ChosenOptions string `json:"-" gorm:"type:text;default:'[]'"`
}

func (it *CartItem) ChosenOptionIDs() []uint {
	return decodeOptionIDs(it.ChosenOptions)
}

func (it *CartItem) SetChosenOptionIDs(ids []uint) {
	it.ChosenOptions = encodeOptionIDs(ids)
}

func decodeOptionIDs(raw string) []uint {
	if raw == "" {
		return []uint{}
	}
	var ids []uint
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return []uint{}
	}
	return ids
}

func encodeOptionIDs(ids []uint) string {
	if ids == nil {
		ids = []uint{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "[]"
	}
	return string(b)
}
