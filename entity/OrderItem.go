package entity

import (
	"gorm.io/gorm"
)

// OrderItem is frozen at submission: Name carries the chosen option
// suffixes, Price is the base per-unit price without option deltas.
// Only staff item edits may change Qty afterwards.
type OrderItem struct {
	gorm.Model
	OrderID uint   `json:"orderId" gorm:"index"`
	DishID  uint   `json:"dishId"`
	Name    string `json:"name" gorm:"size:300"`
	Price   int64  `json:"price"`
	Qty     int    `json:"qty"`

	ChosenOptions string `json:"-" gorm:"type:text;default:'[]'"`
}

func (it *OrderItem) ChosenOptionIDs() []uint {
	return decodeOptionIDs(it.ChosenOptions)
}

func (it *OrderItem) SetChosenOptionIDs(ids []uint) {
	it.ChosenOptions = encodeOptionIDs(ids)
}
