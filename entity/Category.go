package entity

import (
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	RestaurantID uint   `json:"restaurantId"`
	Name         string `json:"name" gorm:"size:200"`
	Sort         int    `json:"sort"`

	Dishes []Dish `json:"-"`
}
