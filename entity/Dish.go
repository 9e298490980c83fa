package entity

import (
	"gorm.io/gorm"
)

type Dish struct {
	gorm.Model
	RestaurantID uint   `json:"restaurantId"`
	CategoryID   uint   `json:"categoryId"`
	Name         string `json:"name" gorm:"size:200"`
	Description  string `json:"description" gorm:"type:text"`
	Price        int64  `json:"price"`
	Image        string `json:"image" gorm:"type:text"`
	IsAvailable  bool   `json:"isAvailable" gorm:"default:true"`
	HasOptions   bool   `json:"hasOptions"`

	OptionGroups []OptionGroup `json:"-"`
}
