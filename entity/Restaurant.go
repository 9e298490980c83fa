package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name        string  `json:"name" gorm:"size:200"`
	IsEnabled   bool    `json:"isEnabled" gorm:"default:true"`
	RatingAgg   float64 `json:"ratingAgg"`
	Address     string  `json:"address" gorm:"size:256"`
	Phone       string  `json:"phone" gorm:"size:64"`
	Email       string  `json:"email" gorm:"size:128"`
	Description string  `json:"description" gorm:"type:text"`

	DeliveryMinSum      int64 `json:"deliveryMinSum"`
	DeliveryFee         int64 `json:"deliveryFee"`
	DeliveryTimeMinutes int   `json:"deliveryTimeMinutes" gorm:"default:60"`

	// working hours as minutes from midnight
	WorkOpenMin  int `json:"workOpenMin" gorm:"default:0"`
	WorkCloseMin int `json:"workCloseMin" gorm:"default:1440"`

	Categories []Category `json:"-"`
	Dishes     []Dish     `json:"-"`
	Orders     []Order    `json:"-"`
}
