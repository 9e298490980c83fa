package entity

import (
	"gorm.io/gorm"
)

type Review struct {
	gorm.Model
	OrderID      uint   `json:"orderId" gorm:"index"`
	RestaurantID uint   `json:"restaurantId" gorm:"index"`
	UserID       uint   `json:"userId"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment" gorm:"type:text"`
	IsDeleted    bool   `json:"-"`
}
