package entity

import (
	"gorm.io/gorm"
)

type Option struct {
	gorm.Model
	GroupID    uint   `json:"groupId"`
	Name       string `json:"name" gorm:"size:200"`
	PriceDelta int64  `json:"priceDelta"`
}
