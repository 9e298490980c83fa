package entity

import (
	"gorm.io/gorm"
)

// Cart is created lazily on first access and never deleted, only emptied.
type Cart struct {
	gorm.Model
	UserID       uint `json:"userId" gorm:"uniqueIndex"`
	User         User `json:"-"`
	CutleryCount int  `json:"cutleryCount"`

	Items []CartItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
