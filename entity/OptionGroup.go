package entity

import (
	"gorm.io/gorm"
)

// OptionGroup bounds how many options of one dish facet may be chosen
// (e.g. size: exactly one). MaxSelect == 0 means unbounded.
type OptionGroup struct {
	gorm.Model
	DishID    uint   `json:"dishId"`
	Name      string `json:"name" gorm:"size:200"`
	MinSelect int    `json:"minSelect"`
	MaxSelect int    `json:"maxSelect" gorm:"default:1"`
	Required  bool   `json:"required"`

	Options []Option `json:"options" gorm:"foreignKey:GroupID"`
}
