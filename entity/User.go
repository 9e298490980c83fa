package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser       = "user"
	RoleRestaurant = "restaurant"
	RoleAdmin      = "admin"
)

type User struct {
	gorm.Model
	Username     string `json:"username" gorm:"size:64;uniqueIndex"`
	PasswordHash string `json:"-"`
	Role         string `json:"role" gorm:"size:16;default:user"`

	Name      string `json:"name" gorm:"size:128"`
	Phone     string `json:"phone" gorm:"size:64"`
	Address   string `json:"address" gorm:"size:256"`
	BirthDate string `json:"birthDate" gorm:"size:16"` // ISO YYYY-MM-DD

	IsBlocked    bool      `json:"isBlocked"`
	LastActivity time.Time `json:"lastActivity"`
}
