package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	OrderStatusSent      = "sent"
	OrderStatusAccepted  = "accepted"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
	// Modified is a transient marker, not a lifecycle endpoint: accept,
	// cancel, deliver and further modifications stay legal afterwards.
	OrderStatusModified = "modified"
)

const (
	DeliveryTypeDelivery = "delivery"
	DeliveryTypePickup   = "pickup"
)

const (
	PaymentCash          = "cash"
	PaymentCardToCourier = "card_to_courier"
	PaymentTransfer      = "transfer"
)

// OrderTerminal reports whether no further transitions are allowed.
func OrderTerminal(status string) bool {
	return status == OrderStatusDelivered || status == OrderStatusCancelled
}

type Order struct {
	gorm.Model
	UserID       uint `json:"userId"`
	User         User `json:"-"`
	RestaurantID uint `json:"restaurantId" gorm:"index"`

	Status     string `json:"status" gorm:"size:32;default:sent"`
	TotalPrice int64  `json:"totalPrice"`

	DeliveryType  string `json:"deliveryType" gorm:"size:16;default:delivery"`
	Address       string `json:"address" gorm:"size:256"`
	Phone         string `json:"phone" gorm:"size:64"`
	PaymentMethod string `json:"paymentMethod" gorm:"size:32;default:cash"`

	ClientComment string `json:"clientComment" gorm:"type:text"`
	StaffComment  string `json:"staffComment" gorm:"type:text"`

	AcceptedAt *time.Time `json:"acceptedAt"`
	EtaMinutes int        `json:"etaMinutes"`

	Items []OrderItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
