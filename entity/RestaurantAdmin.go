package entity

// RestaurantAdmin links an operator account to the single restaurant it
// manages. Lookup is one-way (user -> restaurant); orders never hold a
// back-reference to the admin set.
type RestaurantAdmin struct {
	UserID       uint `json:"userId" gorm:"primaryKey"`
	RestaurantID uint `json:"restaurantId"`
}
