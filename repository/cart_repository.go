package repository

import (
	"errors"

	"github.com/Bespalov-Gleb/Food-bot/entity"
	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// GetCartWithItems returns the user's cart, an empty one if none exists
// yet (carts are created lazily on first write).
func (r *CartRepository) GetCartWithItems(userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where("user_id = ?", userID).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id ASC") }).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &entity.Cart{UserID: userID, Items: []entity.CartItem{}}, nil
	}
	return &c, err
}

func (r *CartRepository) GetOrCreateCart(tx *gorm.DB, userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := tx.Where("user_id = ?", userID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = entity.Cart{UserID: userID}
		if err := tx.Create(&c).Error; err != nil {
			return nil, err
		}
		return &c, nil
	}
	return &c, err
}

func (r *CartRepository) ListItems(tx *gorm.DB, cartID uint) ([]entity.CartItem, error) {
	var items []entity.CartItem
	err := tx.Where("cart_id = ?", cartID).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *CartRepository) CreateItem(tx *gorm.DB, item *entity.CartItem) error {
	return tx.Create(item).Error
}

// DeleteOtherRestaurants is the force-eviction half of the cap rule:
// every item not belonging to keepRestaurantID goes, atomically with the
// caller's insert.
func (r *CartRepository) DeleteOtherRestaurants(tx *gorm.DB, cartID, keepRestaurantID uint) error {
	return tx.Where("cart_id = ? AND restaurant_id <> ?", cartID, keepRestaurantID).
		Delete(&entity.CartItem{}).Error
}

// UpdateQty stores qty verbatim; bounds are enforced at checkout, not here.
func (r *CartRepository) UpdateQty(tx *gorm.DB, userID, itemID uint, qty int) (int64, error) {
	res := tx.Model(&entity.CartItem{}).
		Where("id = ? AND cart_id IN (SELECT id FROM carts WHERE user_id = ?)", itemID, userID).
		Update("qty", qty)
	return res.RowsAffected, res.Error
}

func (r *CartRepository) RemoveItem(tx *gorm.DB, userID, itemID uint) (int64, error) {
	res := tx.Where("id = ? AND cart_id IN (SELECT id FROM carts WHERE user_id = ?)", itemID, userID).
		Delete(&entity.CartItem{})
	return res.RowsAffected, res.Error
}

// Clear removes all items, or only one restaurant's items when
// restaurantID is non-nil. Clearing an absent or empty cart succeeds.
func (r *CartRepository) Clear(tx *gorm.DB, userID uint, restaurantID *uint) error {
	var c entity.Cart
	if err := tx.Where("user_id = ?", userID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	q := tx.Where("cart_id = ?", c.ID)
	if restaurantID != nil {
		q = q.Where("restaurant_id = ?", *restaurantID)
	}
	return q.Delete(&entity.CartItem{}).Error
}

func (r *CartRepository) SetCutlery(tx *gorm.DB, cartID uint, count int) error {
	return tx.Model(&entity.Cart{}).Where("id = ?", cartID).
		Update("cutlery_count", count).Error
}
