package services

import (
	"errors"
	"fmt"

	"github.com/Bespalov-Gleb/Food-bot/entity"
	"github.com/Bespalov-Gleb/Food-bot/repository"
	"gorm.io/gorm"
)

// CartService owns the mutable per-user cart. Every check-then-act
// sequence (the restaurant cap, force eviction) runs inside one
// transaction so concurrent adds from the same user cannot defeat the cap
// against a stale read.
type CartService struct {
	DB             *gorm.DB
	Carts          *repository.CartRepository
	Catalog        *repository.CatalogRepository
	MaxRestaurants int
}

func NewCartService(db *gorm.DB, carts *repository.CartRepository, catalog *repository.CatalogRepository, maxRestaurants int) *CartService {
	if maxRestaurants <= 0 {
		maxRestaurants = 4
	}
	return &CartService{DB: db, Carts: carts, Catalog: catalog, MaxRestaurants: maxRestaurants}
}

type AddToCartIn struct {
	RestaurantID    uint   `json:"restaurantId" binding:"required"`
	DishID          uint   `json:"dishId" binding:"required"`
	Qty             int    `json:"qty"`
	ChosenOptionIDs []uint `json:"chosenOptions"`
}

func (s *CartService) Get(userID uint) (*entity.Cart, error) {
	return s.Carts.GetCartWithItems(userID)
}

// Add validates the line against the catalog and inserts it, enforcing
// the distinct-restaurant cap. force=true evicts all other restaurants'
// items atomically with the insert.
func (s *CartService) Add(userID uint, in *AddToCartIn, force bool) (uint, error) {
	if in.Qty <= 0 {
		in.Qty = 1
	}

	var itemID uint
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		c, err := s.Carts.GetOrCreateCart(tx, userID)
		if err != nil {
			return err
		}
		items, err := s.Carts.ListItems(tx, c.ID)
		if err != nil {
			return err
		}

		existing := make(map[uint]bool, len(items))
		for _, it := range items {
			existing[it.RestaurantID] = true
		}
		if !existing[in.RestaurantID] && len(existing) >= s.MaxRestaurants {
			if !force {
				ids := make([]uint, 0, len(existing))
				for id := range existing {
					ids = append(ids, id)
				}
				return &TooManyRestaurantsError{CurrentRestaurantIDs: ids, Max: s.MaxRestaurants}
			}
			if err := s.Carts.DeleteOtherRestaurants(tx, c.ID, in.RestaurantID); err != nil {
				return err
			}
		}

		snap, err := loadSnapshot(tx, s.Catalog, []uint{in.DishID})
		if err != nil {
			return err
		}
		dish, ok := snap.Dishes[in.DishID]
		if !ok {
			return fmt.Errorf("dish %d: %w", in.DishID, ErrNotFound)
		}
		if dish.RestaurantID != in.RestaurantID {
			return fmt.Errorf("dish %d not in restaurant %d: %w", in.DishID, in.RestaurantID, ErrNotFound)
		}
		if err := ValidateCartSelection(in.DishID, in.ChosenOptionIDs, snap); err != nil {
			return err
		}

		item := entity.CartItem{
			CartID:       c.ID,
			RestaurantID: in.RestaurantID,
			DishID:       in.DishID,
			Qty:          in.Qty,
		}
		// the list as validated, not the filtered copy pricing works from
		item.SetChosenOptionIDs(in.ChosenOptionIDs)
		if err := s.Carts.CreateItem(tx, &item); err != nil {
			return err
		}
		itemID = item.ID
		return nil
	})
	return itemID, err
}

// UpdateQty stores qty verbatim. Zero and negative values are legal here;
// checkout and explicit deletion are the enforcement points.
func (s *CartService) UpdateQty(userID, itemID uint, qty int) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Carts.UpdateQty(tx, userID, itemID, qty)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *CartService) RemoveItem(userID, itemID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Carts.RemoveItem(tx, userID, itemID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Clear empties the cart, or one restaurant's share of it. Idempotent.
func (s *CartService) Clear(userID uint, restaurantID *uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Carts.Clear(tx, userID, restaurantID)
	})
}

func (s *CartService) SetCutlery(userID uint, count int) error {
	if count < 0 {
		return errors.New("cutlery count must be non-negative")
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		c, err := s.Carts.GetOrCreateCart(tx, userID)
		if err != nil {
			return err
		}
		return s.Carts.SetCutlery(tx, c.ID, count)
	})
}
