package repository

import (
	"errors"

	"github.com/Bespalov-Gleb/Food-bot/entity"
	"gorm.io/gorm"
)

// CatalogRepository is read access to priceable entities plus the small
// amount of restaurant-admin bookkeeping the console needs.
type CatalogRepository struct{ DB *gorm.DB }

func NewCatalogRepository(db *gorm.DB) *CatalogRepository { return &CatalogRepository{DB: db} }

func (r *CatalogRepository) GetRestaurant(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *CatalogRepository) ListEnabledRestaurants() ([]entity.Restaurant, error) {
	var out []entity.Restaurant
	err := r.DB.Where("is_enabled = ?", true).Order("rating_agg DESC").Find(&out).Error
	return out, err
}

func (r *CatalogRepository) GetDish(id uint) (*entity.Dish, error) {
	var d entity.Dish
	if err := r.DB.First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *CatalogRepository) ListCategories(restaurantID uint) ([]entity.Category, error) {
	var out []entity.Category
	err := r.DB.Where("restaurant_id = ?", restaurantID).Order("sort ASC").Find(&out).Error
	return out, err
}

func (r *CatalogRepository) ListDishes(restaurantID uint) ([]entity.Dish, error) {
	var out []entity.Dish
	err := r.DB.Where("restaurant_id = ?", restaurantID).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *CatalogRepository) GetOptionGroups(dishID uint) ([]entity.OptionGroup, error) {
	var out []entity.OptionGroup
	err := r.DB.Where("dish_id = ?", dishID).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *CatalogRepository) GetOptions(groupIDs []uint) ([]entity.Option, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	var out []entity.Option
	err := r.DB.Where("group_id IN ?", groupIDs).Order("id ASC").Find(&out).Error
	return out, err
}

// SnapshotRows loads everything a pricing run needs for the given dishes
// in three queries. Runs on tx so snapshot reads share the caller's
// transaction.
func (r *CatalogRepository) SnapshotRows(tx *gorm.DB, dishIDs []uint) ([]entity.Dish, []entity.OptionGroup, []entity.Option, error) {
	if tx == nil {
		tx = r.DB
	}
	if len(dishIDs) == 0 {
		return nil, nil, nil, nil
	}
	var dishes []entity.Dish
	if err := tx.Where("id IN ?", dishIDs).Find(&dishes).Error; err != nil {
		return nil, nil, nil, err
	}
	var groups []entity.OptionGroup
	if err := tx.Where("dish_id IN ?", dishIDs).Find(&groups).Error; err != nil {
		return nil, nil, nil, err
	}
	groupIDs := make([]uint, 0, len(groups))
	for _, g := range groups {
		groupIDs = append(groupIDs, g.ID)
	}
	var options []entity.Option
	if len(groupIDs) > 0 {
		if err := tx.Where("group_id IN ?", groupIDs).Find(&options).Error; err != nil {
			return nil, nil, nil, err
		}
	}
	return dishes, groups, options, nil
}

func (r *CatalogRepository) SetDishAvailability(dishID, restaurantID uint, available bool) (int64, error) {
	res := r.DB.Model(&entity.Dish{}).
		Where("id = ? AND restaurant_id = ?", dishID, restaurantID).
		Update("is_available", available)
	return res.RowsAffected, res.Error
}

func (r *CatalogRepository) SetRestaurantEnabled(id uint, enabled bool) (int64, error) {
	res := r.DB.Model(&entity.Restaurant{}).Where("id = ?", id).Update("is_enabled", enabled)
	return res.RowsAffected, res.Error
}

func (r *CatalogRepository) UpdateRestaurantRating(id uint, rating float64) error {
	return r.DB.Model(&entity.Restaurant{}).Where("id = ?", id).Update("rating_agg", rating).Error
}

// RestaurantForAdmin maps an operator account to its restaurant.
func (r *CatalogRepository) RestaurantForAdmin(userID uint) (uint, error) {
	var row entity.RestaurantAdmin
	err := r.DB.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return row.RestaurantID, nil
}

// AdminUserIDs lists operator accounts of a restaurant for notification
// fan-out (one-way lookup, never stored on the order).
func (r *CatalogRepository) AdminUserIDs(restaurantID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&entity.RestaurantAdmin{}).
		Where("restaurant_id = ?", restaurantID).
		Pluck("user_id", &ids).Error
	return ids, err
}
