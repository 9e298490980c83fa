package repository

import (
	"github.com/Bespalov-Gleb/Food-bot/entity"
	"gorm.io/gorm"
)

type ReviewRepository struct{ DB *gorm.DB }

func NewReviewRepository(db *gorm.DB) *ReviewRepository { return &ReviewRepository{DB: db} }

func (r *ReviewRepository) Create(rev *entity.Review) error {
	return r.DB.Create(rev).Error
}

func (r *ReviewRepository) ExistsForOrder(orderID, userID uint) (bool, error) {
	var cnt int64
	err := r.DB.Model(&entity.Review{}).
		Where("order_id = ? AND user_id = ? AND is_deleted = ?", orderID, userID, false).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *ReviewRepository) ListByRestaurant(restaurantID uint) ([]entity.Review, error) {
	var out []entity.Review
	err := r.DB.Where("restaurant_id = ? AND is_deleted = ?", restaurantID, false).
		Order("id DESC").Find(&out).Error
	return out, err
}

func (r *ReviewRepository) AverageRating(restaurantID uint) (float64, error) {
	var row struct{ Avg float64 }
	err := r.DB.Model(&entity.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg").
		Where("restaurant_id = ? AND is_deleted = ?", restaurantID, false).
		Scan(&row).Error
	return row.Avg, err
}
