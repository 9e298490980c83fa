package services

import (
	"errors"

	"github.com/Bespalov-Gleb/Food-bot/entity"
	"github.com/Bespalov-Gleb/Food-bot/repository"
	"gorm.io/gorm"
)

var ErrOrderNotDelivered = errors.New("order is not delivered yet")

type ReviewService struct {
	Reviews *repository.ReviewRepository
	Orders  *repository.OrderRepository
	Catalog *repository.CatalogRepository
}

func NewReviewService(reviews *repository.ReviewRepository, orders *repository.OrderRepository, catalog *repository.CatalogRepository) *ReviewService {
	return &ReviewService{Reviews: reviews, Orders: orders, Catalog: catalog}
}

type CreateReviewIn struct {
	OrderID uint   `json:"orderId" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// Create accepts one review per delivered order from its owner and folds
// the rating into the restaurant aggregate.
func (s *ReviewService) Create(userID uint, in *CreateReviewIn) (*entity.Review, error) {
	o, err := s.Orders.GetOrderForUser(userID, in.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if o.Status != entity.OrderStatusDelivered {
		return nil, ErrOrderNotDelivered
	}
	exists, err := s.Reviews.ExistsForOrder(o.ID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	rev := entity.Review{
		OrderID:      o.ID,
		RestaurantID: o.RestaurantID,
		UserID:       userID,
		Rating:       in.Rating,
		Comment:      in.Comment,
	}
	if err := s.Reviews.Create(&rev); err != nil {
		return nil, err
	}

	// aggregate update is best-effort; the review itself is committed
	if avg, err := s.Reviews.AverageRating(o.RestaurantID); err == nil {
		_ = s.Catalog.UpdateRestaurantRating(o.RestaurantID, avg)
	}
	return &rev, nil
}

func (s *ReviewService) ListByRestaurant(restaurantID uint) ([]entity.Review, error) {
	return s.Reviews.ListByRestaurant(restaurantID)
}
