package repository

import (
	"time"

	"github.com/Bespalov-Gleb/Food-bot/entity"
	"gorm.io/gorm"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderForUser(userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("id = ? AND user_id = ?", orderID, userID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOrderForRestaurant scopes by owner; a foreign order reads as absent.
func (r *OrderRepository) GetOrderForRestaurant(restaurantID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("id = ? AND restaurant_id = ?", orderID, restaurantID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) ListOrdersForUser(userID uint) ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.Where("user_id = ?", userID).
		Preload("Items", itemOrder).
		Order("id DESC").Find(&out).Error
	return out, err
}

func (r *OrderRepository) ListOrdersForRestaurant(restaurantID uint) ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.Where("restaurant_id = ?", restaurantID).
		Preload("Items", itemOrder).
		Order("id DESC").Find(&out).Error
	return out, err
}

// GetOrderItems returns items in insertion order; staff item edits are
// addressed by index into exactly this ordering.
func (r *OrderRepository) GetOrderItems(tx *gorm.DB, orderID uint) ([]entity.OrderItem, error) {
	if tx == nil {
		tx = r.DB
	}
	var items []entity.OrderItem
	err := tx.Where("order_id = ?", orderID).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *OrderRepository) SaveOrderItem(tx *gorm.DB, it *entity.OrderItem) error {
	return tx.Save(it).Error
}

func (r *OrderRepository) DeleteOrderItem(tx *gorm.DB, id uint) error {
	return tx.Delete(&entity.OrderItem{}, id).Error
}

// UpdateStatusGuard performs the transition as a single conditional
// UPDATE: it applies updates only while the order still holds one of the
// from statuses. Zero affected rows means a concurrent writer won.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from []string, updates map[string]any) (int64, error) {
	if tx == nil {
		tx = r.DB
	}
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status IN ?", orderID, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) ListAccepted() ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.Where("status = ?", entity.OrderStatusAccepted).Find(&out).Error
	return out, err
}

// MarkDeliveredIfAccepted is the watchdog's commit: it only wins while
// the order is still accepted, so a racing staff cancel/deliver and the
// sweep resolve to exactly one final status.
func (r *OrderRepository) MarkDeliveredIfAccepted(orderID uint) (bool, error) {
	res := r.DB.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, entity.OrderStatusAccepted).
		Update("status", entity.OrderStatusDelivered)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *OrderRepository) CountByStatus() (map[string]int64, error) {
	var rows []struct {
		Status string
		Cnt    int64
	}
	err := r.DB.Model(&entity.Order{}).
		Select("status, COUNT(*) AS cnt").
		Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Cnt
	}
	return out, nil
}

func (r *OrderRepository) SetTotal(tx *gorm.DB, orderID uint, total int64) error {
	return tx.Model(&entity.Order{}).Where("id = ?", orderID).
		Update("total_price", total).Error
}

func itemOrder(db *gorm.DB) *gorm.DB { return db.Order("order_items.id ASC") }

// DueForDelivery reports whether an accepted order's promised ETA has
// elapsed at now (inclusive).
func DueForDelivery(o *entity.Order, now time.Time) bool {
	if o.Status != entity.OrderStatusAccepted || o.AcceptedAt == nil || o.EtaMinutes <= 0 {
		return false
	}
	due := o.AcceptedAt.Add(time.Duration(o.EtaMinutes) * time.Minute)
	return !now.Before(due)
}
