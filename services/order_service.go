package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Bespalov-Gleb/Food-bot/entity"
	"github.com/Bespalov-Gleb/Food-bot/repository"
	"gorm.io/gorm"
)

// OrderService freezes carts into orders and drives the order lifecycle
// (transitions live in order_transitions.go). Notifications and feed
// events are fired after commit and never affect the outcome.
type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	Carts    *repository.CartRepository
	Catalog  *repository.CatalogRepository
	Users    *repository.UserRepository
	Notifier Notifier
	Feed     OrderEventSink

	WebAppURL string
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	carts *repository.CartRepository,
	catalog *repository.CatalogRepository,
	users *repository.UserRepository,
	notifier Notifier,
	feed OrderEventSink,
	webAppURL string,
) *OrderService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if feed == nil {
		feed = NopSink{}
	}
	return &OrderService{
		DB: db, Repo: repo, Carts: carts, Catalog: catalog, Users: users,
		Notifier: notifier, Feed: feed, WebAppURL: webAppURL,
	}
}

type SubmitOrderItem struct {
	DishID          uint   `json:"dishId" binding:"required"`
	Name            string `json:"name"`
	Price           int64  `json:"price"`
	Qty             int    `json:"qty" binding:"min=1"`
	ChosenOptionIDs []uint `json:"chosenOptions"`
}

type SubmitOrderIn struct {
	RestaurantID uint `json:"restaurantId" binding:"required"`
	// client-declared total, used for the delivery-minimum gate only;
	// the persisted total is always recomputed server-side
	TotalPrice    int64             `json:"totalPrice"`
	DeliveryType  string            `json:"deliveryType" binding:"required,oneof=delivery pickup"`
	Address       string            `json:"address"`
	Phone         string            `json:"phone" binding:"required"`
	PaymentMethod string            `json:"paymentMethod" binding:"omitempty,oneof=cash card_to_courier transfer"`
	ClientComment string            `json:"clientComment"`
	Items         []SubmitOrderItem `json:"items"`
}

type SubmitOrderOut struct {
	ID    uint  `json:"id"`
	Total int64 `json:"total"`
}

// Submit freezes the payload into an Order with status "sent". Option
// deltas are re-resolved from the catalog so clients cannot tamper with
// option pricing; the per-item base Price is taken as declared, which
// mirrors the original system (SubmitFromCart is the catalog-priced
// alternative). The cart is not touched on this path.
func (s *OrderService) Submit(userID uint, in *SubmitOrderIn) (*SubmitOrderOut, error) {
	return s.submit(userID, in, false)
}

type CheckoutFromCartIn struct {
	RestaurantID  uint   `json:"restaurantId" binding:"required"`
	DeliveryType  string `json:"deliveryType" binding:"required,oneof=delivery pickup"`
	Address       string `json:"address"`
	Phone         string `json:"phone" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"omitempty,oneof=cash card_to_courier transfer"`
	ClientComment string `json:"clientComment"`
}

// SubmitFromCart builds the submission payload from the stored cart,
// resolving names and base prices from the catalog, then clears the
// restaurant's share of the cart in the same transaction.
func (s *OrderService) SubmitFromCart(userID uint, in *CheckoutFromCartIn) (*SubmitOrderOut, error) {
	cart, err := s.Carts.GetCartWithItems(userID)
	if err != nil {
		return nil, err
	}
	var lines []SubmitOrderItem
	var dishIDs []uint
	for _, it := range cart.Items {
		if it.RestaurantID != in.RestaurantID {
			continue
		}
		if it.Qty <= 0 {
			continue
		}
		dishIDs = append(dishIDs, it.DishID)
		lines = append(lines, SubmitOrderItem{
			DishID:          it.DishID,
			Qty:             it.Qty,
			ChosenOptionIDs: it.ChosenOptionIDs(),
		})
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	snap, err := loadSnapshot(nil, s.Catalog, dishIDs)
	if err != nil {
		return nil, err
	}
	var declared int64
	for i := range lines {
		dish, ok := snap.Dishes[lines[i].DishID]
		if !ok {
			return nil, fmt.Errorf("dish %d: %w", lines[i].DishID, ErrNotFound)
		}
		lines[i].Name = dish.Name
		lines[i].Price = dish.Price
		declared += dish.Price * int64(lines[i].Qty)
	}

	payload := &SubmitOrderIn{
		RestaurantID:  in.RestaurantID,
		TotalPrice:    declared,
		DeliveryType:  in.DeliveryType,
		Address:       in.Address,
		Phone:         in.Phone,
		PaymentMethod: in.PaymentMethod,
		ClientComment: in.ClientComment,
		Items:         lines,
	}
	return s.submit(userID, payload, true)
}

func (s *OrderService) submit(userID uint, in *SubmitOrderIn, clearCart bool) (*SubmitOrderOut, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	blocked, err := s.Users.IsBlocked(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if blocked {
		return nil, ErrUserBlocked
	}

	rest, err := s.Catalog.GetRestaurant(in.RestaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if in.DeliveryType == entity.DeliveryTypeDelivery && in.TotalPrice < rest.DeliveryMinSum {
		return nil, &BelowMinimumError{Missing: rest.DeliveryMinSum - in.TotalPrice}
	}

	dishIDs := make([]uint, 0, len(in.Items))
	reqItems := make([]PriceRequestItem, 0, len(in.Items))
	for _, it := range in.Items {
		dishIDs = append(dishIDs, it.DishID)
		reqItems = append(reqItems, PriceRequestItem{
			DishID:          it.DishID,
			Name:            it.Name,
			UnitPrice:       it.Price,
			Qty:             it.Qty,
			ChosenOptionIDs: it.ChosenOptionIDs,
		})
	}
	snap, err := loadSnapshot(nil, s.Catalog, dishIDs)
	if err != nil {
		return nil, err
	}
	priced, subtotal, err := PriceItems(reqItems, snap)
	if err != nil {
		return nil, err
	}

	total := subtotal
	if in.DeliveryType == entity.DeliveryTypeDelivery {
		total += rest.DeliveryFee
	}

	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = entity.PaymentCash
	}

	order := entity.Order{
		UserID:        userID,
		RestaurantID:  in.RestaurantID,
		Status:        entity.OrderStatusSent,
		TotalPrice:    total,
		DeliveryType:  in.DeliveryType,
		Address:       in.Address,
		Phone:         in.Phone,
		PaymentMethod: paymentMethod,
		ClientComment: in.ClientComment,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}
		for _, p := range priced {
			oi := entity.OrderItem{
				OrderID: order.ID,
				DishID:  p.DishID,
				Name:    p.Name,
				Price:   p.UnitPrice,
				Qty:     p.Qty,
			}
			oi.SetChosenOptionIDs(p.ChosenOptionIDs)
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
		}
		if clearCart {
			rid := in.RestaurantID
			if err := s.Carts.Clear(tx, userID, &rid); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifySubmitted(&order, rest, priced)
	s.Feed.Publish(OrderEvent{
		Type: "created", OrderID: order.ID, RestaurantID: order.RestaurantID,
		Status: order.Status, TotalPrice: order.TotalPrice,
	})
	return &SubmitOrderOut{ID: order.ID, Total: order.TotalPrice}, nil
}

func (s *OrderService) notifySubmitted(o *entity.Order, rest *entity.Restaurant, priced []PricedItem) {
	itemsTxt := formatPricedItems(priced)
	s.Notifier.NotifyAdmin(fmt.Sprintf(
		"Новый заказ №%d в ресторане %s на сумму %d р\nТип: %s, Оплата: %s\nАдрес: %s\nСостав: %s",
		o.ID, rest.Name, o.TotalPrice, o.DeliveryType, o.PaymentMethod,
		orDash(o.Address), itemsTxt,
	))
	s.Notifier.NotifyRestaurantAdmins(o.RestaurantID, fmt.Sprintf(
		"Новый заказ №%d\nСумма: %d р\nТип: %s\nОплата: %s\nАдрес: %s\nТелефон: %s\nСостав: %s\nКомментарий: %s",
		o.ID, o.TotalPrice, o.DeliveryType, o.PaymentMethod,
		orDash(o.Address), o.Phone, itemsTxt, orDash(o.ClientComment),
	), "Обработать заказ", s.orderURL("ra.html?order_id", o.ID))
	s.Notifier.NotifyUser(o.UserID,
		"Заказ отправлен. Ждите подтверждение ресторана\n\nСОСТАВ ЗАКАЗА\n"+
			itemLines(priced)+
			fmt.Sprintf("ИТОГО: %d р", o.TotalPrice),
		"Открыть текущий заказ", s.orderURL("order.html?id", o.ID))
}

func (s *OrderService) orderURL(page string, orderID uint) string {
	if s.WebAppURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/static/%s=%d", s.WebAppURL, page, orderID)
}

func formatPricedItems(items []PricedItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s×%d", it.Name, it.Qty))
	}
	return strings.Join(parts, ", ")
}

func itemLines(items []PricedItem) string {
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "%s × %d — %d р\n", it.Name, it.Qty, it.UnitPrice)
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// ---------------- Reads ----------------

func (s *OrderService) GetForUser(userID, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetOrderForUser(userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	items, err := s.Repo.GetOrderItems(nil, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (s *OrderService) ListForUser(userID uint) ([]entity.Order, error) {
	return s.Repo.ListOrdersForUser(userID)
}

func (s *OrderService) ListForRestaurant(restaurantID uint) ([]entity.Order, error) {
	return s.Repo.ListOrdersForRestaurant(restaurantID)
}

func (s *OrderService) GetForRestaurant(restaurantID, orderID uint) (*entity.Order, error) {
	o, err := s.ownedOrder(restaurantID, orderID)
	if err != nil {
		return nil, err
	}
	items, err := s.Repo.GetOrderItems(nil, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

// ownedOrder resolves an order scoped to its restaurant. A foreign or
// missing order is the same ErrNotFound, so existence never leaks.
func (s *OrderService) ownedOrder(restaurantID, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetOrderForRestaurant(restaurantID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (s *OrderService) StatsByStatus() (map[string]int64, error) {
	return s.Repo.CountByStatus()
}
