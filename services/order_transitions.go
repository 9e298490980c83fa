package services

import (
	"fmt"
	"time"

	"github.com/Bespalov-Gleb/Food-bot/entity"
	"gorm.io/gorm"
)

// Every transition here is a single conditional UPDATE guarded by the
// current status, so a staff action racing the delivery watchdog (or
// another staff action) resolves to exactly one winner. Notifications
// fire only after the write committed.

var nonTerminalStatuses = []string{
	entity.OrderStatusSent,
	entity.OrderStatusAccepted,
	entity.OrderStatusModified,
}

// Accept moves sent/modified to accepted and stamps the ETA. A repeat
// call is a distinct no-op (ErrAlreadyAccepted); terminal states are a
// conflict.
func (s *OrderService) Accept(restaurantID, orderID uint, etaMinutes int) error {
	if etaMinutes <= 0 {
		etaMinutes = 60
	}
	o, err := s.ownedOrder(restaurantID, orderID)
	if err != nil {
		return err
	}

	now := time.Now()
	affected, err := s.Repo.UpdateStatusGuard(nil, o.ID,
		[]string{entity.OrderStatusSent, entity.OrderStatusModified},
		map[string]any{
			"status":      entity.OrderStatusAccepted,
			"accepted_at": now,
			"eta_minutes": etaMinutes,
		})
	if err != nil {
		return err
	}
	if affected == 0 {
		cur, err := s.Repo.GetOrder(o.ID)
		if err != nil {
			return err
		}
		if cur.Status == entity.OrderStatusAccepted {
			return ErrAlreadyAccepted
		}
		return ErrConflict
	}

	rest, _ := s.Catalog.GetRestaurant(restaurantID)
	restName := fmt.Sprintf("%d", restaurantID)
	if rest != nil {
		restName = rest.Name
	}
	s.Notifier.NotifyAdmin(fmt.Sprintf("Заказ №%d принят рестораном %s. Время доставки ~ %d мин", o.ID, restName, etaMinutes))
	s.Notifier.NotifyUser(o.UserID,
		fmt.Sprintf("Ресторан %s принял ваш заказ. Время доставки ~ %d мин", restName, etaMinutes),
		"Открыть текущий заказ", s.orderURL("order.html?id", o.ID))
	s.publishStatus(o, entity.OrderStatusAccepted, o.TotalPrice)
	return nil
}

// Cancel is legal from any non-terminal status; the reason lands in the
// staff comment.
func (s *OrderService) Cancel(restaurantID, orderID uint, reason string) error {
	o, err := s.ownedOrder(restaurantID, orderID)
	if err != nil {
		return err
	}
	affected, err := s.Repo.UpdateStatusGuard(nil, o.ID, nonTerminalStatuses,
		map[string]any{
			"status":        entity.OrderStatusCancelled,
			"staff_comment": reason,
		})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrConflict
	}

	s.Notifier.NotifyAdmin(fmt.Sprintf("Заказ №%d отменён рестораном %d. Причина: %s", o.ID, restaurantID, reason))
	s.publishStatus(o, entity.OrderStatusCancelled, o.TotalPrice)
	return nil
}

// Deliver is the restaurant-side terminal transition, legal from any
// non-terminal status. The watchdog's path is narrower (accepted only)
// and lives in watchdog.go.
func (s *OrderService) Deliver(restaurantID, orderID uint) error {
	o, err := s.ownedOrder(restaurantID, orderID)
	if err != nil {
		return err
	}
	affected, err := s.Repo.UpdateStatusGuard(nil, o.ID, nonTerminalStatuses,
		map[string]any{"status": entity.OrderStatusDelivered})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrConflict
	}

	s.Notifier.NotifyAdmin(fmt.Sprintf("Заказ №%d доставлен рестораном %d", o.ID, restaurantID))
	s.notifyDelivered(o)
	s.publishStatus(o, entity.OrderStatusDelivered, o.TotalPrice)
	return nil
}

// ModifyComment marks the order modified with a staff comment; totals
// stay untouched. "modified" is re-entrant: accept/cancel/deliver and
// further modifications remain legal afterwards.
func (s *OrderService) ModifyComment(restaurantID, orderID uint, comment string) error {
	o, err := s.ownedOrder(restaurantID, orderID)
	if err != nil {
		return err
	}
	affected, err := s.Repo.UpdateStatusGuard(nil, o.ID, nonTerminalStatuses,
		map[string]any{
			"status":        entity.OrderStatusModified,
			"staff_comment": comment,
		})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrConflict
	}

	s.notifyModified(o, comment)
	s.publishStatus(o, entity.OrderStatusModified, o.TotalPrice)
	return nil
}

type ItemQtyPatch struct {
	Index int `json:"index"`
	Qty   int `json:"qty"`
}

// ModifyItems applies per-index quantity patches (index into the items in
// insertion order), deletes lines reaching qty<=0, recomputes the total
// as the option-priced subtotal of survivors plus the delivery fee, and
// marks the order modified. Everything happens in one transaction; a
// concurrent terminal transition aborts it.
func (s *OrderService) ModifyItems(restaurantID, orderID uint, patches []ItemQtyPatch, comment string) (int64, error) {
	o, err := s.ownedOrder(restaurantID, orderID)
	if err != nil {
		return 0, err
	}

	var total int64
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		items, err := s.Repo.GetOrderItems(tx, o.ID)
		if err != nil {
			return err
		}
		for _, p := range patches {
			if p.Index < 0 || p.Index >= len(items) {
				continue
			}
			q := p.Qty
			if q < 0 {
				q = 0
			}
			items[p.Index].Qty = q
		}

		survivors := items[:0]
		for i := range items {
			if items[i].Qty <= 0 {
				if err := s.Repo.DeleteOrderItem(tx, items[i].ID); err != nil {
					return err
				}
				continue
			}
			if err := s.Repo.SaveOrderItem(tx, &items[i]); err != nil {
				return err
			}
			survivors = append(survivors, items[i])
		}

		dishIDs := make([]uint, 0, len(survivors))
		for i := range survivors {
			dishIDs = append(dishIDs, survivors[i].DishID)
		}
		snap, err := loadSnapshot(tx, s.Catalog, dishIDs)
		if err != nil {
			return err
		}
		subtotal := SubtotalWithOptions(survivors, snap)

		total = subtotal
		if o.DeliveryType == entity.DeliveryTypeDelivery {
			rest, err := s.Catalog.GetRestaurant(o.RestaurantID)
			if err != nil {
				return err
			}
			total += rest.DeliveryFee
		}

		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, nonTerminalStatuses,
			map[string]any{
				"status":        entity.OrderStatusModified,
				"staff_comment": comment,
				"total_price":   total,
			})
		if err != nil {
			return err
		}
		if affected == 0 {
			// a terminal transition won the race; roll item edits back
			return ErrConflict
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.notifyModified(o, comment)
	s.publishStatus(o, entity.OrderStatusModified, total)
	return total, nil
}

func (s *OrderService) notifyModified(o *entity.Order, comment string) {
	s.Notifier.NotifyAdmin(fmt.Sprintf("Заказ №%d изменён рестораном %d. Комментарий: %s", o.ID, o.RestaurantID, comment))
	text := fmt.Sprintf("Ваш заказ изменён рестораном.\nКомментарий: %s", comment)
	if rest, err := s.Catalog.GetRestaurant(o.RestaurantID); err == nil && rest.Phone != "" {
		text += fmt.Sprintf("\nТелефон ресторана: %s", rest.Phone)
	}
	s.Notifier.NotifyUser(o.UserID, text, "Открыть текущий заказ", s.orderURL("order.html?id", o.ID))
}

func (s *OrderService) notifyDelivered(o *entity.Order) {
	text := "Ваш заказ доставлен. Приятного аппетита!"
	if rest, err := s.Catalog.GetRestaurant(o.RestaurantID); err == nil {
		text = fmt.Sprintf("Ваш заказ из %s доставлен. Приятного аппетита!", rest.Name)
	}
	s.Notifier.NotifyUser(o.UserID, text, "Оценить заказ", s.orderURL("order.html?id", o.ID))
}

func (s *OrderService) publishStatus(o *entity.Order, status string, total int64) {
	s.Feed.Publish(OrderEvent{
		Type: "status", OrderID: o.ID, RestaurantID: o.RestaurantID,
		Status: status, TotalPrice: total,
	})
}
