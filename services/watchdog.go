package services

import (
	"context"
	"log"
	"time"

	"github.com/Bespalov-Gleb/Food-bot/entity"
	"github.com/Bespalov-Gleb/Food-bot/repository"
)

// Watchdog auto-advances accepted orders to delivered once their
// promised ETA elapses. Each order commits through a status CAS, so a
// racing staff cancel/deliver and the sweep never produce torn state;
// a per-order persistence error just leaves that order for the next tick.
type Watchdog struct {
	Orders   *repository.OrderRepository
	Notifier Notifier
	Feed     OrderEventSink
	Interval time.Duration
}

func NewWatchdog(orders *repository.OrderRepository, notifier Notifier, feed OrderEventSink, interval time.Duration) *Watchdog {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if feed == nil {
		feed = NopSink{}
	}
	return &Watchdog{Orders: orders, Notifier: notifier, Feed: feed, Interval: interval}
}

// Run sweeps until ctx is cancelled. Started once from main.
func (w *Watchdog) Run(ctx context.Context) {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Sweep(time.Now())
		}
	}
}

// Sweep delivers every accepted order whose ETA has elapsed at now
// (inclusive) and returns how many it delivered.
func (w *Watchdog) Sweep(now time.Time) int {
	rows, err := w.Orders.ListAccepted()
	if err != nil {
		log.Printf("watchdog: list accepted: %v", err)
		return 0
	}

	delivered := 0
	for i := range rows {
		o := &rows[i]
		if !repository.DueForDelivery(o, now) {
			continue
		}
		ok, err := w.Orders.MarkDeliveredIfAccepted(o.ID)
		if err != nil {
			log.Printf("watchdog: deliver order %d: %v", o.ID, err)
			continue
		}
		if !ok {
			// someone else moved the order first
			continue
		}
		delivered++
		w.Notifier.NotifyUser(o.UserID, "Ваш заказ доставлен. Приятного аппетита!", "", "")
		w.Feed.Publish(OrderEvent{
			Type: "status", OrderID: o.ID, RestaurantID: o.RestaurantID,
			Status: entity.OrderStatusDelivered, TotalPrice: o.TotalPrice,
		})
	}
	return delivered
}
