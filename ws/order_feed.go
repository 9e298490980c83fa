package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/Bespalov-Gleb/Food-bot/repository"
	"github.com/Bespalov-Gleb/Food-bot/services"
	"github.com/Bespalov-Gleb/Food-bot/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// OrderFeed streams order events to restaurant-admin consoles. One
// subscription per connection, keyed by restaurant id.
type OrderFeed struct {
	clients    map[uint]map[*websocket.Conn]bool // restaurantID -> conns
	broadcast  chan services.OrderEvent
	register   chan subscription
	unregister chan subscription
	mu         sync.Mutex
	catalog    *repository.CatalogRepository
}

type subscription struct {
	Conn         *websocket.Conn
	RestaurantID uint
}

func NewOrderFeed(catalog *repository.CatalogRepository) *OrderFeed {
	return &OrderFeed{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan services.OrderEvent, 64),
		register:   make(chan subscription),
		unregister: make(chan subscription),
		catalog:    catalog,
	}
}

// Publish implements services.OrderEventSink; it never blocks the caller.
func (h *OrderFeed) Publish(ev services.OrderEvent) {
	select {
	case h.broadcast <- ev:
	default:
		log.Printf("order feed: dropping event for order %d, feed is saturated", ev.OrderID)
	}
}

func (h *OrderFeed) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.RestaurantID] == nil {
				h.clients[sub.RestaurantID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.RestaurantID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.RestaurantID][sub.Conn]; ok {
				delete(h.clients[sub.RestaurantID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[ev.RestaurantID] {
				if err := conn.WriteJSON(ev); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients[ev.RestaurantID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/orders. The restaurant is resolved from the caller's
// admin mapping, never from the request.
func (h *OrderFeed) HandleWebSocket(c *gin.Context) {
	userID := utils.CurrentUserID(c)
	restaurantID, err := h.catalog.RestaurantForAdmin(userID)
	if err != nil || restaurantID == 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "not_restaurant_admin"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	sub := subscription{Conn: conn, RestaurantID: restaurantID}
	h.register <- sub

	go func() {
		defer func() { h.unregister <- sub }()
		for {
			// feed is one-way; reads only detect the close
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
