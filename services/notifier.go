package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Bespalov-Gleb/Food-bot/repository"
)

// Notifier is the outbound messaging side-channel. Every call is
// best-effort and asynchronous: a delivery failure is logged and
// swallowed, it never affects the transition that triggered it.
type Notifier interface {
	NotifyAdmin(text string)
	NotifyUser(userID uint, text, buttonText, buttonURL string)
	NotifyRestaurantAdmins(restaurantID uint, text, buttonText, buttonURL string)
}

// TelegramNotifier talks to the Telegram Bot API. User ids double as
// telegram chat ids, as in the mini-app client.
type TelegramNotifier struct {
	Token       string
	AdminChatID int64
	Catalog     *repository.CatalogRepository
	Client      *http.Client
}

func NewTelegramNotifier(token string, adminChatID int64, catalog *repository.CatalogRepository) *TelegramNotifier {
	return &TelegramNotifier{
		Token:       token,
		AdminChatID: adminChatID,
		Catalog:     catalog,
		Client:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *TelegramNotifier) NotifyAdmin(text string) {
	if n.Token == "" || n.AdminChatID == 0 {
		return
	}
	go n.send(n.AdminChatID, text, "", "")
}

func (n *TelegramNotifier) NotifyUser(userID uint, text, buttonText, buttonURL string) {
	if n.Token == "" {
		return
	}
	go n.send(int64(userID), text, buttonText, buttonURL)
}

func (n *TelegramNotifier) NotifyRestaurantAdmins(restaurantID uint, text, buttonText, buttonURL string) {
	if n.Token == "" {
		return
	}
	go func() {
		ids, err := n.Catalog.AdminUserIDs(restaurantID)
		if err != nil {
			log.Printf("notifier: admin lookup for restaurant %d: %v", restaurantID, err)
			return
		}
		for _, id := range ids {
			n.send(int64(id), text, buttonText, buttonURL)
		}
	}()
}

func (n *TelegramNotifier) send(chatID int64, text, buttonText, buttonURL string) {
	payload := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	if buttonText != "" && buttonURL != "" {
		payload["reply_markup"] = map[string]any{
			"inline_keyboard": [][]map[string]string{
				{{"text": buttonText, "url": buttonURL}},
			},
		}
	}
	body, _ := json.Marshal(payload)
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", n.Token)
	resp, err := n.Client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("notifier: sendMessage to %d: %v", chatID, err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		log.Printf("notifier: sendMessage to %d: status %d", chatID, resp.StatusCode)
	}
}

// NopNotifier drops everything; used when no bot token is configured.
type NopNotifier struct{}

func (NopNotifier) NotifyAdmin(string)                            {}
func (NopNotifier) NotifyUser(uint, string, string, string)       {}
func (NopNotifier) NotifyRestaurantAdmins(uint, string, string, string) {}

// OrderEvent is pushed to the restaurant-admin live feed on submission
// and on every transition.
type OrderEvent struct {
	Type         string `json:"type"`
	OrderID      uint   `json:"orderId"`
	RestaurantID uint   `json:"restaurantId"`
	Status       string `json:"status"`
	TotalPrice   int64  `json:"totalPrice"`
}

// OrderEventSink receives order events; like the notifier it is
// fire-and-forget from the state machine's point of view.
type OrderEventSink interface {
	Publish(ev OrderEvent)
}

type NopSink struct{}

func (NopSink) Publish(OrderEvent) {}
