package main

import (
	"context"
	"fmt"
	"log"

	"github.com/Bespalov-Gleb/Food-bot/configs"
	"github.com/Bespalov-Gleb/Food-bot/repository"
	"github.com/Bespalov-Gleb/Food-bot/routes"
	"github.com/Bespalov-Gleb/Food-bot/services"
	"github.com/Bespalov-Gleb/Food-bot/ws"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	configs.SetupDatabase()
	db := configs.DB()

	if err := configs.SeedAdmin(); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}
	if err := configs.SeedDemo(); err != nil {
		log.Fatalf("seed demo failed: %v", err)
	}

	// Repositories
	users := repository.NewUserRepository(db)
	catalog := repository.NewCatalogRepository(db)
	carts := repository.NewCartRepository(db)
	orders := repository.NewOrderRepository(db)
	reviews := repository.NewReviewRepository(db)

	// Live feed + notifications
	feed := ws.NewOrderFeed(catalog)
	go feed.Run()

	var notifier services.Notifier = services.NopNotifier{}
	if cfg.TelegramToken != "" {
		notifier = services.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramAdminChatID, catalog)
	}

	// Services
	authSvc := services.NewAuthService(users, cfg.JWTSecret, cfg.JWTTTL, cfg.RefreshTTL)
	cartSvc := services.NewCartService(db, carts, catalog, cfg.MaxCartRestaurants)
	orderSvc := services.NewOrderService(db, orders, carts, catalog, users, notifier, feed, cfg.WebAppURL)
	reviewSvc := services.NewReviewService(reviews, orders, catalog)

	// Delivery watchdog
	watchdog := services.NewWatchdog(orders, notifier, feed, cfg.WatchdogInterval)
	go watchdog.Run(context.Background())

	// HTTP
	r := gin.Default()
	routes.RegisterRoutes(r, &routes.Deps{
		Cfg:     cfg,
		Users:   users,
		Catalog: catalog,
		Auth:    authSvc,
		Carts:   cartSvc,
		Orders:  orderSvc,
		Reviews: reviewSvc,
		Feed:    feed,
	})

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
