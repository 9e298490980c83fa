package routes

import (
	"github.com/Bespalov-Gleb/Food-bot/configs"
	"github.com/Bespalov-Gleb/Food-bot/controllers"
	"github.com/Bespalov-Gleb/Food-bot/entity"
	"github.com/Bespalov-Gleb/Food-bot/middlewares"
	"github.com/Bespalov-Gleb/Food-bot/repository"
	"github.com/Bespalov-Gleb/Food-bot/services"
	"github.com/Bespalov-Gleb/Food-bot/ws"
	"github.com/gin-gonic/gin"
)

// Deps is everything the HTTP layer hangs off of.
type Deps struct {
	Cfg     *configs.Config
	Users   *repository.UserRepository
	Catalog *repository.CatalogRepository

	Auth    *services.AuthService
	Carts   *services.CartService
	Orders  *services.OrderService
	Reviews *services.ReviewService

	Feed *ws.OrderFeed
}

func RegisterRoutes(r *gin.Engine, d *Deps) {
	r.Use(middlewares.CORSMiddleware())
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	secret := d.Cfg.JWTSecret

	authCtrl := controllers.NewAuthController(d.Auth, d.Users)
	restCtrl := controllers.NewRestaurantController(d.Catalog)
	cartCtrl := controllers.NewCartController(d.Carts)
	orderCtrl := controllers.NewOrderController(d.Orders)
	raCtrl := controllers.NewRAController(d.Orders, d.Catalog)
	adminCtrl := controllers.NewAdminController(d.Users, d.Orders)
	reviewCtrl := controllers.NewReviewController(d.Reviews)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.POST("/refresh", authCtrl.Refresh)
		a.POST("/logout", authCtrl.Logout)
	}

	// Auth (protected)
	aAuth := a.Group("", middlewares.AuthMiddleware(secret))
	{
		aAuth.GET("/me", authCtrl.Me)
		aAuth.PATCH("/me", authCtrl.UpdateMe)
	}

	// Public catalog
	r.GET("/restaurants", restCtrl.List)
	r.GET("/restaurants/:id", restCtrl.Detail)
	r.GET("/restaurants/:id/menu", restCtrl.Menu)
	r.GET("/restaurants/:id/reviews", reviewCtrl.ListByRestaurant)
	r.GET("/dishes/:id/options", restCtrl.DishOptions)

	// Cart (user)
	cart := r.Group("/cart", middlewares.AuthMiddleware(secret))
	{
		cart.GET("", cartCtrl.Get)
		cart.POST("/items", cartCtrl.Add) // ?force=true evicts other restaurants
		cart.PATCH("/items/:id", cartCtrl.UpdateQty)
		cart.DELETE("/items/:id", cartCtrl.RemoveItem)
		cart.DELETE("", cartCtrl.Clear) // ?restaurantId=
		cart.POST("/cutlery", cartCtrl.SetCutlery)
	}

	// Orders (user)
	u := r.Group("/orders", middlewares.AuthMiddleware(secret))
	{
		u.POST("", orderCtrl.Submit)
		u.POST("/checkout", orderCtrl.Checkout)
		u.GET("", orderCtrl.ListForMe)
		u.GET("/:id", orderCtrl.Detail)
	}

	// Reviews (user)
	r.POST("/reviews", middlewares.AuthMiddleware(secret), reviewCtrl.Create)

	// Restaurant-admin console
	ra := r.Group("/ra", middlewares.AuthMiddleware(secret, entity.RoleRestaurant, entity.RoleAdmin))
	{
		ra.GET("/me", raCtrl.Me)
		ra.GET("/restaurant", raCtrl.Restaurant)
		ra.POST("/restaurant/status", raCtrl.SetEnabled)
		ra.PATCH("/dishes/:id/availability", raCtrl.SetDishAvailability)
		ra.GET("/orders", raCtrl.ListOrders)
		ra.GET("/orders/:id", raCtrl.OrderDetail)
		ra.POST("/orders/:id/accept", raCtrl.Accept)
		ra.POST("/orders/:id/cancel", raCtrl.Cancel)
		ra.POST("/orders/:id/delivered", raCtrl.Delivered)
		ra.POST("/orders/:id/modify", raCtrl.Modify)
		ra.POST("/orders/:id/modify-items", raCtrl.ModifyItems)
	}

	// Live order feed for restaurant consoles
	r.GET("/ws/orders", middlewares.AuthMiddleware(secret, entity.RoleRestaurant, entity.RoleAdmin), d.Feed.HandleWebSocket)

	// Super-admin
	admin := r.Group("/admin", middlewares.AuthMiddleware(secret, entity.RoleAdmin))
	{
		admin.GET("/users", adminCtrl.ListUsers)
		admin.POST("/users/:id/block", adminCtrl.SetBlocked)
		admin.GET("/orders/stats", adminCtrl.OrderStats)
	}
}
