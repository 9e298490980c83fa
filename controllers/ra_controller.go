package controllers

import (
	"strconv"

	"github.com/Bespalov-Gleb/Food-bot/pkg/resp"
	"github.com/Bespalov-Gleb/Food-bot/repository"
	"github.com/Bespalov-Gleb/Food-bot/services"
	"github.com/Bespalov-Gleb/Food-bot/utils"
	"github.com/gin-gonic/gin"
)

// RAController is the restaurant-admin console: order handling for the
// one restaurant the caller administers.
type RAController struct {
	Orders  *services.OrderService
	Catalog *repository.CatalogRepository
}

func NewRAController(orders *services.OrderService, catalog *repository.CatalogRepository) *RAController {
	return &RAController{Orders: orders, Catalog: catalog}
}

// requireRestaurant resolves the caller's restaurant; writes 403 itself.
func (h *RAController) requireRestaurant(c *gin.Context) (uint, bool) {
	rid, err := h.Catalog.RestaurantForAdmin(utils.CurrentUserID(c))
	if err != nil {
		resp.ServerError(c, err)
		return 0, false
	}
	if rid == 0 {
		resp.Forbidden(c, "not_restaurant_admin")
		return 0, false
	}
	return rid, true
}

func orderIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "bad order id")
		return 0, false
	}
	return uint(id), true
}

// GET /ra/me
func (h *RAController) Me(c *gin.Context) {
	rid, ok := h.requireRestaurant(c)
	if !ok {
		return
	}
	rest, err := h.Catalog.GetRestaurant(rid)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, gin.H{
		"restaurantId":   rid,
		"restaurantName": rest.Name,
		"isEnabled":      rest.IsEnabled,
	})
}

// GET /ra/restaurant
func (h *RAController) Restaurant(c *gin.Context) {
	rid, ok := h.requireRestaurant(c)
	if !ok {
		return
	}
	rest, err := h.Catalog.GetRestaurant(rid)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, rest)
}

// POST /ra/restaurant/status
func (h *RAController) SetEnabled(c *gin.Context) {
	rid, ok := h.requireRestaurant(c)
	if !ok {
		return
	}
	var in struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if _, err := h.Catalog.SetRestaurantEnabled(rid, in.Enabled); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"enabled": in.Enabled})
}

// PATCH /ra/dishes/:id/availability
func (h *RAController) SetDishAvailability(c *gin.Context) {
	rid, ok := h.requireRestaurant(c)
	if !ok {
		return
	}
	dishID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "bad dish id")
		return
	}
	var in struct {
		Available bool `json:"available"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	affected, err := h.Catalog.SetDishAvailability(uint(dishID), rid, in.Available)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	if affected == 0 {
		resp.NotFound(c, "not found")
		return
	}
	resp.OK(c, gin.H{})
}

// GET /ra/orders
func (h *RAController) ListOrders(c *gin.Context) {
	rid, ok := h.requireRestaurant(c)
	if !ok {
		return
	}
	orders, err := h.Orders.ListForRestaurant(rid)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, orders)
}

// GET /ra/orders/:id
func (h *RAController) OrderDetail(c *gin.Context) {
	rid, ok := h.requireRestaurant(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}
	o, err := h.Orders.GetForRestaurant(rid, orderID)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, o)
}

// POST /ra/orders/:id/accept
func (h *RAController) Accept(c *gin.Context) {
	rid, ok := h.requireRestaurant(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}
	var in struct {
		EtaMinutes int `json:"etaMinutes"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Orders.Accept(rid, orderID, in.EtaMinutes); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, gin.H{})
}

// POST /ra/orders/:id/cancel
func (h *RAController) Cancel(c *gin.Context) {
	rid, ok := h.requireRestaurant(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}
	var in struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Orders.Cancel(rid, orderID, in.Reason); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, gin.H{})
}

// POST /ra/orders/:id/delivered
func (h *RAController) Delivered(c *gin.Context) {
	rid, ok := h.requireRestaurant(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}
	if err := h.Orders.Deliver(rid, orderID); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, gin.H{})
}

// POST /ra/orders/:id/modify
func (h *RAController) Modify(c *gin.Context) {
	rid, ok := h.requireRestaurant(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}
	var in struct {
		Comment string `json:"comment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Orders.ModifyComment(rid, orderID, in.Comment); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, gin.H{})
}

// POST /ra/orders/:id/modify-items
func (h *RAController) ModifyItems(c *gin.Context) {
	rid, ok := h.requireRestaurant(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}
	var in struct {
		Items   []services.ItemQtyPatch `json:"items" binding:"required"`
		Comment string                  `json:"comment"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	total, err := h.Orders.ModifyItems(rid, orderID, in.Items, in.Comment)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, gin.H{"total": total})
}
