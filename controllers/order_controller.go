package controllers

import (
	"strconv"

	"github.com/Bespalov-Gleb/Food-bot/pkg/resp"
	"github.com/Bespalov-Gleb/Food-bot/services"
	"github.com/Bespalov-Gleb/Food-bot/utils"
	"github.com/gin-gonic/gin"
)

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController { return &OrderController{Svc: s} }

// POST /orders
func (h *OrderController) Submit(c *gin.Context) {
	var in services.SubmitOrderIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.Submit(utils.CurrentUserID(c), &in)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.Created(c, out)
}

// POST /orders/checkout — submit straight from the stored cart
func (h *OrderController) Checkout(c *gin.Context) {
	var in services.CheckoutFromCartIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.SubmitFromCart(utils.CurrentUserID(c), &in)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.Created(c, out)
}

// GET /orders/:id
func (h *OrderController) Detail(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "bad order id")
		return
	}
	o, err := h.Svc.GetForUser(utils.CurrentUserID(c), uint(orderID))
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, o)
}

// GET /orders
func (h *OrderController) ListForMe(c *gin.Context) {
	orders, err := h.Svc.ListForUser(utils.CurrentUserID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, orders)
}
