package controllers

import (
	"strconv"

	"github.com/Bespalov-Gleb/Food-bot/pkg/resp"
	"github.com/Bespalov-Gleb/Food-bot/services"
	"github.com/Bespalov-Gleb/Food-bot/utils"
	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// GET /cart
func (h *CartController) Get(c *gin.Context) {
	cart, err := h.Svc.Get(utils.CurrentUserID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, cart)
}

// POST /cart/items?force=true
func (h *CartController) Add(c *gin.Context) {
	var in services.AddToCartIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	force := c.Query("force") == "true"

	id, err := h.Svc.Add(utils.CurrentUserID(c), &in, force)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.Created(c, gin.H{"id": id})
}

// PATCH /cart/items/:id
func (h *CartController) UpdateQty(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "bad item id")
		return
	}
	var in struct {
		Qty int `json:"qty"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.UpdateQty(utils.CurrentUserID(c), uint(itemID), in.Qty); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, gin.H{})
}

// DELETE /cart/items/:id
func (h *CartController) RemoveItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "bad item id")
		return
	}
	if err := h.Svc.RemoveItem(utils.CurrentUserID(c), uint(itemID)); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, gin.H{})
}

// DELETE /cart?restaurantId=
func (h *CartController) Clear(c *gin.Context) {
	var restaurantID *uint
	if raw := c.Query("restaurantId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			resp.BadRequest(c, "bad restaurant id")
			return
		}
		v := uint(id)
		restaurantID = &v
	}
	if err := h.Svc.Clear(utils.CurrentUserID(c), restaurantID); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, gin.H{})
}

// POST /cart/cutlery
func (h *CartController) SetCutlery(c *gin.Context) {
	var in struct {
		Count int `json:"count"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.SetCutlery(utils.CurrentUserID(c), in.Count); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, gin.H{})
}
