package controllers

import (
	"strconv"

	"github.com/Bespalov-Gleb/Food-bot/pkg/resp"
	"github.com/Bespalov-Gleb/Food-bot/repository"
	"github.com/Bespalov-Gleb/Food-bot/services"
	"github.com/gin-gonic/gin"
)

// AdminController is the super-admin console.
type AdminController struct {
	Users  *repository.UserRepository
	Orders *services.OrderService
}

func NewAdminController(users *repository.UserRepository, orders *services.OrderService) *AdminController {
	return &AdminController{Users: users, Orders: orders}
}

// GET /admin/users
func (h *AdminController) ListUsers(c *gin.Context) {
	users, err := h.Users.List()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, users)
}

// POST /admin/users/:id/block
func (h *AdminController) SetBlocked(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "bad user id")
		return
	}
	var in struct {
		Blocked bool `json:"blocked"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	affected, err := h.Users.SetBlocked(uint(userID), in.Blocked)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	if affected == 0 {
		resp.NotFound(c, "not found")
		return
	}
	resp.OK(c, gin.H{"blocked": in.Blocked})
}

// GET /admin/orders/stats
func (h *AdminController) OrderStats(c *gin.Context) {
	stats, err := h.Orders.StatsByStatus()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, stats)
}
