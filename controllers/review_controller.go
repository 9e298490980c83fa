package controllers

import (
	"strconv"

	"github.com/Bespalov-Gleb/Food-bot/pkg/resp"
	"github.com/Bespalov-Gleb/Food-bot/services"
	"github.com/Bespalov-Gleb/Food-bot/utils"
	"github.com/gin-gonic/gin"
)

type ReviewController struct{ Svc *services.ReviewService }

func NewReviewController(s *services.ReviewService) *ReviewController {
	return &ReviewController{Svc: s}
}

// POST /reviews
func (h *ReviewController) Create(c *gin.Context) {
	var in services.CreateReviewIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rev, err := h.Svc.Create(utils.CurrentUserID(c), &in)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.Created(c, rev)
}

// GET /restaurants/:id/reviews
func (h *ReviewController) ListByRestaurant(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "bad restaurant id")
		return
	}
	reviews, err := h.Svc.ListByRestaurant(uint(id))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, reviews)
}
