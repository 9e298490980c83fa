package controllers

import (
	"errors"

	"github.com/Bespalov-Gleb/Food-bot/pkg/resp"
	"github.com/Bespalov-Gleb/Food-bot/repository"
	"github.com/Bespalov-Gleb/Food-bot/services"
	"github.com/Bespalov-Gleb/Food-bot/utils"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Svc   *services.AuthService
	Users *repository.UserRepository
}

func NewAuthController(svc *services.AuthService, users *repository.UserRepository) *AuthController {
	return &AuthController{Svc: svc, Users: users}
}

// POST /auth/register
func (h *AuthController) Register(c *gin.Context) {
	var in services.RegisterIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	u, err := h.Svc.Register(&in)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			resp.Conflict(c, "username taken")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, u)
}

// POST /auth/login
func (h *AuthController) Login(c *gin.Context) {
	var in struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	u, pair, err := h.Svc.Login(in.Username, in.Password)
	if err != nil {
		if errors.Is(err, services.ErrBadCredentials) {
			resp.Unauthorized(c, err.Error())
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"user": u, "tokens": pair})
}

// POST /auth/refresh
func (h *AuthController) Refresh(c *gin.Context) {
	var in struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	pair, err := h.Svc.Refresh(in.RefreshToken)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, pair)
}

// POST /auth/logout
func (h *AuthController) Logout(c *gin.Context) {
	var in struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.Logout(in.RefreshToken); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{})
}

// GET /auth/me
func (h *AuthController) Me(c *gin.Context) {
	u, err := h.Users.GetByID(utils.CurrentUserID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, u)
}

// PATCH /auth/me
func (h *AuthController) UpdateMe(c *gin.Context) {
	// explicit optional fields, no reflection over loose payloads
	var in struct {
		Name      *string `json:"name"`
		Phone     *string `json:"phone"`
		Address   *string `json:"address"`
		BirthDate *string `json:"birthDate"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	u, err := h.Users.GetByID(utils.CurrentUserID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.Address != nil {
		u.Address = *in.Address
	}
	if in.BirthDate != nil {
		u.BirthDate = *in.BirthDate
	}
	if err := h.Users.Save(u); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, u)
}
