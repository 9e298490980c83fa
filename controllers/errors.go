package controllers

import (
	"errors"
	"net/http"

	"github.com/Bespalov-Gleb/Food-bot/pkg/resp"
	"github.com/Bespalov-Gleb/Food-bot/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// writeErr maps the service error taxonomy onto HTTP. Option and cart
// errors keep their structured payloads so clients can react to them.
func writeErr(c *gin.Context, err error) {
	var optReq *services.OptionsRequiredError
	var optExc *services.OptionsExceededError
	var tooMany *services.TooManyRestaurantsError
	var belowMin *services.BelowMinimumError

	switch {
	case errors.As(err, &optReq):
		c.JSON(http.StatusBadRequest, gin.H{
			"ok": false, "error": "options_required", "groupId": optReq.GroupID,
		})
	case errors.As(err, &optExc):
		c.JSON(http.StatusBadRequest, gin.H{
			"ok": false, "error": "options_exceeded", "groupId": optExc.GroupID, "max": optExc.Max,
		})
	case errors.As(err, &tooMany):
		c.JSON(http.StatusConflict, gin.H{
			"ok": false, "error": "too_many_restaurants",
			"currentRestaurantIds": tooMany.CurrentRestaurantIDs, "max": tooMany.Max,
		})
	case errors.As(err, &belowMin):
		c.JSON(http.StatusBadRequest, gin.H{
			"ok": false, "error": "below_delivery_minimum", "missing": belowMin.Missing,
		})
	case errors.Is(err, services.ErrUserBlocked):
		resp.Forbidden(c, "user_blocked")
	case errors.Is(err, services.ErrAlreadyAccepted):
		resp.Conflict(c, "already_accepted")
	case errors.Is(err, services.ErrConflict):
		resp.Conflict(c, "conflict")
	case errors.Is(err, services.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "not found")
	case errors.Is(err, services.ErrEmptyCart), errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, services.ErrOrderNotDelivered):
		resp.BadRequest(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}
