package controllers

import (
	"strconv"

	"github.com/Bespalov-Gleb/Food-bot/entity"
	"github.com/Bespalov-Gleb/Food-bot/pkg/resp"
	"github.com/Bespalov-Gleb/Food-bot/repository"
	"github.com/gin-gonic/gin"
)

// RestaurantController serves the public, read-only catalog.
type RestaurantController struct {
	Catalog *repository.CatalogRepository
}

func NewRestaurantController(catalog *repository.CatalogRepository) *RestaurantController {
	return &RestaurantController{Catalog: catalog}
}

// GET /restaurants
func (h *RestaurantController) List(c *gin.Context) {
	restaurants, err := h.Catalog.ListEnabledRestaurants()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, restaurants)
}

// GET /restaurants/:id
func (h *RestaurantController) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "bad restaurant id")
		return
	}
	rest, err := h.Catalog.GetRestaurant(uint(id))
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, rest)
}

// GET /restaurants/:id/menu — categories with their dishes
func (h *RestaurantController) Menu(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "bad restaurant id")
		return
	}
	categories, err := h.Catalog.ListCategories(uint(id))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	dishes, err := h.Catalog.ListDishes(uint(id))
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	byCategory := make(map[uint][]entity.Dish, len(categories))
	for _, d := range dishes {
		byCategory[d.CategoryID] = append(byCategory[d.CategoryID], d)
	}
	type categoryOut struct {
		entity.Category
		Dishes []entity.Dish `json:"dishes"`
	}
	out := make([]categoryOut, 0, len(categories))
	for _, cat := range categories {
		out = append(out, categoryOut{Category: cat, Dishes: byCategory[cat.ID]})
	}
	resp.OK(c, out)
}

// GET /dishes/:id/options
func (h *RestaurantController) DishOptions(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "bad dish id")
		return
	}
	if _, err := h.Catalog.GetDish(uint(id)); err != nil {
		writeErr(c, err)
		return
	}
	groups, err := h.Catalog.GetOptionGroups(uint(id))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	groupIDs := make([]uint, 0, len(groups))
	for _, g := range groups {
		groupIDs = append(groupIDs, g.ID)
	}
	options, err := h.Catalog.GetOptions(groupIDs)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	for i := range groups {
		for _, o := range options {
			if o.GroupID == groups[i].ID {
				groups[i].Options = append(groups[i].Options, o)
			}
		}
	}
	resp.OK(c, groups)
}
