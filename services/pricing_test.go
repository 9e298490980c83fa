package services

import (
	"errors"
	"testing"

	"github.com/Bespalov-Gleb/Food-bot/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func pricingFixture() *fixture {
	f := &fixture{
		Burger: entity.Dish{Model: gorm.Model{ID: 1}, RestaurantID: 1, Name: "Бургер", Price: 249, HasOptions: true},
		Pizza:  entity.Dish{Model: gorm.Model{ID: 2}, RestaurantID: 1, Name: "Пицца", Price: 399, HasOptions: true},

		SauceGroup: entity.OptionGroup{Model: gorm.Model{ID: 10}, DishID: 1, Name: "Соус", Required: true, MaxSelect: 1},
		Ketchup:    entity.Option{Model: gorm.Model{ID: 100}, GroupID: 10, Name: "Кетчуп"},
		Mayo:       entity.Option{Model: gorm.Model{ID: 101}, GroupID: 10, Name: "Майонез"},

		ExtrasGroup: entity.OptionGroup{Model: gorm.Model{ID: 11}, DishID: 2, Name: "Добавки", MaxSelect: 2},
		Cheese:      entity.Option{Model: gorm.Model{ID: 110}, GroupID: 11, Name: "Сыр", PriceDelta: 30},
		Bacon:       entity.Option{Model: gorm.Model{ID: 111}, GroupID: 11, Name: "Бекон", PriceDelta: 50},
	}
	return f
}

func TestPriceItemsBasic(t *testing.T) {
	f := pricingFixture()
	snap := snapshotFor(f)

	priced, subtotal, err := PriceItems([]PriceRequestItem{
		{DishID: f.Burger.ID, UnitPrice: 249, Qty: 2, ChosenOptionIDs: []uint{f.Ketchup.ID}},
	}, snap)
	require.NoError(t, err)
	require.Len(t, priced, 1)

	assert.Equal(t, int64(498), subtotal)
	assert.Equal(t, int64(498), priced[0].LineTotal)
	// zero-delta option shows up in the name without a price suffix
	assert.Equal(t, "Бургер (Кетчуп)", priced[0].Name)
	// base price stays base; options never leak into it
	assert.Equal(t, int64(249), priced[0].UnitPrice)
}

func TestPriceItemsPaidOptions(t *testing.T) {
	f := pricingFixture()
	snap := snapshotFor(f)

	priced, subtotal, err := PriceItems([]PriceRequestItem{
		{DishID: f.Pizza.ID, UnitPrice: 399, Qty: 3, ChosenOptionIDs: []uint{f.Cheese.ID, f.Bacon.ID}},
	}, snap)
	require.NoError(t, err)

	// (399 + 30 + 50) * 3
	assert.Equal(t, int64(1437), subtotal)
	assert.Equal(t, "Пицца (Сыр+30, Бекон+50)", priced[0].Name)
}

func TestPriceItemsDeterministic(t *testing.T) {
	f := pricingFixture()
	snap := snapshotFor(f)
	req := []PriceRequestItem{
		{DishID: f.Burger.ID, UnitPrice: 249, Qty: 2, ChosenOptionIDs: []uint{f.Mayo.ID}},
		{DishID: f.Pizza.ID, UnitPrice: 399, Qty: 1, ChosenOptionIDs: []uint{f.Cheese.ID}},
	}

	first, firstSub, err := PriceItems(req, snap)
	require.NoError(t, err)
	second, secondSub, err := PriceItems(req, snap)
	require.NoError(t, err)

	assert.Equal(t, firstSub, secondSub)
	assert.Equal(t, first, second)
}

func TestPriceItemsRequiredGroup(t *testing.T) {
	f := pricingFixture()
	snap := snapshotFor(f)

	_, _, err := PriceItems([]PriceRequestItem{
		{DishID: f.Burger.ID, UnitPrice: 249, Qty: 1},
	}, snap)

	var reqErr *OptionsRequiredError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, f.SauceGroup.ID, reqErr.GroupID)
}

func TestPriceItemsMaxExceeded(t *testing.T) {
	f := pricingFixture()
	snap := snapshotFor(f)

	_, _, err := PriceItems([]PriceRequestItem{
		{DishID: f.Burger.ID, UnitPrice: 249, Qty: 1, ChosenOptionIDs: []uint{f.Ketchup.ID, f.Mayo.ID}},
	}, snap)

	var exErr *OptionsExceededError
	require.ErrorAs(t, err, &exErr)
	assert.Equal(t, 1, exErr.Max)
}

func TestPriceItemsUnknownOptionsDropped(t *testing.T) {
	f := pricingFixture()
	snap := snapshotFor(f)

	// a stale id alongside a valid selection: priced as if it were absent
	priced, subtotal, err := PriceItems([]PriceRequestItem{
		{DishID: f.Burger.ID, UnitPrice: 249, Qty: 1, ChosenOptionIDs: []uint{f.Ketchup.ID, 9999}},
	}, snap)
	require.NoError(t, err)
	assert.Equal(t, int64(249), subtotal)
	assert.Equal(t, "Бургер (Кетчуп)", priced[0].Name)
	// the raw list survives on the priced line
	assert.Equal(t, []uint{f.Ketchup.ID, 9999}, priced[0].ChosenOptionIDs)
}

func TestPriceItemsUnknownOptionDoesNotSatisfyRequired(t *testing.T) {
	f := pricingFixture()
	snap := snapshotFor(f)

	_, _, err := PriceItems([]PriceRequestItem{
		{DishID: f.Burger.ID, UnitPrice: 249, Qty: 1, ChosenOptionIDs: []uint{9999}},
	}, snap)

	var reqErr *OptionsRequiredError
	require.ErrorAs(t, err, &reqErr)
}

func TestPriceItemsUnknownDish(t *testing.T) {
	f := pricingFixture()
	snap := snapshotFor(f)

	_, _, err := PriceItems([]PriceRequestItem{
		{DishID: 777, UnitPrice: 100, Qty: 1},
	}, snap)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestPriceItemsMaxSelectZeroUnbounded(t *testing.T) {
	f := pricingFixture()
	f.ExtrasGroup.MaxSelect = 0
	snap := snapshotFor(f)

	_, subtotal, err := PriceItems([]PriceRequestItem{
		{DishID: f.Pizza.ID, UnitPrice: 399, Qty: 1, ChosenOptionIDs: []uint{f.Cheese.ID, f.Bacon.ID}},
	}, snap)
	require.NoError(t, err)
	assert.Equal(t, int64(479), subtotal)
}

func TestPriceItemsDishWithoutGroups(t *testing.T) {
	f := pricingFixture()
	// flagged has_options but no groups persisted: treated as optionless
	snap := NewCatalogSnapshot([]entity.Dish{f.Burger}, nil, nil)

	_, subtotal, err := PriceItems([]PriceRequestItem{
		{DishID: f.Burger.ID, UnitPrice: 249, Qty: 1},
	}, snap)
	require.NoError(t, err)
	assert.Equal(t, int64(249), subtotal)
}

func TestSubtotalWithOptionsAgreesWithPriceItems(t *testing.T) {
	f := pricingFixture()
	snap := snapshotFor(f)

	req := []PriceRequestItem{
		{DishID: f.Pizza.ID, UnitPrice: 399, Qty: 2, ChosenOptionIDs: []uint{f.Bacon.ID}},
	}
	_, wantSubtotal, err := PriceItems(req, snap)
	require.NoError(t, err)

	item := entity.OrderItem{DishID: f.Pizza.ID, Price: 399, Qty: 2}
	item.SetChosenOptionIDs([]uint{f.Bacon.ID})
	assert.Equal(t, wantSubtotal, SubtotalWithOptions([]entity.OrderItem{item}, snap))
}
