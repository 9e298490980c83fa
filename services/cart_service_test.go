package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Bespalov-Gleb/Food-bot/entity"
	"github.com/Bespalov-Gleb/Food-bot/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCartService(t *testing.T) (*CartService, *gorm.DB, *fixture) {
	t.Helper()
	db := testDB(t)
	f := seedFixture(t, db)
	svc := NewCartService(db, repository.NewCartRepository(db), repository.NewCatalogRepository(db), 4)
	return svc, db, f
}

func TestCartAddAndGet(t *testing.T) {
	svc, _, f := newCartService(t)

	itemID, err := svc.Add(f.User.ID, &AddToCartIn{
		RestaurantID:    f.Restaurant.ID,
		DishID:          f.Burger.ID,
		Qty:             2,
		ChosenOptionIDs: []uint{f.Ketchup.ID},
	}, false)
	require.NoError(t, err)
	require.NotZero(t, itemID)

	cart, err := svc.Get(f.User.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Qty)
	assert.Equal(t, []uint{f.Ketchup.ID}, cart.Items[0].ChosenOptionIDs())
}

func TestCartAddDefaultsQtyToOne(t *testing.T) {
	svc, _, f := newCartService(t)

	_, err := svc.Add(f.User.ID, &AddToCartIn{
		RestaurantID:    f.Restaurant.ID,
		DishID:          f.Burger.ID,
		ChosenOptionIDs: []uint{f.Mayo.ID},
	}, false)
	require.NoError(t, err)

	cart, err := svc.Get(f.User.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Qty)
}

func TestCartAddRequiredOptions(t *testing.T) {
	svc, _, f := newCartService(t)

	_, err := svc.Add(f.User.ID, &AddToCartIn{
		RestaurantID: f.Restaurant.ID,
		DishID:       f.Burger.ID,
		Qty:          1,
	}, false)

	var reqErr *OptionsRequiredError
	require.ErrorAs(t, err, &reqErr)

	cart, err := svc.Get(f.User.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartAddPersistsRawOptionList(t *testing.T) {
	svc, _, f := newCartService(t)

	// a stale extra id passes validation (it counts toward no group) and
	// is stored as sent
	raw := []uint{f.Ketchup.ID, 9999}
	_, err := svc.Add(f.User.ID, &AddToCartIn{
		RestaurantID:    f.Restaurant.ID,
		DishID:          f.Burger.ID,
		Qty:             1,
		ChosenOptionIDs: raw,
	}, false)
	require.NoError(t, err)

	cart, err := svc.Get(f.User.ID)
	require.NoError(t, err)
	assert.Equal(t, raw, cart.Items[0].ChosenOptionIDs())
}

func TestCartAddDishFromWrongRestaurant(t *testing.T) {
	svc, db, f := newCartService(t)
	other, _ := seedRestaurantWithDish(t, db, "Другой", 100)

	_, err := svc.Add(f.User.ID, &AddToCartIn{
		RestaurantID:    other.ID,
		DishID:          f.Burger.ID,
		Qty:             1,
		ChosenOptionIDs: []uint{f.Ketchup.ID},
	}, false)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCartRestaurantCap(t *testing.T) {
	svc, db, f := newCartService(t)

	dishes := make([]entity.Dish, 0, 4)
	rests := make([]entity.Restaurant, 0, 4)
	for i := 0; i < 4; i++ {
		r, d := seedRestaurantWithDish(t, db, fmt.Sprintf("Р%d", i), 100)
		rests = append(rests, r)
		dishes = append(dishes, d)
	}
	for i := range dishes {
		_, err := svc.Add(f.User.ID, &AddToCartIn{
			RestaurantID: rests[i].ID, DishID: dishes[i].ID, Qty: 1,
		}, false)
		require.NoError(t, err)
	}

	// fifth distinct restaurant: refused, cart untouched
	_, err := svc.Add(f.User.ID, &AddToCartIn{
		RestaurantID:    f.Restaurant.ID,
		DishID:          f.Burger.ID,
		Qty:             1,
		ChosenOptionIDs: []uint{f.Ketchup.ID},
	}, false)

	var tmr *TooManyRestaurantsError
	require.ErrorAs(t, err, &tmr)
	assert.Equal(t, 4, tmr.Max)
	assert.Len(t, tmr.CurrentRestaurantIDs, 4)

	cart, err := svc.Get(f.User.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 4)

	// adding to a restaurant already present is still fine at the cap
	_, err = svc.Add(f.User.ID, &AddToCartIn{
		RestaurantID: rests[0].ID, DishID: dishes[0].ID, Qty: 1,
	}, false)
	require.NoError(t, err)
}

func TestCartForceEvictsOtherRestaurants(t *testing.T) {
	svc, db, f := newCartService(t)

	for i := 0; i < 4; i++ {
		r, d := seedRestaurantWithDish(t, db, fmt.Sprintf("Р%d", i), 100)
		_, err := svc.Add(f.User.ID, &AddToCartIn{RestaurantID: r.ID, DishID: d.ID, Qty: 1}, false)
		require.NoError(t, err)
	}

	_, err := svc.Add(f.User.ID, &AddToCartIn{
		RestaurantID:    f.Restaurant.ID,
		DishID:          f.Burger.ID,
		Qty:             1,
		ChosenOptionIDs: []uint{f.Ketchup.ID},
	}, true)
	require.NoError(t, err)

	cart, err := svc.Get(f.User.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, f.Restaurant.ID, cart.Items[0].RestaurantID)
}

func TestCartUpdateQtyVerbatim(t *testing.T) {
	svc, _, f := newCartService(t)

	itemID, err := svc.Add(f.User.ID, &AddToCartIn{
		RestaurantID: f.Restaurant.ID, DishID: f.Burger.ID, Qty: 2,
		ChosenOptionIDs: []uint{f.Ketchup.ID},
	}, false)
	require.NoError(t, err)

	// zero is stored as-is; checkout is where it gets filtered out
	require.NoError(t, svc.UpdateQty(f.User.ID, itemID, 0))
	cart, err := svc.Get(f.User.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 0, cart.Items[0].Qty)

	require.NoError(t, svc.UpdateQty(f.User.ID, itemID, 7))
	cart, err = svc.Get(f.User.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, cart.Items[0].Qty)
}

func TestCartUpdateQtyForeignItem(t *testing.T) {
	svc, db, f := newCartService(t)

	itemID, err := svc.Add(f.User.ID, &AddToCartIn{
		RestaurantID: f.Restaurant.ID, DishID: f.Burger.ID, Qty: 1,
		ChosenOptionIDs: []uint{f.Ketchup.ID},
	}, false)
	require.NoError(t, err)

	stranger := entity.User{Username: "petya", PasswordHash: "x"}
	require.NoError(t, db.Create(&stranger).Error)

	assert.True(t, errors.Is(svc.UpdateQty(stranger.ID, itemID, 3), ErrNotFound))
	assert.True(t, errors.Is(svc.RemoveItem(stranger.ID, itemID), ErrNotFound))
}

func TestCartRemoveItem(t *testing.T) {
	svc, _, f := newCartService(t)

	itemID, err := svc.Add(f.User.ID, &AddToCartIn{
		RestaurantID: f.Restaurant.ID, DishID: f.Burger.ID, Qty: 1,
		ChosenOptionIDs: []uint{f.Ketchup.ID},
	}, false)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(f.User.ID, itemID))
	assert.True(t, errors.Is(svc.RemoveItem(f.User.ID, itemID), ErrNotFound))
}

func TestCartClearByRestaurant(t *testing.T) {
	svc, db, f := newCartService(t)
	other, otherDish := seedRestaurantWithDish(t, db, "Другой", 150)

	_, err := svc.Add(f.User.ID, &AddToCartIn{
		RestaurantID: f.Restaurant.ID, DishID: f.Burger.ID, Qty: 1,
		ChosenOptionIDs: []uint{f.Ketchup.ID},
	}, false)
	require.NoError(t, err)
	_, err = svc.Add(f.User.ID, &AddToCartIn{RestaurantID: other.ID, DishID: otherDish.ID, Qty: 1}, false)
	require.NoError(t, err)

	rid := f.Restaurant.ID
	require.NoError(t, svc.Clear(f.User.ID, &rid))

	cart, err := svc.Get(f.User.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, other.ID, cart.Items[0].RestaurantID)

	// full clear, twice: idempotent
	require.NoError(t, svc.Clear(f.User.ID, nil))
	require.NoError(t, svc.Clear(f.User.ID, nil))
	cart, err = svc.Get(f.User.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartSetCutlery(t *testing.T) {
	svc, _, f := newCartService(t)

	require.NoError(t, svc.SetCutlery(f.User.ID, 3))
	cart, err := svc.Get(f.User.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, cart.CutleryCount)

	assert.Error(t, svc.SetCutlery(f.User.ID, -1))
}
