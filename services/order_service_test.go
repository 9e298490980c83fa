package services

import (
	"errors"
	"testing"

	"github.com/Bespalov-Gleb/Food-bot/entity"
	"github.com/Bespalov-Gleb/Food-bot/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type orderEnv struct {
	DB       *gorm.DB
	Fixture  *fixture
	Orders   *OrderService
	Carts    *CartService
	Notifier *recordNotifier
	Sink     *recordSink
}

func newOrderEnv(t *testing.T) *orderEnv {
	t.Helper()
	db := testDB(t)
	f := seedFixture(t, db)

	cartRepo := repository.NewCartRepository(db)
	catalog := repository.NewCatalogRepository(db)
	users := repository.NewUserRepository(db)
	orders := repository.NewOrderRepository(db)

	notifier := &recordNotifier{}
	sink := &recordSink{}

	return &orderEnv{
		DB:       db,
		Fixture:  f,
		Orders:   NewOrderService(db, orders, cartRepo, catalog, users, notifier, sink, ""),
		Carts:    NewCartService(db, cartRepo, catalog, 4),
		Notifier: notifier,
		Sink:     sink,
	}
}

func burgerSubmission(f *fixture, qty int) *SubmitOrderIn {
	return &SubmitOrderIn{
		RestaurantID: f.Restaurant.ID,
		TotalPrice:   f.Burger.Price * int64(qty),
		DeliveryType: entity.DeliveryTypeDelivery,
		Address:      "ул. Ленина, 1",
		Phone:        "+70000000000",
		Items: []SubmitOrderItem{{
			DishID:          f.Burger.ID,
			Price:           f.Burger.Price,
			Qty:             qty,
			ChosenOptionIDs: []uint{f.Ketchup.ID},
		}},
	}
}

func TestSubmitDeliveryTotal(t *testing.T) {
	env := newOrderEnv(t)
	f := env.Fixture

	out, err := env.Orders.Submit(f.User.ID, burgerSubmission(f, 2))
	require.NoError(t, err)

	// 2 × 249 + 99 delivery fee
	assert.Equal(t, int64(597), out.Total)

	o, err := env.Orders.GetForUser(f.User.ID, out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusSent, o.Status)
	assert.Equal(t, int64(597), o.TotalPrice)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Бургер (Кетчуп)", o.Items[0].Name)
	assert.Equal(t, int64(249), o.Items[0].Price)
	assert.Equal(t, []uint{f.Ketchup.ID}, o.Items[0].ChosenOptionIDs())

	ev, ok := env.Sink.Last()
	require.True(t, ok)
	assert.Equal(t, "created", ev.Type)
	assert.Equal(t, out.ID, ev.OrderID)
}

func TestSubmitPickupSkipsFeeAndMinimum(t *testing.T) {
	env := newOrderEnv(t)
	f := env.Fixture

	in := burgerSubmission(f, 1)
	in.DeliveryType = entity.DeliveryTypePickup
	in.TotalPrice = 249 // under the 300 delivery minimum, but pickup

	out, err := env.Orders.Submit(f.User.ID, in)
	require.NoError(t, err)
	assert.Equal(t, int64(249), out.Total)
}

func TestSubmitBelowDeliveryMinimum(t *testing.T) {
	env := newOrderEnv(t)
	f := env.Fixture

	in := burgerSubmission(f, 1)
	in.TotalPrice = 249

	_, err := env.Orders.Submit(f.User.ID, in)
	var minErr *BelowMinimumError
	require.ErrorAs(t, err, &minErr)
	assert.Equal(t, int64(51), minErr.Missing)
}

func TestSubmitEmptyOrder(t *testing.T) {
	env := newOrderEnv(t)
	f := env.Fixture

	in := burgerSubmission(f, 1)
	in.Items = nil
	_, err := env.Orders.Submit(f.User.ID, in)
	assert.True(t, errors.Is(err, ErrEmptyOrder))
}

func TestSubmitBlockedUser(t *testing.T) {
	env := newOrderEnv(t)
	f := env.Fixture

	require.NoError(t, env.DB.Model(&entity.User{}).
		Where("id = ?", f.User.ID).Update("is_blocked", true).Error)

	_, err := env.Orders.Submit(f.User.ID, burgerSubmission(f, 2))
	assert.True(t, errors.Is(err, ErrUserBlocked))
}

func TestSubmitRequiredOptionsEnforced(t *testing.T) {
	env := newOrderEnv(t)
	f := env.Fixture

	in := burgerSubmission(f, 2)
	in.Items[0].ChosenOptionIDs = nil
	_, err := env.Orders.Submit(f.User.ID, in)

	var reqErr *OptionsRequiredError
	require.ErrorAs(t, err, &reqErr)
}

func TestSubmitDefaultsPaymentToCash(t *testing.T) {
	env := newOrderEnv(t)
	f := env.Fixture

	out, err := env.Orders.Submit(f.User.ID, burgerSubmission(f, 2))
	require.NoError(t, err)

	o, err := env.Orders.GetForUser(f.User.ID, out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentCash, o.PaymentMethod)
}

func TestSubmitFromCart(t *testing.T) {
	env := newOrderEnv(t)
	f := env.Fixture
	other, otherDish := seedRestaurantWithDish(t, env.DB, "Другой", 150)

	_, err := env.Carts.Add(f.User.ID, &AddToCartIn{
		RestaurantID: f.Restaurant.ID, DishID: f.Burger.ID, Qty: 2,
		ChosenOptionIDs: []uint{f.Ketchup.ID},
	}, false)
	require.NoError(t, err)
	_, err = env.Carts.Add(f.User.ID, &AddToCartIn{
		RestaurantID: other.ID, DishID: otherDish.ID, Qty: 1,
	}, false)
	require.NoError(t, err)

	out, err := env.Orders.SubmitFromCart(f.User.ID, &CheckoutFromCartIn{
		RestaurantID: f.Restaurant.ID,
		DeliveryType: entity.DeliveryTypeDelivery,
		Address:      "ул. Ленина, 1",
		Phone:        "+70000000000",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(597), out.Total)

	// only the submitted restaurant's share of the cart is cleared
	cart, err := env.Carts.Get(f.User.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, other.ID, cart.Items[0].RestaurantID)
}

func TestSubmitFromCartSkipsZeroQtyLines(t *testing.T) {
	env := newOrderEnv(t)
	f := env.Fixture

	itemID, err := env.Carts.Add(f.User.ID, &AddToCartIn{
		RestaurantID: f.Restaurant.ID, DishID: f.Burger.ID, Qty: 2,
		ChosenOptionIDs: []uint{f.Ketchup.ID},
	}, false)
	require.NoError(t, err)
	require.NoError(t, env.Carts.UpdateQty(f.User.ID, itemID, 0))

	_, err = env.Orders.SubmitFromCart(f.User.ID, &CheckoutFromCartIn{
		RestaurantID: f.Restaurant.ID,
		DeliveryType: entity.DeliveryTypePickup,
		Phone:        "+70000000000",
	})
	assert.True(t, errors.Is(err, ErrEmptyCart))
}

func TestOrderOwnershipDoesNotLeak(t *testing.T) {
	env := newOrderEnv(t)
	f := env.Fixture

	out, err := env.Orders.Submit(f.User.ID, burgerSubmission(f, 2))
	require.NoError(t, err)

	stranger := entity.User{Username: "petya", PasswordHash: "x"}
	require.NoError(t, env.DB.Create(&stranger).Error)
	_, err = env.Orders.GetForUser(stranger.ID, out.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	// a foreign restaurant reads the same as a missing order
	otherRest, _ := seedRestaurantWithDish(t, env.DB, "Чужой", 100)
	_, err = env.Orders.GetForRestaurant(otherRest.ID, out.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = env.Orders.GetForRestaurant(otherRest.ID, 99999)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStatsByStatus(t *testing.T) {
	env := newOrderEnv(t)
	f := env.Fixture

	for i := 0; i < 3; i++ {
		_, err := env.Orders.Submit(f.User.ID, burgerSubmission(f, 2))
		require.NoError(t, err)
	}

	stats, err := env.Orders.StatsByStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats[entity.OrderStatusSent])
}
