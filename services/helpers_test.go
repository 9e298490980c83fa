package services

import (
	"sync"
	"testing"

	"github.com/Bespalov-Gleb/Food-bot/entity"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// gorm pools connections; a second connection to :memory: would be a
	// different empty database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.User{}, &entity.Session{},
		&entity.Restaurant{}, &entity.RestaurantAdmin{},
		&entity.Category{}, &entity.Dish{},
		&entity.OptionGroup{}, &entity.Option{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.Review{},
	))
	return db
}

// fixture is the shared catalog: one restaurant with a burger that has a
// required sauce group (zero-delta options) and a pizza with an optional
// extras group (paid options), plus one ordinary user.
type fixture struct {
	Restaurant entity.Restaurant
	Burger     entity.Dish
	Pizza      entity.Dish

	SauceGroup entity.OptionGroup
	Ketchup    entity.Option
	Mayo       entity.Option

	ExtrasGroup entity.OptionGroup
	Cheese      entity.Option // +30
	Bacon       entity.Option // +50

	User entity.User
}

func seedFixture(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	f := &fixture{}

	f.Restaurant = entity.Restaurant{
		Name:           "Бургерная",
		IsEnabled:      true,
		DeliveryMinSum: 300,
		DeliveryFee:    99,
	}
	require.NoError(t, db.Create(&f.Restaurant).Error)

	cat := entity.Category{RestaurantID: f.Restaurant.ID, Name: "Основное"}
	require.NoError(t, db.Create(&cat).Error)

	f.Burger = entity.Dish{
		RestaurantID: f.Restaurant.ID, CategoryID: cat.ID,
		Name: "Бургер", Price: 249, IsAvailable: true, HasOptions: true,
	}
	require.NoError(t, db.Create(&f.Burger).Error)

	f.SauceGroup = entity.OptionGroup{
		DishID: f.Burger.ID, Name: "Соус", Required: true, MinSelect: 0, MaxSelect: 1,
	}
	require.NoError(t, db.Create(&f.SauceGroup).Error)
	f.Ketchup = entity.Option{GroupID: f.SauceGroup.ID, Name: "Кетчуп", PriceDelta: 0}
	f.Mayo = entity.Option{GroupID: f.SauceGroup.ID, Name: "Майонез", PriceDelta: 0}
	require.NoError(t, db.Create(&f.Ketchup).Error)
	require.NoError(t, db.Create(&f.Mayo).Error)

	f.Pizza = entity.Dish{
		RestaurantID: f.Restaurant.ID, CategoryID: cat.ID,
		Name: "Пицца", Price: 399, IsAvailable: true, HasOptions: true,
	}
	require.NoError(t, db.Create(&f.Pizza).Error)

	f.ExtrasGroup = entity.OptionGroup{
		DishID: f.Pizza.ID, Name: "Добавки", Required: false, MaxSelect: 2,
	}
	require.NoError(t, db.Create(&f.ExtrasGroup).Error)
	f.Cheese = entity.Option{GroupID: f.ExtrasGroup.ID, Name: "Сыр", PriceDelta: 30}
	f.Bacon = entity.Option{GroupID: f.ExtrasGroup.ID, Name: "Бекон", PriceDelta: 50}
	require.NoError(t, db.Create(&f.Cheese).Error)
	require.NoError(t, db.Create(&f.Bacon).Error)

	f.User = entity.User{Username: "vasya", PasswordHash: "x", Role: entity.RoleUser}
	require.NoError(t, db.Create(&f.User).Error)

	return f
}

// seedRestaurantWithDish adds another restaurant with one optionless dish.
func seedRestaurantWithDish(t *testing.T, db *gorm.DB, name string, price int64) (entity.Restaurant, entity.Dish) {
	t.Helper()
	rest := entity.Restaurant{Name: name, IsEnabled: true}
	require.NoError(t, db.Create(&rest).Error)
	dish := entity.Dish{RestaurantID: rest.ID, Name: name + " блюдо", Price: price, IsAvailable: true}
	require.NoError(t, db.Create(&dish).Error)
	return rest, dish
}

// snapshotFor builds a pricing snapshot straight from entity values,
// bypassing the store.
func snapshotFor(f *fixture) *CatalogSnapshot {
	return NewCatalogSnapshot(
		[]entity.Dish{f.Burger, f.Pizza},
		[]entity.OptionGroup{f.SauceGroup, f.ExtrasGroup},
		[]entity.Option{f.Ketchup, f.Mayo, f.Cheese, f.Bacon},
	)
}

type sentMessage struct {
	UserID uint
	Text   string
}

// recordNotifier captures notifications for assertions.
type recordNotifier struct {
	mu    sync.Mutex
	Admin []string
	Users []sentMessage
}

func (n *recordNotifier) NotifyAdmin(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Admin = append(n.Admin, text)
}

func (n *recordNotifier) NotifyUser(userID uint, text, _, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Users = append(n.Users, sentMessage{UserID: userID, Text: text})
}

func (n *recordNotifier) NotifyRestaurantAdmins(uint, string, string, string) {}

// recordSink captures published feed events.
type recordSink struct {
	mu     sync.Mutex
	Events []OrderEvent
}

func (s *recordSink) Publish(ev OrderEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, ev)
}

func (s *recordSink) Last() (OrderEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Events) == 0 {
		return OrderEvent{}, false
	}
	return s.Events[len(s.Events)-1], true
}
