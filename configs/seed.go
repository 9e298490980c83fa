package configs

import (
	"log"

	"github.com/Bespalov-Gleb/Food-bot/entity"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the super-admin account on first boot.
func SeedAdmin() error {
	db := DB()
	username := getEnv("ADMIN_USERNAME", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if username == "" || pass == "" {
		log.Println("skip seeding admin: missing ADMIN_USERNAME/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{
		Username:     username,
		PasswordHash: string(hash),
		Name:         "Admin",
		Role:         entity.RoleAdmin,
	}
	return db.Create(&admin).Error
}

// SeedDemo loads a small demo catalog so a fresh install is browsable.
// Idempotent: skipped once any restaurant exists.
func SeedDemo() error {
	db := DB()

	var count int64
	db.Model(&entity.Restaurant{}).Count(&count)
	if count > 0 {
		return nil
	}

	restaurants := []entity.Restaurant{
		{Name: "Вкусно и точка", IsEnabled: true, RatingAgg: 4.6, DeliveryMinSum: 600, DeliveryFee: 99,
			DeliveryTimeMinutes: 60, Address: "Ленина 1", Phone: "+7 900 000-00-01", WorkCloseMin: 1440},
		{Name: "Чиббис", IsEnabled: true, RatingAgg: 4.8, DeliveryMinSum: 800, DeliveryFee: 0,
			DeliveryTimeMinutes: 50, Address: "Победы 10", Phone: "+7 900 000-00-02", WorkCloseMin: 1440},
	}
	for i := range restaurants {
		if err := db.Create(&restaurants[i]).Error; err != nil {
			return err
		}
	}

	combo := entity.Category{RestaurantID: restaurants[0].ID, Name: "Комбо", Sort: 1}
	burgers := entity.Category{RestaurantID: restaurants[0].ID, Name: "Бургеры", Sort: 2}
	pizza := entity.Category{RestaurantID: restaurants[1].ID, Name: "Пицца", Sort: 1}
	for _, c := range []*entity.Category{&combo, &burgers, &pizza} {
		if err := db.Create(c).Error; err != nil {
			return err
		}
	}

	dishCombo := entity.Dish{RestaurantID: restaurants[0].ID, CategoryID: combo.ID,
		Name: "Комбо №1", Description: "Набор", Price: 399, IsAvailable: true}
	dishBurger := entity.Dish{RestaurantID: restaurants[0].ID, CategoryID: burgers.ID,
		Name: "Бургер", Description: "Сырный", Price: 249, IsAvailable: true, HasOptions: true}
	dishPizza := entity.Dish{RestaurantID: restaurants[1].ID, CategoryID: pizza.ID,
		Name: "Пицца Маргарита", Description: "30см", Price: 549, IsAvailable: true, HasOptions: true}
	for _, d := range []*entity.Dish{&dishCombo, &dishBurger, &dishPizza} {
		if err := db.Create(d).Error; err != nil {
			return err
		}
	}

	extras := entity.OptionGroup{DishID: dishBurger.ID, Name: "Добавки", MinSelect: 0, MaxSelect: 2}
	sauce := entity.OptionGroup{DishID: dishBurger.ID, Name: "Соус", MinSelect: 1, MaxSelect: 1, Required: true}
	size := entity.OptionGroup{DishID: dishPizza.ID, Name: "Размер", MinSelect: 1, MaxSelect: 1, Required: true}
	for _, g := range []*entity.OptionGroup{&extras, &sauce, &size} {
		if err := db.Create(g).Error; err != nil {
			return err
		}
	}

	options := []entity.Option{
		{GroupID: extras.ID, Name: "Сыр", PriceDelta: 30},
		{GroupID: extras.ID, Name: "Бекон", PriceDelta: 40},
		{GroupID: sauce.ID, Name: "Кетчуп"},
		{GroupID: sauce.ID, Name: "BBQ"},
		{GroupID: size.ID, Name: "30 см"},
		{GroupID: size.ID, Name: "40 см", PriceDelta: 150},
	}
	for i := range options {
		if err := db.Create(&options[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
