package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBSource string
	Port     string

	JWTSecret  string
	JWTTTL     time.Duration
	RefreshTTL time.Duration

	MaxCartRestaurants int
	WatchdogInterval   time.Duration

	TelegramToken       string
	TelegramAdminChatID int64
	WebAppURL           string
}

func LoadConfig() *Config {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	return &Config{
		DBSource:   getEnv("DB_SOURCE", "food.db"),
		Port:       getEnv("PORT", "8000"),
		JWTSecret:  getEnv("JWT_SECRET", "changeme"),
		JWTTTL:     time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,
		RefreshTTL: time.Duration(getEnvInt("REFRESH_TTL_DAYS", 30)) * 24 * time.Hour,

		MaxCartRestaurants: getEnvInt("MAX_CART_RESTAURANTS", 4),
		WatchdogInterval:   time.Duration(getEnvInt("WATCHDOG_INTERVAL_SEC", 10)) * time.Second,

		TelegramToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramAdminChatID: getEnvInt64("TELEGRAM_ADMIN_CHAT_ID", 0),
		WebAppURL:           os.Getenv("WEBAPP_URL"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: bad int for %s: %q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvInt64(key string, fallback int64) int64 {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("config: bad int for %s: %q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
