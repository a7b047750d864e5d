package cfg

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Env           string
	Port          string
	DatabaseURL   string
	DatabaseName  string
	RedisAddr     string
	RedisPassword string
}

func LoadConfig() Config {

	if err := godotenv.Load(); err != nil {
		log.Println(".env not found, using environment variables")
	}

	cfg := Config{
		Env:           os.Getenv("ENV"),
		Port:          os.Getenv("PORT"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DatabaseName:  os.Getenv("DATABASE_NAME"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	if cfg.Port == "" {
		cfg.Port = "8000"
	}

	return cfg
}

// StoreConfigured reports whether enough configuration is present to reach
// the document store. When false the server still starts, but every store
// operation fails with a server error.
func (c Config) StoreConfigured() bool {
	return c.DatabaseURL != "" && c.DatabaseName != ""
}
