package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	MongoURI      string
	MongoDB       string
	MongoPoolSize int
	CloudinaryURL string
	LogFile       string
	// SlugStrict turns slug-collision retry exhaustion into a hard error
	// instead of proceeding with a possibly colliding slug.
	SlugStrict bool
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() Config {
	_ = godotenv.Load() // load .env if it exists

	pool := 10
	if v := os.Getenv("MONGODB_POOL_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			pool = n
		}
	}
	strict := false
	if v := os.Getenv("SLUG_COLLISION_STRICT"); v == "1" || strings.ToLower(v) == "true" {
		strict = true
	}

	cfg := Config{
		Port:          getenv("PORT", "8080"),
		MongoURI:      os.Getenv("MONGODB_URI"),
		MongoDB:       getenv("MONGODB_DB", "patharwalay"),
		MongoPoolSize: pool,
		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
		LogFile:       os.Getenv("LOG_FILE"),
		SlugStrict:    strict,
	}
	log.Printf("[config] PORT=%s MONGODB_DB=%s MONGODB_POOL_SIZE=%d SLUG_COLLISION_STRICT=%t", cfg.Port, cfg.MongoDB, cfg.MongoPoolSize, cfg.SlugStrict)
	return cfg
}
