package config

import "os"

// devSecret signs tokens when JWT_SECRET is unset. Fine for local
// development, never for production.
const devSecret = "your-secret-key"

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port        string
	PostgresDSN string
	MongoURI    string
	MongoDB     string
	JWTSecret   string
	Debug       bool
}

func Load() *Config {
	return &Config{
		Port:        getenv("PORT", "8080"),
		PostgresDSN: getenv("POSTGRES_DSN", ""),
		MongoURI:    getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getenv("MONGO_DB", "post_board"),
		JWTSecret:   getenv("JWT_SECRET", devSecret),
		Debug:       getenv("ENV", "production") == "development",
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
