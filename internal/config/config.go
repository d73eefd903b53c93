package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env             string
	Port            string
	DatabaseURL     string // Postgres DSN; when empty the sqlite fallback is used
	DBPath          string // sqlite file path (default data/pets.db, ":memory:" supported)
	RedisURL        string // optional; rate limiting and health degrade gracefully without it
	AllowedOrigins  []string
	RateLimitWindow time.Duration
	RateLimitMax    int
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "3000"
	}
	env := viper.GetString("NODE_ENV")
	if env == "" {
		env = viper.GetString("APP_ENV")
	}
	if env == "" {
		env = "development"
	}

	dbPath := viper.GetString("DB_PATH")
	if dbPath == "" {
		dbPath = "data/pets.db"
	}

	window := viper.GetInt("RATE_LIMIT_TTL")
	if window <= 0 {
		window = 60000
	}
	limit := viper.GetInt("RATE_LIMIT_LIMIT")
	if limit <= 0 {
		limit = 100
	}

	return &Config{
		Env:             env,
		Port:            port,
		DatabaseURL:     viper.GetString("DATABASE_URL"),
		DBPath:          dbPath,
		RedisURL:        viper.GetString("REDIS_URL"),
		AllowedOrigins:  splitOrigins(viper.GetString("ALLOWED_ORIGINS")),
		RateLimitWindow: time.Duration(window) * time.Millisecond,
		RateLimitMax:    limit,
	}, nil
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
