package config

import (
	"time"

	"github.com/sashkashishka/balakanyna-sub000/pkg/db"
	"github.com/sashkashishka/balakanyna-sub000/pkg/logger"
	"github.com/sashkashishka/balakanyna-sub000/pkg/redis"
)

// Config is the root application configuration.
type Config struct {
	Server   Server              `yaml:"server"`
	JWT      JWT                 `yaml:"jwt"`
	Cookie   Cookie              `yaml:"cookie"`
	CORS     CORS                `yaml:"cors"`
	Admin    Admin               `yaml:"admin"`
	Cache    Cache               `yaml:"cache"`
	Metrics  Metrics             `yaml:"metrics"`
	Database db.Config           `yaml:"database"`
	Redis    redis.Config        `yaml:"redis"`
	Log      logger.Config       `yaml:"log"`
	Sentry   logger.SentryConfig `yaml:"sentry"`
}

// Server holds the listener settings.
type Server struct {
	Port     int      `yaml:"port" env:"PORT"`
	Timeouts Timeouts `yaml:"timeouts"`
}

// Timeouts bound connection and request lifetimes.
// Close is the grace period for in-flight requests during shutdown.
type Timeouts struct {
	Connection time.Duration `yaml:"connection" env:"SERVER_CONNECTION_TIMEOUT"`
	Request    time.Duration `yaml:"request" env:"SERVER_REQUEST_TIMEOUT"`
	Close      time.Duration `yaml:"close" env:"SERVER_CLOSE_TIMEOUT"`
}

// JWT holds the token signing key and lifetime.
// Key is either a raw secret or a JSON Web Key of type "oct".
type JWT struct {
	Key            string        `yaml:"key" env:"JWT_KEY"`
	ExpirationTime time.Duration `yaml:"expiration_time" env:"JWT_EXPIRATION_TIME"`
}

// Cookie holds attributes applied to cookies set by the API.
type Cookie struct {
	Domain   string `yaml:"domain" env:"COOKIE_DOMAIN"`
	SameSite string `yaml:"same_site" env:"COOKIE_SAME_SITE"`
	Secure   bool   `yaml:"secure" env:"COOKIE_SECURE"`
}

// CORS lists origins allowed to call the API from a browser.
type CORS struct {
	Origins []string `yaml:"origins" env:"CORS_ORIGINS" envSeparator:","`
}

// Admin is created at startup unless an account with Name already exists.
type Admin struct {
	Name     string `yaml:"name" env:"ADMIN_NAME"`
	Password string `yaml:"password" env:"ADMIN_PASSWORD"`
}

// Cache configures the public task cache.
type Cache struct {
	TTL        time.Duration `yaml:"ttl" env:"CACHE_TTL"`
	MaxEntries int           `yaml:"max_entries" env:"CACHE_MAX_ENTRIES"`
}

// Metrics configures the Prometheus endpoint.
type Metrics struct {
	Path    string `yaml:"path" env:"METRICS_PATH"`
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"`
}

// Defaults returns a Config with every optional value filled in.
func Defaults() Config {
	return Config{
		Server: Server{
			Port: 8080,
			Timeouts: Timeouts{
				Connection: 2 * time.Minute,
				Request:    15 * time.Second,
				Close:      10 * time.Second,
			},
		},
		JWT: JWT{
			ExpirationTime: 24 * time.Hour,
		},
		Cookie: Cookie{
			SameSite: "lax",
		},
		Cache: Cache{
			TTL:        5 * time.Minute,
			MaxEntries: 1000,
		},
		Metrics: Metrics{
			Path:    "/metrics",
			Enabled: true,
		},
		Database: db.DefaultConfig(),
		Redis:    redis.DefaultConfig(),
		Log: logger.Config{
			Level:  "info",
			Format: "json",
		},
		Sentry: logger.SentryConfig{
			Environment: "production",
		},
	}
}
