package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret signs every issued token; there is no acceptable default.
	JWTSecret     string        `env:"JWT_SECRET, required"`
	JWTTTL        time.Duration `env:"JWT_TTL,         default=1h"`
	JWTRefreshTTL time.Duration `env:"JWT_REFRESH_TTL, default=168h"`

	// ResetCode is the one-time admin password reset code.
	ResetCode string `env:"RESET_CODE, required"`

	// MonitoringURL is the base URL of the monitoring service. Empty disables
	// removal notifications.
	MonitoringURL string `env:"MONITORING_URL"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=household"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
// A missing required key is a fatal configuration error, surfaced at startup
// rather than per request.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
