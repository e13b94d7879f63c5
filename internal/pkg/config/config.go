package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Session store backends selectable via EDU_SESSION_BACKEND.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

type Config struct {
	APIBaseURL  string        `env:"EDU_API_BASE_URL,    default=http://localhost:5000"`
	HTTPTimeout time.Duration `env:"EDU_HTTP_TIMEOUT,    default=30s"`
	StateDir    string        `env:"EDU_STATE_DIR"`
	DownloadDir string        `env:"EDU_DOWNLOAD_DIR,    default=."`
	LogLevel    string        `env:"LOG_LEVEL,           default=info"`
	LogPretty   bool          `env:"LOG_PRETTY,          default=true"`

	Session SessionConfig
	Redis   RedisConfig
}

// SessionConfig selects where the session keys are persisted.
type SessionConfig struct {
	Backend string `env:"EDU_SESSION_BACKEND, default=file"`
}

// RedisConfig applies only when the redis session backend is selected.
type RedisConfig struct {
	Addr string `env:"EDU_REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"EDU_REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
