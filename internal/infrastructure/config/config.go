package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	BackendFile   = "file"
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	Port         string        `env:"PORT,           default=8080"`
	Env          string        `env:"ENV,            default=development"`
	LogLevel     string        `env:"LOG_LEVEL,      default=info"`
	JWTSecret    string        `env:"JWT_SECRET,     required"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN, default=24h"`

	Store StoreConfig
	Mongo MongoConfig
	Redis RedisConfig
	Admin AdminConfig
}

type StoreConfig struct {
	Backend string `env:"STORE_BACKEND, default=file"`
	Path    string `env:"STORE_PATH,    default=data/db.json"`
}

type MongoConfig struct {
	URI        string `env:"MONGO_URI,        default=mongodb://localhost:27017"`
	Database   string `env:"MONGO_DB,         default=smarttodo"`
	Collection string `env:"MONGO_COLLECTION, default=documents"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
	Key  string `env:"REDIS_KEY,  default=smarttodo:document"`
}

type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL,    default=admin@smarttodo.com"`
	Password string `env:"ADMIN_PASSWORD, default=admin123"`
}

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads a .env file when present, then processes the environment with
// go-envconfig. Variables already set in the environment win over .env.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load(".env")
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg.Store.Backend = strings.ToLower(strings.TrimSpace(cfg.Store.Backend))
	switch cfg.Store.Backend {
	case BackendFile, BackendMongo, BackendRedis, BackendMemory:
	default:
		return nil, fmt.Errorf("config: unknown STORE_BACKEND %q", cfg.Store.Backend)
	}
	return &cfg, nil
}
