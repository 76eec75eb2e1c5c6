package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	EnvDevelopment = "development"

	StoreFile  = "file"
	StoreRedis = "redis"
	StoreMongo = "mongo"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Session SessionConfig
	Store   StoreConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	API     APIConfig
}

type SessionConfig struct {
	JWTSecret    string        `env:"JWT_SECRET"`
	TTL          time.Duration `env:"SESSION_TTL,   default=24h"`
	CookieSecure bool          `env:"COOKIE_SECURE, default=false"`
}

type StoreConfig struct {
	Driver   string `env:"STORE_DRIVER, default=file"`
	DataFile string `env:"DATA_FILE,    default=data/data.json"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=fichedesk"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
	Key      string `env:"REDIS_KEY,  default=fichedesk:snapshot"`
}

type APIConfig struct {
	DefaultPageLimit int     `env:"DEFAULT_PAGE_LIMIT, default=10"`
	MaxPageLimit     int     `env:"MAX_PAGE_LIMIT,     default=100"`
	Timezone         string  `env:"TIMEZONE,           default=Europe/Paris"`
	LoginRate        float64 `env:"LOGIN_RATE,         default=1"`
	LoginBurst       int     `env:"LOGIN_BURST,        default=5"`
}

// devSecret signs sessions in development when JWT_SECRET is unset.
const devSecret = "fichedesk-development-secret"

// Load reads configuration from environment variables using go-envconfig.
// A .env file in the working directory is applied first when present.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Session.JWTSecret == "" {
		if c.Env != EnvDevelopment {
			return errors.New("JWT_SECRET is required outside development")
		}
		c.Session.JWTSecret = devSecret
	}
	switch c.Store.Driver {
	case StoreFile, StoreRedis, StoreMongo:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if _, err := time.LoadLocation(c.API.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE: %w", err)
	}
	return nil
}

// Location returns the timezone used to bucket analytics by month.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.API.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
