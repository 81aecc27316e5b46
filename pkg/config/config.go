package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable this service reads.
const EnvPrefix = "pharmadash"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Content ContentAPIConfig
	Cache   CacheConfig
	Cron    CronConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PHARMADASH_APP_ENV" required:"true"`
	Port         string `envconfig:"PHARMADASH_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"PHARMADASH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PHARMADASH_LOG_WARN_STACK" default:"false"`
	CORSOrigins  string `envconfig:"PHARMADASH_CORS_ORIGINS" default:"*"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// Origins splits the configured comma-separated CORS allowlist.
func (a AppConfig) Origins() []string {
	parts := strings.Split(a.CORSOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// DBConfig describes the local report-history store. The sqlite driver is
// the default so the snapshot worker can run without external services.
type DBConfig struct {
	Driver string `envconfig:"PHARMADASH_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"PHARMADASH_DB_DSN" default:"pharmadash.db"`

	MaxOpenConns    int           `envconfig:"PHARMADASH_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"PHARMADASH_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"PHARMADASH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PHARMADASH_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PHARMADASH_REDIS_URL"`
	Address      string        `envconfig:"PHARMADASH_REDIS_ADDR"`
	Password     string        `envconfig:"PHARMADASH_REDIS_PASSWORD"`
	DB           int           `envconfig:"PHARMADASH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PHARMADASH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PHARMADASH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PHARMADASH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PHARMADASH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PHARMADASH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"PHARMADASH_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"PHARMADASH_JWT_ISSUER" default:"pharmadash"`
	ExpirationMinutes int    `envconfig:"PHARMADASH_JWT_EXPIRATION_MINUTES" default:"720"`
}

// ContentAPIConfig points at the Strapi-style content API that owns
// persistence for orders, products, promotions, and credentials.
type ContentAPIConfig struct {
	BaseURL  string        `envconfig:"PHARMADASH_CONTENT_API_URL" required:"true"`
	APIToken string        `envconfig:"PHARMADASH_CONTENT_API_TOKEN"`
	Timeout  time.Duration `envconfig:"PHARMADASH_CONTENT_API_TIMEOUT" default:"15s"`
}

type CacheConfig struct {
	OrdersTTL     time.Duration `envconfig:"PHARMADASH_CACHE_ORDERS_TTL" default:"30s"`
	ProductsTTL   time.Duration `envconfig:"PHARMADASH_CACHE_PRODUCTS_TTL" default:"2m"`
	PromotionsTTL time.Duration `envconfig:"PHARMADASH_CACHE_PROMOTIONS_TTL" default:"2m"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"PHARMADASH_CRON_INTERVAL" default:"24h"`
	LockTTL  time.Duration `envconfig:"PHARMADASH_CRON_LOCK_TTL" default:"25h"`
}
