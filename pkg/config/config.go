package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	Redis     RedisConfig
	Cart      CartConfig
	Checkout  CheckoutConfig
	Analytics AnalyticsConfig
	Search    SearchConfig
	Coupon    CouponRateLimitConfig
	GCP       GCPConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Analytics.ensureProject(cfg.GCP); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SERENELEAF_APP_ENV" required:"true"`
	Port         string `envconfig:"SERENELEAF_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SERENELEAF_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SERENELEAF_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// RedisConfig accepts either a full URL or an address with separate
// credentials. The client errors when both are empty.
type RedisConfig struct {
	URL          string        `envconfig:"SERENELEAF_REDIS_URL"`
	Address      string        `envconfig:"SERENELEAF_REDIS_ADDR"`
	Password     string        `envconfig:"SERENELEAF_REDIS_PASSWORD"`
	DB           int           `envconfig:"SERENELEAF_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SERENELEAF_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SERENELEAF_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SERENELEAF_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SERENELEAF_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SERENELEAF_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CartConfig tunes the persisted cart snapshot slot.
type CartConfig struct {
	TTL time.Duration `envconfig:"SERENELEAF_CART_TTL" default:"720h"`
}

// CheckoutConfig carries the order pricing rules and session lifetimes.
type CheckoutConfig struct {
	FreeShippingThreshold float64       `envconfig:"SERENELEAF_FREE_SHIPPING_THRESHOLD" default:"50"`
	ShippingCost          float64       `envconfig:"SERENELEAF_SHIPPING_COST" default:"5.99"`
	TaxRate               float64       `envconfig:"SERENELEAF_TAX_RATE" default:"0.08"`
	Currency              string        `envconfig:"SERENELEAF_CURRENCY" default:"USD"`
	SessionTTL            time.Duration `envconfig:"SERENELEAF_CHECKOUT_SESSION_TTL" default:"30m"`
	OrderRecordTTL        time.Duration `envconfig:"SERENELEAF_ORDER_RECORD_TTL" default:"1h"`
}

type AnalyticsConfig struct {
	Enabled bool   `envconfig:"SERENELEAF_ANALYTICS_ENABLED" default:"true"`
	Topic   string `envconfig:"SERENELEAF_ANALYTICS_TOPIC" default:"storefront-analytics"`
}

func (a AnalyticsConfig) ensureProject(gcp GCPConfig) error {
	if !a.Enabled {
		return nil
	}
	if strings.TrimSpace(gcp.ProjectID) == "" {
		return fmt.Errorf("%s is required when analytics is enabled", EnvGCPProjectID)
	}
	return nil
}

type SearchConfig struct {
	DebounceWindow time.Duration `envconfig:"SERENELEAF_SEARCH_DEBOUNCE_WINDOW" default:"300ms"`
}

type CouponRateLimitConfig struct {
	Window time.Duration `envconfig:"SERENELEAF_COUPON_RATE_LIMIT_WINDOW" default:"1m"`
	Limit  int           `envconfig:"SERENELEAF_COUPON_RATE_LIMIT" default:"10"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"SERENELEAF_GCP_PROJECT_ID"`
	ApplicationCredentials string `envconfig:"SERENELEAF_GOOGLE_APPLICATION_CREDENTIALS"`
}
