package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Auth         AuthConfig
	Owner        OwnerConfig
	Checkout     CheckoutConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ALGHAZALY_APP_ENV" required:"true"`
	Port         string `envconfig:"ALGHAZALY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ALGHAZALY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ALGHAZALY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ALGHAZALY_DB_DSN"`
	Driver string `envconfig:"ALGHAZALY_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"ALGHAZALY_DB_HOST"`
	Port     int    `envconfig:"ALGHAZALY_DB_PORT" default:"5432"`
	User     string `envconfig:"ALGHAZALY_DB_USER"`
	Password string `envconfig:"ALGHAZALY_DB_PASSWORD"`
	Name     string `envconfig:"ALGHAZALY_DB_NAME"`
	SSLMode  string `envconfig:"ALGHAZALY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ALGHAZALY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ALGHAZALY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ALGHAZALY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ALGHAZALY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ALGHAZALY_REDIS_URL"`
	Address      string        `envconfig:"ALGHAZALY_REDIS_ADDR"`
	Password     string        `envconfig:"ALGHAZALY_REDIS_PASSWORD"`
	DB           int           `envconfig:"ALGHAZALY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ALGHAZALY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ALGHAZALY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ALGHAZALY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ALGHAZALY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ALGHAZALY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type AuthConfig struct {
	ExchangeURL     string        `envconfig:"ALGHAZALY_AUTH_EXCHANGE_URL" required:"true"`
	ExchangeTimeout time.Duration `envconfig:"ALGHAZALY_AUTH_EXCHANGE_TIMEOUT" default:"10s"`
	SessionTTL      time.Duration `envconfig:"ALGHAZALY_AUTH_SESSION_TTL" default:"168h"`
	CookieName      string        `envconfig:"ALGHAZALY_AUTH_COOKIE_NAME" default:"session_token"`
}

type OwnerConfig struct {
	PrimaryEmail string `envconfig:"ALGHAZALY_OWNER_PRIMARY_EMAIL" required:"true"`
}

type CheckoutConfig struct {
	ShippingFlatRate string `envconfig:"ALGHAZALY_CHECKOUT_SHIPPING_FLAT_RATE" default:"150"`
}

// ShippingCost parses the configured flat shipping rate; a malformed value
// falls back to zero.
func (c CheckoutConfig) ShippingCost() decimal.Decimal {
	rate, err := decimal.NewFromString(strings.TrimSpace(c.ShippingFlatRate))
	if err != nil {
		return decimal.Zero
	}
	return rate
}

type RateLimitConfig struct {
	SessionWindow  time.Duration `envconfig:"ALGHAZALY_RATE_LIMIT_SESSION_WINDOW" default:"1m"`
	SessionIPLimit int           `envconfig:"ALGHAZALY_RATE_LIMIT_SESSION_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ALGHAZALY_AUTO_MIGRATE" default:"false"`
	SeedOnBoot  bool `envconfig:"ALGHAZALY_SEED_ON_BOOT" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
