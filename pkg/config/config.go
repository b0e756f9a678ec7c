package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Cart         CartConfig
	Notify       NotifyConfig
	CORS         CORSConfig
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
	Env          string `envconfig:"MARIGOLD_APP_ENV" required:"true"`
	Port         string `envconfig:"MARIGOLD_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MARIGOLD_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MARIGOLD_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MARIGOLD_DB_DSN"`
	Driver string `envconfig:"MARIGOLD_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MARIGOLD_DB_HOST"`
	LegacyPort     int    `envconfig:"MARIGOLD_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MARIGOLD_DB_USER"`
	LegacyPassword string `envconfig:"MARIGOLD_DB_PASSWORD"`
	LegacyName     string `envconfig:"MARIGOLD_DB_NAME"`
	LegacySSLMode  string `envconfig:"MARIGOLD_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MARIGOLD_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MARIGOLD_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MARIGOLD_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MARIGOLD_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MARIGOLD_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MARIGOLD_REDIS_ADDR"`
	Password     string        `envconfig:"MARIGOLD_REDIS_PASSWORD"`
	DB           int           `envconfig:"MARIGOLD_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MARIGOLD_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MARIGOLD_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MARIGOLD_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MARIGOLD_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MARIGOLD_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig verifies bearer tokens minted by the hosted auth provider.
// Marigold never issues customer tokens itself.
type JWTConfig struct {
	Secret string `envconfig:"MARIGOLD_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"MARIGOLD_JWT_ISSUER" required:"true"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"MARIGOLD_CART_TTL" default:"168h"`
}

// NotifyConfig points at the serverless email functions.
type NotifyConfig struct {
	OrderNotificationURL string        `envconfig:"MARIGOLD_NOTIFY_ORDER_URL"`
	StatusUpdateURL      string        `envconfig:"MARIGOLD_NOTIFY_STATUS_URL"`
	APIKey               string        `envconfig:"MARIGOLD_NOTIFY_API_KEY"`
	OwnerEmail           string        `envconfig:"MARIGOLD_NOTIFY_OWNER_EMAIL"`
	Timeout              time.Duration `envconfig:"MARIGOLD_NOTIFY_TIMEOUT" default:"10s"`
	MaxAttempts          int           `envconfig:"MARIGOLD_NOTIFY_MAX_ATTEMPTS" default:"3"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"MARIGOLD_CORS_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"MARIGOLD_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
