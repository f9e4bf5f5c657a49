package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Log       LogConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Numbering NumberingConfig
	Export    ExportConfig
	Seed      SeedConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Driver   string // postgres or sqlite
	Path     string // sqlite file, ":memory:" for an in-memory database
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type LogConfig struct {
	Level  string
	Format string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type NumberingConfig struct {
	InvoicePrefix string
	ReceiptPrefix string
}

type ExportConfig struct {
	ThermalCharWidth int // characters per line of ESC/POS slips
}

type SeedConfig struct {
	Enabled    bool
	Interval   time.Duration
	MaxRetries int
	RetryDelay time.Duration
	Products   int
	Invoices   int
	Receipts   int
	RandSeed   uint64
}

// SetDefaults registers every default on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "invoicely-api")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_PATH", "invoicely.db")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "invoicely")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_DURATION", 60)
	v.SetDefault("INVOICE_PREFIX", "INV")
	v.SetDefault("RECEIPT_PREFIX", "REC")
	v.SetDefault("THERMAL_CHAR_WIDTH", 48)
	v.SetDefault("SEED_ENABLED", false)
	v.SetDefault("SEED_INTERVAL", "1h")
	v.SetDefault("SEED_MAX_RETRIES", 3)
	v.SetDefault("SEED_RETRY_DELAY", "5s")
	v.SetDefault("SEED_PRODUCTS", 15)
	v.SetDefault("SEED_INVOICES", 12)
	v.SetDefault("SEED_RECEIPTS", 15)
	v.SetDefault("SEED_RAND_SEED", 0)
}

// Load reads .env (when present) and the environment into a Config using the global viper
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()
	SetDefaults(viper.GetViper())

	// A missing .env is normal outside local development.
	_ = viper.ReadInConfig()

	return FromViper(viper.GetViper())
}

// FromViper builds and validates a Config from v
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:  v.GetString("APP_NAME"),
			Env:   v.GetString("APP_ENV"),
			Port:  v.GetString("APP_PORT"),
			Debug: v.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString("DB_DRIVER")),
			Path:     v.GetString("DB_PATH"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
			Timezone: v.GetString("DB_TIMEZONE"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: v.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: v.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
		Numbering: NumberingConfig{
			InvoicePrefix: v.GetString("INVOICE_PREFIX"),
			ReceiptPrefix: v.GetString("RECEIPT_PREFIX"),
		},
		Export: ExportConfig{
			ThermalCharWidth: v.GetInt("THERMAL_CHAR_WIDTH"),
		},
		Seed: SeedConfig{
			Enabled:    v.GetBool("SEED_ENABLED"),
			Interval:   v.GetDuration("SEED_INTERVAL"),
			MaxRetries: v.GetInt("SEED_MAX_RETRIES"),
			RetryDelay: v.GetDuration("SEED_RETRY_DELAY"),
			Products:   v.GetInt("SEED_PRODUCTS"),
			Invoices:   v.GetInt("SEED_INVOICES"),
			Receipts:   v.GetInt("SEED_RECEIPTS"),
			RandSeed:   v.GetUint64("SEED_RAND_SEED"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the application cannot start with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Numbering.InvoicePrefix) == "" || strings.TrimSpace(c.Numbering.ReceiptPrefix) == "" {
		return fmt.Errorf("INVOICE_PREFIX and RECEIPT_PREFIX must not be empty")
	}
	if c.Numbering.InvoicePrefix == c.Numbering.ReceiptPrefix {
		return fmt.Errorf("INVOICE_PREFIX and RECEIPT_PREFIX must differ")
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Duration <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS and RATE_LIMIT_DURATION must be positive")
	}
	if c.Export.ThermalCharWidth < 16 {
		return fmt.Errorf("THERMAL_CHAR_WIDTH must be at least 16")
	}
	if c.Seed.Interval <= 0 {
		return fmt.Errorf("SEED_INTERVAL must be positive")
	}
	if c.Seed.MaxRetries < 1 {
		return fmt.Errorf("SEED_MAX_RETRIES must be at least 1")
	}
	return nil
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// SQLiteDSN returns the sqlite connection string with foreign keys enabled
func (c *DatabaseConfig) SQLiteDSN() string {
	path := c.Path
	if path == "" || path == ":memory:" {
		return "file::memory:?cache=shared&_pragma=foreign_keys(1)"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}
