package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "TURF"

// Storage drivers
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

var (
	// ErrInvalidConfig is returned when the loaded configuration fails validation
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config is the full service configuration.
// Values come from the TOML file first, then TURF_* environment variables override them
// (TURF_DATABASE_HOST, TURF_BOOKING_MAX_TEAM_SIZE, ...).
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Storage  StorageConfig  `toml:"storage"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Cache    CacheConfig    `toml:"cache"`
	Payments PaymentsConfig `toml:"payments"`
	Booking  BookingConfig  `toml:"booking"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"`
}

// DSN builds a lib/pq connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL builds a postgres:// URL for golang-migrate
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

type StorageConfig struct {
	// Driver is "postgres" or "memory"
	Driver string `toml:"driver" split_words:"true"`
	// SeedFile is a TOML catalog loaded into the memory driver on start
	SeedFile string `toml:"seed_file" split_words:"true"`
}

type LogsConfig struct {
	Level string `toml:"level" split_words:"true"`
	File  string `toml:"file" split_words:"true"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

type CacheConfig struct {
	Enabled  bool   `toml:"enabled" split_words:"true"`
	Addr     string `toml:"addr" split_words:"true"`
	Password string `toml:"password" split_words:"true"`
	DB       int    `toml:"db" split_words:"true"`
	// TTL of catalog entries in seconds
	TTL int `toml:"ttl" split_words:"true"`
}

type PaymentsConfig struct {
	GatewayURL     string       `toml:"gateway_url" split_words:"true"`
	GatewayTimeout int          `toml:"gateway_timeout" split_words:"true"`
	Events         EventsConfig `toml:"events" split_words:"true"`
}

type EventsConfig struct {
	Enabled  bool   `toml:"enabled" split_words:"true"`
	AMQPURL  string `toml:"amqp_url" split_words:"true"`
	Exchange string `toml:"exchange" split_words:"true"`
	Queue    string `toml:"queue" split_words:"true"`
	Prefetch int    `toml:"prefetch" split_words:"true"`
}

type BookingConfig struct {
	// Timezone of turf wall clock times, used to decide what "today" is
	Timezone string `toml:"timezone" split_words:"true"`
	// MaxAdvanceDays limits how far ahead a date can be booked, 0 = unlimited
	MaxAdvanceDays int `toml:"max_advance_days" split_words:"true"`
	MaxTeamSize    int `toml:"max_team_size" split_words:"true"`
}

// Location resolves the configured timezone
func (c BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Load reads path (missing file is allowed), applies env overrides and validates
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("config: decode %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: stat %s: %w", path, err)
		}
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns the baseline configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Password:        "postgres",
			DBName:          "turf_booking",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Storage: StorageConfig{
			Driver: StorageDriverPostgres,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "turf-booking-service",
		},
		Cache: CacheConfig{
			Addr: "localhost:6379",
			TTL:  300,
		},
		Payments: PaymentsConfig{
			GatewayTimeout: 5,
			Events: EventsConfig{
				Exchange: "payments",
				Queue:    "turf-booking.payments",
				Prefetch: 10,
			},
		},
		Booking: BookingConfig{
			Timezone:       "Asia/Kolkata",
			MaxAdvanceDays: 30,
			MaxTeamSize:    22,
		},
	}
}

// Validate checks cross-field constraints
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres storage", ErrInvalidConfig)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}
	if c.Booking.MaxAdvanceDays < 0 {
		return fmt.Errorf("%w: booking.max_advance_days must not be negative", ErrInvalidConfig)
	}
	if c.Booking.MaxTeamSize <= 0 {
		return fmt.Errorf("%w: booking.max_team_size must be positive", ErrInvalidConfig)
	}

	if c.Cache.Enabled && c.Cache.Addr == "" {
		return fmt.Errorf("%w: cache.addr is required when cache is enabled", ErrInvalidConfig)
	}
	if c.Payments.Events.Enabled && c.Payments.Events.AMQPURL == "" {
		return fmt.Errorf("%w: payments.events.amqp_url is required when events are enabled", ErrInvalidConfig)
	}

	return nil
}
