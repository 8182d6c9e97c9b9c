package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// envPrefix префикс переменных окружения, переопределяющих config.toml
const envPrefix = "BOOKING"

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server" envconfig:"SERVER"`
	Database    DatabaseConfig    `toml:"database" envconfig:"DB"`
	Logs        LogsConfig        `toml:"logs" envconfig:"LOGS"`
	Metrics     MetricsConfig     `toml:"metrics" envconfig:"METRICS"`
	UserService UserServiceConfig `toml:"user_service" envconfig:"USER_SERVICE"`
	Booking     BookingConfig     `toml:"booking" envconfig:"BOOKING"`
	Pricing     PricingConfig     `toml:"pricing" envconfig:"PRICING"`
	Cache       CacheConfig       `toml:"cache" envconfig:"CACHE"`
	Events      EventsConfig      `toml:"events" envconfig:"EVENTS"`
	Payments    PaymentsConfig    `toml:"payments" envconfig:"PAYMENTS"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" envconfig:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" envconfig:"HOST"`
	Port            int    `toml:"port" envconfig:"PORT"`
	User            string `toml:"user" envconfig:"USER"`
	Password        string `toml:"password" envconfig:"PASSWORD"`
	DBName          string `toml:"dbname" envconfig:"NAME"`
	SSLMode         string `toml:"sslmode" envconfig:"SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" envconfig:"MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" envconfig:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" envconfig:"CONN_MAX_LIFETIME"`
	// Сколько раз повторять SERIALIZABLE транзакцию при конфликте сериализации
	SerializationRetries int `toml:"serialization_retries" envconfig:"SERIALIZATION_RETRIES"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL строка подключения в формате URL (для golang-migrate)
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file" envconfig:"FILE"`
	Level string `toml:"level" envconfig:"LEVEL"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" envconfig:"ENABLED"`
	ServiceName string `toml:"service_name" envconfig:"SERVICE_NAME"`
	Path        string `toml:"path" envconfig:"PATH"`
}

// UserServiceConfig настройки клиента сервиса пользователей.
// Пустой URL отключает интеграцию - скидка всегда 0.
type UserServiceConfig struct {
	URL     string `toml:"url" envconfig:"URL"`
	Timeout int    `toml:"timeout" envconfig:"TIMEOUT"`

	BreakerWindow       int     `toml:"breaker_window" envconfig:"BREAKER_WINDOW"`
	BreakerFailureRatio float64 `toml:"breaker_failure_ratio" envconfig:"BREAKER_FAILURE_RATIO"`
	BreakerOpenTimeout  int     `toml:"breaker_open_timeout" envconfig:"BREAKER_OPEN_TIMEOUT"`
}

// BookingConfig правила бронирования
type BookingConfig struct {
	// IANA часовой пояс площадки: выходные дни и часы работы считаются в нём
	Timezone             string        `toml:"timezone" envconfig:"TIMEZONE"`
	SlotStepMinutes      int           `toml:"slot_step_minutes" envconfig:"SLOT_STEP_MINUTES"`
	AutoCompleteEnabled  bool          `toml:"autocomplete_enabled" envconfig:"AUTOCOMPLETE_ENABLED"`
	AutoCompleteInterval time.Duration `toml:"autocomplete_interval" envconfig:"AUTOCOMPLETE_INTERVAL"`
	RepriceOnReschedule  bool          `toml:"reprice_on_reschedule" envconfig:"REPRICE_ON_RESCHEDULE"`
}

// Location возвращает часовой пояс площадки
func (c BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// PricingConfig тарифы дополнительных опций: код опции -> фиксированная надбавка
type PricingConfig struct {
	Extras map[string]string `toml:"extras" envconfig:"EXTRAS"`
}

// ExtrasFees возвращает надбавки в виде decimal
func (c PricingConfig) ExtrasFees() (map[string]decimal.Decimal, error) {
	fees := make(map[string]decimal.Decimal, len(c.Extras))
	for code, raw := range c.Extras {
		fee, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: pricing.extras.%s: %v", ErrInvalidConfig, code, err)
		}
		if fee.IsNegative() {
			return nil, fmt.Errorf("%w: pricing.extras.%s must not be negative", ErrInvalidConfig, code)
		}
		fees[code] = fee
	}
	return fees, nil
}

// CacheConfig настройки Redis кэша каталога
type CacheConfig struct {
	Enabled  bool          `toml:"enabled" envconfig:"ENABLED"`
	Addr     string        `toml:"addr" envconfig:"ADDR"`
	Password string        `toml:"password" envconfig:"PASSWORD"`
	DB       int           `toml:"db" envconfig:"DB"`
	TTL      time.Duration `toml:"ttl" envconfig:"TTL"`
}

// EventsConfig настройки публикации событий в RabbitMQ
type EventsConfig struct {
	Enabled  bool   `toml:"enabled" envconfig:"ENABLED"`
	URL      string `toml:"url" envconfig:"URL"`
	Exchange string `toml:"exchange" envconfig:"EXCHANGE"`
}

// PaymentsConfig настройки колбэка платёжной системы
type PaymentsConfig struct {
	CallbackToken string `toml:"callback_token" envconfig:"CALLBACK_TOKEN"`
}

// Default возвращает конфигурацию со значениями по умолчанию
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
			Host:                 "localhost",
			Port:                 5432,
			User:                 "postgres",
			DBName:               "venue_booking",
			SSLMode:              "disable",
			MaxOpenConns:         25,
			MaxIdleConns:         5,
			ConnMaxLifetime:      300,
			SerializationRetries: 3,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			ServiceName: "venue_booking_service",
			Path:        "/metrics",
		},
		UserService: UserServiceConfig{
			Timeout:             5,
			BreakerWindow:       20,
			BreakerFailureRatio: 0.5,
			BreakerOpenTimeout:  30,
		},
		Booking: BookingConfig{
			Timezone:             "Europe/Moscow",
			SlotStepMinutes:      30,
			AutoCompleteEnabled:  true,
			AutoCompleteInterval: 5 * time.Minute,
		},
		Pricing: PricingConfig{
			Extras: map[string]string{
				"instructor": "500",
				"equipment":  "0",
				"food":       "1000",
			},
		},
		Cache: CacheConfig{
			Addr: "localhost:6379",
			TTL:  5 * time.Minute,
		},
		Events: EventsConfig{
			Exchange: "venue.orders",
		},
	}
}

// Load читает конфигурацию: значения по умолчанию, затем файл path (если существует),
// затем переменные окружения с префиксом BOOKING_.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("config: decode %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: stat %s: %w", path, err)
		}
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: process env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range", ErrInvalidConfig)
	}
	if c.Database.SerializationRetries < 0 {
		return fmt.Errorf("%w: database.serialization_retries must be >= 0", ErrInvalidConfig)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}
	if c.Booking.SlotStepMinutes <= 0 {
		return fmt.Errorf("%w: booking.slot_step_minutes must be positive", ErrInvalidConfig)
	}
	if c.Booking.AutoCompleteEnabled && c.Booking.AutoCompleteInterval <= 0 {
		return fmt.Errorf("%w: booking.autocomplete_interval must be positive", ErrInvalidConfig)
	}
	if _, err := c.Pricing.ExtrasFees(); err != nil {
		return err
	}
	if c.Events.Enabled && c.Events.URL == "" {
		return fmt.Errorf("%w: events.url is required when events are enabled", ErrInvalidConfig)
	}
	if c.Cache.Enabled && c.Cache.Addr == "" {
		return fmt.Errorf("%w: cache.addr is required when cache is enabled", ErrInvalidConfig)
	}
	return nil
}
