package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, перекрывающих значения из файла
const EnvPrefix = "SUP"

// Поддерживаемые хранилища
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// MaxLookaheadDays верхняя граница окна поиска альтернативных слотов
const MaxLookaheadDays = 14

var (
	// ErrReadConfig ошибка чтения файла конфигурации
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrEnvOverride ошибка применения переменных окружения
	ErrEnvOverride = errors.New("config: failed to apply environment overrides")

	// ErrInvalidConfig конфигурация не прошла проверку
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logs     LogsConfig     `toml:"logs"`
	Database DatabaseConfig `toml:"database"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Redis    RedisConfig    `toml:"redis"`
	Weather  WeatherConfig  `toml:"weather"`
	Pricing  PricingConfig  `toml:"pricing"`
	Booking  BookingConfig  `toml:"booking"`
	CORS     CORSConfig     `toml:"cors"`
	Admin    AdminConfig    `toml:"admin"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level" split_words:"true"`
	File  string `toml:"file" split_words:"true"`
}

// DatabaseConfig параметры хранилища
type DatabaseConfig struct {
	Driver          string `toml:"driver" split_words:"true"`
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"`
	AutoMigrate     bool   `toml:"auto_migrate" split_words:"true"`
}

// DSN строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, sslMode)
}

// URL строка подключения в формате URL (для golang-migrate)
func (d DatabaseConfig) URL() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, sslMode)
}

// MetricsConfig параметры prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// RedisConfig параметры кэша прогнозов
type RedisConfig struct {
	Enabled  bool   `toml:"enabled" split_words:"true"`
	Addr     string `toml:"addr" split_words:"true"`
	Password string `toml:"password" split_words:"true"`
	DB       int    `toml:"db" split_words:"true"`
}

// WeatherConfig параметры оценки погоды
type WeatherConfig struct {
	ForecastURL     string  `toml:"forecast_url" split_words:"true"`
	TimeoutSeconds  int     `toml:"timeout_seconds" split_words:"true"`
	CacheTTLMinutes int     `toml:"cache_ttl_minutes" split_words:"true"`
	DefaultLat      float64 `toml:"default_lat" split_words:"true"`
	DefaultLng      float64 `toml:"default_lng" split_words:"true"`
	LookaheadDays   int     `toml:"lookahead_days" split_words:"true"`
	MaxCandidates   int     `toml:"max_candidates" split_words:"true"`
	MaxSuggestions  int     `toml:"max_suggestions" split_words:"true"`
}

// PricingConfig стоимость опций в минимальных единицах валюты
type PricingConfig struct {
	PhotoPrice  int64 `toml:"photo_price" split_words:"true"`
	DrybagPrice int64 `toml:"drybag_price" split_words:"true"`
	VestPrice   int64 `toml:"vest_price" split_words:"true"`
}

// BookingConfig параметры оформления бронирования
type BookingConfig struct {
	PersistAttempts int `toml:"persist_attempts" split_words:"true"`
	// CompensationTimeoutSeconds время на возврат мест после сбоя
	CompensationTimeoutSeconds int `toml:"compensation_timeout_seconds" split_words:"true"`
}

// CORSConfig параметры CORS для веб-клиента
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins" split_words:"true"`
	MaxAge         int      `toml:"max_age" split_words:"true"`
}

// AdminConfig административные эндпоинты
type AdminConfig struct {
	Enabled bool `toml:"enabled" split_words:"true"`
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "sup_booking",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "sup-booking-service",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Weather: WeatherConfig{
			ForecastURL:     "https://api.open-meteo.com/v1/forecast",
			TimeoutSeconds:  5,
			CacheTTLMinutes: 20,
			DefaultLat:      45.092,
			DefaultLng:      37.268,
			LookaheadDays:   3,
			MaxCandidates:   20,
			MaxSuggestions:  3,
		},
		Pricing: PricingConfig{
			PhotoPrice:  700,
			DrybagPrice: 200,
			VestPrice:   0,
		},
		Booking: BookingConfig{
			PersistAttempts:            3,
			CompensationTimeoutSeconds: 5,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			MaxAge:         300,
		},
	}
}

// Load читает конфигурацию из TOML файла и перекрывает её переменными окружения SUP_*
// (SUP_SERVER_HTTP_PORT, SUP_DATABASE_PASSWORD, SUP_WEATHER_FORECAST_URL, ...).
// Если рядом лежит .env, он загружается в окружение до применения перекрытий.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
		}
	}

	// .env необязателен
	_ = godotenv.Load()

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvOverride, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		problems = append(problems, "server timeouts must be positive")
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			problems = append(problems, "database.host and database.dbname are required for postgres")
		}
	case DriverMemory:
	default:
		problems = append(problems, fmt.Sprintf("database.driver %q is not supported", c.Database.Driver))
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		problems = append(problems, "redis.addr is required when redis is enabled")
	}

	if c.Weather.TimeoutSeconds <= 0 {
		problems = append(problems, "weather.timeout_seconds must be positive")
	}
	if c.Weather.CacheTTLMinutes <= 0 {
		problems = append(problems, "weather.cache_ttl_minutes must be positive")
	}
	if c.Weather.LookaheadDays < 0 || c.Weather.LookaheadDays > MaxLookaheadDays {
		problems = append(problems, fmt.Sprintf("weather.lookahead_days must be in 0..%d", MaxLookaheadDays))
	}
	if c.Weather.MaxCandidates <= 0 || c.Weather.MaxSuggestions <= 0 {
		problems = append(problems, "weather.max_candidates and weather.max_suggestions must be positive")
	}
	if c.Weather.DefaultLat < -90 || c.Weather.DefaultLat > 90 || c.Weather.DefaultLng < -180 || c.Weather.DefaultLng > 180 {
		problems = append(problems, "weather default location is out of range")
	}

	if c.Pricing.PhotoPrice < 0 || c.Pricing.DrybagPrice < 0 || c.Pricing.VestPrice < 0 {
		problems = append(problems, "pricing option prices must not be negative")
	}

	if c.Booking.PersistAttempts <= 0 {
		problems = append(problems, "booking.persist_attempts must be positive")
	}
	if c.Booking.CompensationTimeoutSeconds <= 0 {
		problems = append(problems, "booking.compensation_timeout_seconds must be positive")
	}

	if c.Metrics.Enabled && c.Metrics.Path == "" {
		problems = append(problems, "metrics.path is required when metrics are enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
