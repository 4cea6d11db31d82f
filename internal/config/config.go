package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Драйверы хранилища
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config конфигурация приложения
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Storage  StorageConfig  `toml:"storage"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Booking  BookingConfig  `toml:"booking"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// StorageConfig выбор хранилища
// memory используется для локальной разработки: каталог услуг задаётся в Services
type StorageConfig struct {
	Driver   string          `toml:"driver"`
	Services []ServiceConfig `toml:"services"`
}

// ServiceConfig услуга терапевта для in-memory хранилища
type ServiceConfig struct {
	TherapistID     int64           `toml:"therapist_id"`
	ServiceID       int64           `toml:"service_id"`
	Name            string          `toml:"name"`
	DurationMinutes int             `toml:"duration_minutes"`
	Price           decimal.Decimal `toml:"price"`
	IsActive        bool            `toml:"is_active"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig бизнес-настройки записи
type BookingConfig struct {
	Timezone                    string `toml:"timezone"`
	DefaultOverrideBreakMinutes int    `toml:"default_override_break_minutes"`
	SlotStepMinutes             int    `toml:"slot_step_minutes"`
}

// Location загружает часовой пояс, в котором работает салон
func (c BookingConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Load читает конфигурацию из TOML файла.
// Перед этим подгружается .env (если есть); переменные окружения
// DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME, APP_TIMEZONE перекрывают значения файла.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}

	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}

	if c.Booking.SlotStepMinutes <= 0 {
		return fmt.Errorf("config: booking.slot_step_minutes must be positive")
	}

	if c.Booking.DefaultOverrideBreakMinutes < 0 {
		return fmt.Errorf("config: booking.default_override_break_minutes must not be negative")
	}

	if _, err := c.Booking.Location(); err != nil {
		return err
	}

	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Storage: StorageConfig{Driver: StorageDriverPostgres},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "massage-scheduler"},
		Booking: BookingConfig{
			Timezone:                    "Asia/Tehran",
			DefaultOverrideBreakMinutes: 15,
			SlotStepMinutes:             15,
		},
	}
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("DB_HOST"); ok {
		cfg.Database.Host = v
	}
	if v, ok := os.LookupEnv("DB_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid DB_PORT %q: %w", v, err)
		}
		cfg.Database.Port = port
	}
	if v, ok := os.LookupEnv("DB_USER"); ok {
		cfg.Database.User = v
	}
	if v, ok := os.LookupEnv("DB_PASSWORD"); ok {
		cfg.Database.Password = v
	}
	if v, ok := os.LookupEnv("DB_NAME"); ok {
		cfg.Database.DBName = v
	}
	if v, ok := os.LookupEnv("APP_TIMEZONE"); ok {
		cfg.Booking.Timezone = v
	}
	return nil
}
