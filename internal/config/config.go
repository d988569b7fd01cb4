package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

// EnvPrefix префикс переменных окружения, переопределяющих config.toml
// Например: PADEL_DATABASE_PASSWORD, PADEL_REDIS_ENABLED
const EnvPrefix = "PADEL"

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Horizon      HorizonConfig      `toml:"horizon"`
	Redis        RedisConfig        `toml:"redis"`
	Reservations ReservationsConfig `toml:"reservations"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
	RequestTimeout  int `toml:"request_timeout" split_words:"true"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// HorizonConfig настройки ежедневной генерации слотов
type HorizonConfig struct {
	Days         int    `toml:"days"`
	Schedule     string `toml:"schedule"`
	Timezone     string `toml:"timezone"`
	RunOnStartup bool   `toml:"run_on_startup" split_words:"true"`
	Backfill     bool   `toml:"backfill"`
	LockTTL      int    `toml:"lock_ttl" split_words:"true"`
}

// Location возвращает часовой пояс, в котором считаются "сегодня" и полночь
func (h HorizonConfig) Location() (*time.Location, error) {
	if h.Timezone == "" || h.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(h.Timezone)
}

// RedisConfig настройки redis для распределённой блокировки генерации
type RedisConfig struct {
	Enabled   bool   `toml:"enabled"`
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix" split_words:"true"`
}

// ReservationsConfig настройки запросов по бронированиям
type ReservationsConfig struct {
	StatsTopN int `toml:"stats_top_n" split_words:"true"`
}

// Load читает config.toml, затем .env рядом с ним (если есть) и переменные окружения PADEL_*
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	envPath := filepath.Join(filepath.Dir(path), ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", envPath, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("config: apply env overrides: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = 5
	}

	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "padel_booking_service"
	}

	if c.Horizon.Days == 0 {
		c.Horizon.Days = 8
	}
	if c.Horizon.Schedule == "" {
		c.Horizon.Schedule = "0 0 * * *"
	}
	if c.Horizon.LockTTL == 0 {
		c.Horizon.LockTTL = 600
	}

	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "padel:lock:"
	}

	if c.Reservations.StatsTopN == 0 {
		c.Reservations.StatsTopN = 5
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.Database.Port <= 0 {
		return fmt.Errorf("%w: database.port must be positive", ErrInvalidConfig)
	}
	if c.Horizon.Days < 0 {
		return fmt.Errorf("%w: horizon.days must not be negative", ErrInvalidConfig)
	}
	if _, err := cron.ParseStandard(c.Horizon.Schedule); err != nil {
		return fmt.Errorf("%w: horizon.schedule %q: %v", ErrInvalidConfig, c.Horizon.Schedule, err)
	}
	if _, err := c.Horizon.Location(); err != nil {
		return fmt.Errorf("%w: horizon.timezone %q: %v", ErrInvalidConfig, c.Horizon.Timezone, err)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.Reservations.StatsTopN < 0 {
		return fmt.Errorf("%w: reservations.stats_top_n must not be negative", ErrInvalidConfig)
	}
	return nil
}
