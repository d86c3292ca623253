// Package config loads service configuration: config.toml, then .env, then BARBER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, например BARBER_SERVER_HTTP_PORT
const EnvPrefix = "BARBER"

// Драйверы хранилища
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

type Config struct {
	Server        ServerConfig        `toml:"server"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Storage       StorageConfig       `toml:"storage"`
	Database      DatabaseConfig      `toml:"database"`
	Redis         RedisConfig         `toml:"redis"`
	Shop          ShopConfig          `toml:"shop"`
	Notifications NotificationsConfig `toml:"notifications"`
	Reminders     RemindersConfig     `toml:"reminders"`
	Summary       SummaryConfig       `toml:"summary"`
	RateLimit     RateLimitConfig     `toml:"rate_limit" split_words:"true"`
	CORS          CORSConfig          `toml:"cors"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

type StorageConfig struct {
	Driver string `toml:"driver"` // memory | redis | postgres
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type ShopConfig struct {
	// PublicURL адрес клиентского приложения: ссылки подтверждения и QR-код
	PublicURL string `toml:"public_url" split_words:"true"`
	// Timezone IANA-зона магазина, пусто - локальная зона процесса
	Timezone string `toml:"timezone"`
}

type NotificationsConfig struct {
	SMS bool `toml:"sms"` // симулированный SMS-шлюз; на уровне магазина дополнительно действует smsEnabled
	Log bool `toml:"log"` // системные уведомления в лог
}

type RemindersConfig struct {
	Enabled     bool   `toml:"enabled"`
	Schedule    string `toml:"schedule"`
	LeadMinutes int    `toml:"lead_minutes" split_words:"true"`
}

// SummaryConfig внешний сервис сводки дня; пустой URL отключает его
type SummaryConfig struct {
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key" split_words:"true"`
	Timeout int    `toml:"timeout"` // секунды
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins" split_words:"true"`
}

// Default возвращает конфигурацию по умолчанию: хранилище в памяти, порт 8080
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Enabled: true, Path: "/metrics", ServiceName: "barber_booking"},
		Storage: StorageConfig{Driver: StorageMemory},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "barber_booking",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis:         RedisConfig{Addr: "localhost:6379"},
		Shop:          ShopConfig{PublicURL: "http://localhost:5173"},
		Notifications: NotificationsConfig{SMS: true, Log: true},
		Reminders:     RemindersConfig{Enabled: true, Schedule: "@every 1m", LeadMinutes: 30},
		Summary:       SummaryConfig{Timeout: 5},
		RateLimit:     RateLimitConfig{Enabled: true, RPS: 5, Burst: 10},
		CORS:          CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

// Load читает path (отсутствующий файл не ошибка), затем .env и переменные окружения BARBER_*
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет значения после всех источников
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port %d out of range", c.Server.HTTPPort))
	}

	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case StorageMemory, StorageRedis, StoragePostgres:
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q, expected memory, redis or postgres", c.Storage.Driver))
	}

	if c.Shop.Timezone != "" {
		if _, err := time.LoadLocation(c.Shop.Timezone); err != nil {
			errs = append(errs, fmt.Errorf("shop.timezone: %v", err))
		}
	}

	if c.Reminders.Enabled && c.Reminders.LeadMinutes <= 0 {
		errs = append(errs, errors.New("reminders.lead_minutes must be positive"))
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		errs = append(errs, errors.New("rate_limit.rps and rate_limit.burst must be positive"))
	}

	if c.Summary.URL != "" && c.Summary.Timeout <= 0 {
		errs = append(errs, errors.New("summary.timeout must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// Location зона магазина
func (c *Config) Location() *time.Location {
	if c.Shop.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Shop.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// ShutdownTimeout длительность graceful shutdown
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeout) * time.Second
}

// EnvFileExists сообщает, есть ли .env в рабочей директории
func EnvFileExists() bool {
	_, err := os.Stat(".env")
	return err == nil
}
