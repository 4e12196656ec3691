package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// EnvConfigPath переменная окружения, переопределяющая путь к конфигу
const EnvConfigPath = "CONFIG_PATH"

// Режимы хранилища клиники
const (
	StoreModeLocal  = "local"
	StoreModeRemote = "remote"
)

// ErrInvalidConfig возвращается при недопустимых значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Redis       RedisConfig       `toml:"redis"`
	ClinicStore ClinicStoreConfig `toml:"clinic_store"`
	Drafts      DraftsConfig      `toml:"drafts"`
	Booking     BookingConfig     `toml:"booking"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к Postgres
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения для lib/pq
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
	ServiceName string `toml:"service_name"`
}

// RedisConfig настройки кеша рабочих дней
// Пустой Addr отключает кеш
type RedisConfig struct {
	Addr         string `toml:"addr"`
	Password     string `toml:"password"`
	DB           int    `toml:"db"`
	WorkDaysTTL  int    `toml:"work_days_ttl"` // секунды
	DialTimeout  int    `toml:"dial_timeout"`  // секунды
	ReadTimeout  int    `toml:"read_timeout"`  // секунды
	WriteTimeout int    `toml:"write_timeout"` // секунды
}

// Enabled возвращает true, если кеш настроен
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// ClinicStoreConfig источник данных клиники для мастера записи
// local - собственная БД сервиса, remote - внешний сервис по HTTP
type ClinicStoreConfig struct {
	Mode    string `toml:"mode"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// DraftsConfig настройки черновиков записи
type DraftsConfig struct {
	IdleTTL         int `toml:"idle_ttl"`         // секунды
	CleanupInterval int `toml:"cleanup_interval"` // секунды
}

// BookingConfig правила записи на стороне хранилища
type BookingConfig struct {
	MinBookingNoticeMinutes int `toml:"min_booking_notice_minutes"`
}

// Load читает конфигурацию из TOML файла
// Путь можно переопределить переменной окружения CONFIG_PATH
func Load(path string) (*Config, error) {
	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		path = envPath
	}

	cfg := &Config{}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.applyDefaults(md)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults заполняет незаданные поля. Для полей, где 0 имеет смысл
// (отключение истечения черновиков, запись без минимального уведомления),
// значение по умолчанию ставится только если ключ отсутствует в файле.
func (c *Config) applyDefaults(md toml.MetaData) {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
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
		c.Metrics.ServiceName = "clinic_booking"
	}

	if c.Redis.WorkDaysTTL == 0 {
		c.Redis.WorkDaysTTL = 300
	}
	if c.Redis.DialTimeout == 0 {
		c.Redis.DialTimeout = 5
	}
	if c.Redis.ReadTimeout == 0 {
		c.Redis.ReadTimeout = 3
	}
	if c.Redis.WriteTimeout == 0 {
		c.Redis.WriteTimeout = 3
	}

	if c.ClinicStore.Mode == "" {
		c.ClinicStore.Mode = StoreModeLocal
	}
	if c.ClinicStore.Timeout == 0 {
		c.ClinicStore.Timeout = 10
	}

	if !md.IsDefined("drafts", "idle_ttl") {
		c.Drafts.IdleTTL = 1800
	}
	if c.Drafts.CleanupInterval == 0 {
		c.Drafts.CleanupInterval = 60
	}

	if !md.IsDefined("booking", "min_booking_notice_minutes") {
		c.Booking.MinBookingNoticeMinutes = 60
	}
}

// Validate проверяет конфигурацию на недопустимые значения
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}

	switch c.ClinicStore.Mode {
	case StoreModeLocal:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required in local mode", ErrInvalidConfig)
		}
	case StoreModeRemote:
		if c.ClinicStore.URL == "" {
			return fmt.Errorf("%w: clinic_store.url is required in remote mode", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: clinic_store.mode must be %q or %q", ErrInvalidConfig, StoreModeLocal, StoreModeRemote)
	}

	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("%w: database.max_idle_conns exceeds max_open_conns", ErrInvalidConfig)
	}
	if c.Drafts.IdleTTL < 0 || c.Redis.WorkDaysTTL < 0 {
		return fmt.Errorf("%w: ttl values must not be negative", ErrInvalidConfig)
	}
	if c.Drafts.CleanupInterval <= 0 {
		return fmt.Errorf("%w: drafts.cleanup_interval must be positive", ErrInvalidConfig)
	}
	if c.Booking.MinBookingNoticeMinutes < 0 {
		return fmt.Errorf("%w: booking.min_booking_notice_minutes must not be negative", ErrInvalidConfig)
	}
	return nil
}
