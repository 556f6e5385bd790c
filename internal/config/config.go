package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server             ServerConfig      `toml:"server"`
	Database           DatabaseConfig    `toml:"database"`
	Redis              RedisConfig       `toml:"redis"`
	CatalogService     IntegrationConfig `toml:"catalog_service"`
	RosterService      IntegrationConfig `toml:"roster_service"`
	AppointmentService IntegrationConfig `toml:"appointment_service"`
	PaymentService     IntegrationConfig `toml:"payment_service"`
	Payments           PaymentsConfig    `toml:"payments"`
	Selection          SelectionConfig   `toml:"selection"`
	Logs               LogsConfig        `toml:"logs"`
	Metrics            MetricsConfig     `toml:"metrics"`
}

// ServerConfig настройки HTTP сервера
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig настройки подключения к Redis
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	// BusChannel имя pub/sub канала шины распространения изменений
	BusChannel string `toml:"bus_channel"`
}

// IntegrationConfig настройки клиента внешнего сервиса
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// PaymentsConfig настройки депозитов
type PaymentsConfig struct {
	// DepositPercent процент депозита от эффективной цены,
	// применяется если запись каталога не несет собственного процента
	DepositPercent float64 `toml:"deposit_percent"`
	// PendingTTL время жизни записи ожидаемого платежа в секундах
	PendingTTL int `toml:"pending_ttl"`
}

// SelectionConfig настройки хранения выбора
type SelectionConfig struct {
	// SalonID идентификатор салона, для которого работает этот инстанс
	SalonID string `toml:"salon_id"`
	// SessionTTL время жизни сессионного уровня хранения в секундах
	SessionTTL int `toml:"session_ttl"`
	// DaysAhead горизонт генерации слотов по умолчанию
	DaysAhead int `toml:"days_ahead"`
	// CatalogCacheTTL время жизни кэша ответов каталога в секундах
	CatalogCacheTTL int `toml:"catalog_cache_ttl"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if cfg.Server.HTTPPort == 0 {
		return nil, fmt.Errorf("config: server.http_port is required")
	}
	if cfg.Selection.SalonID == "" {
		return nil, fmt.Errorf("config: selection.salon_id is required")
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Redis.BusChannel == "" {
		cfg.Redis.BusChannel = "selection:events"
	}
	if cfg.Payments.DepositPercent == 0 {
		cfg.Payments.DepositPercent = 20
	}
	if cfg.Payments.PendingTTL == 0 {
		cfg.Payments.PendingTTL = 1800
	}
	if cfg.Selection.SessionTTL == 0 {
		cfg.Selection.SessionTTL = 3600
	}
	if cfg.Selection.DaysAhead == 0 {
		cfg.Selection.DaysAhead = 14
	}
	if cfg.Selection.CatalogCacheTTL == 0 {
		cfg.Selection.CatalogCacheTTL = 600
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "selection-engine"
	}
}
