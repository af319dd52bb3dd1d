package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// PathEnv переменная окружения с путем к config.toml
const PathEnv = "CONFIG_PATH"

// DefaultPath путь к конфигу по умолчанию
const DefaultPath = "config.toml"

var (
	// ErrReadConfig возвращается, если файл конфигурации не удалось прочитать
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig возвращается при некорректных значениях
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Redis      RedisConfig      `toml:"redis"`
	RateLimit  RateLimitConfig  `toml:"rate_limit"`
	Scheduling SchedulingConfig `toml:"scheduling"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host" env:"DB_HOST"`
	Port            int    `toml:"port" env:"DB_PORT"`
	User            string `toml:"user" env:"DB_USER"`
	Password        string `toml:"password" env:"DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level" env:"LOG_LEVEL"`
	File  string `toml:"file" env:"LOG_FILE"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type RedisConfig struct {
	Enabled        bool   `toml:"enabled" env:"REDIS_ENABLED"`
	Addr           string `toml:"addr" env:"REDIS_ADDR"`
	Password       string `toml:"password" env:"REDIS_PASSWORD"`
	DB             int    `toml:"db"`
	IdempotencyTTL int    `toml:"idempotency_ttl"` // секунды
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled" env:"RATE_LIMIT_ENABLED"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

// SchedulingConfig часовой пояс и значения конфигурации расписания,
// которыми заполняется пустая БД при первом запуске
type SchedulingConfig struct {
	Timezone               string `toml:"timezone" env:"SCHEDULING_TIMEZONE"`
	SlotDuration           int    `toml:"slot_duration"`
	MaxSlotsPerAppointment int    `toml:"max_slots_per_appointment"`
	OperationalStart       string `toml:"operational_start"`
	OperationalEnd         string `toml:"operational_end"`
	WorkOnWeekends         bool   `toml:"work_on_weekends"` // false: суббота и воскресенье выходные
}

// Location возвращает часовой пояс расписания. Пустое значение означает локальный пояс процесса.
func (c SchedulingConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}

// DefaultConfiguration собирает конфигурацию расписания для первичного заполнения БД
func (c SchedulingConfig) DefaultConfiguration() (*domain.Configuration, error) {
	cfg := domain.DefaultConfiguration()
	if c.SlotDuration != 0 {
		cfg.SlotDuration = c.SlotDuration
	}
	if c.MaxSlotsPerAppointment != 0 {
		cfg.MaxSlotsPerAppointment = c.MaxSlotsPerAppointment
	}
	if c.OperationalStart != "" {
		t, err := types.NewTimeStringFromString(c.OperationalStart)
		if err != nil {
			return nil, fmt.Errorf("%w: operational_start: %v", ErrInvalidConfig, err)
		}
		cfg.OperationalStart = t
	}
	if c.OperationalEnd != "" {
		t, err := types.NewTimeStringFromString(c.OperationalEnd)
		if err != nil {
			return nil, fmt.Errorf("%w: operational_end: %v", ErrInvalidConfig, err)
		}
		cfg.OperationalEnd = t
	}
	cfg.IsWeekendOff = !c.WorkOnWeekends

	switch {
	case cfg.SlotDuration < domain.MinSlotDuration:
		return nil, fmt.Errorf("%w: slot_duration must be at least %d", ErrInvalidConfig, domain.MinSlotDuration)
	case cfg.MaxSlotsPerAppointment < domain.MinSlotsPerAppointment || cfg.MaxSlotsPerAppointment > domain.MaxSlotsPerAppointment:
		return nil, fmt.Errorf("%w: max_slots_per_appointment must be between %d and %d",
			ErrInvalidConfig, domain.MinSlotsPerAppointment, domain.MaxSlotsPerAppointment)
	case cfg.OperationalStart.IsAfter(cfg.OperationalEnd):
		return nil, fmt.Errorf("%w: operational_start is after operational_end", ErrInvalidConfig)
	}

	return cfg, nil
}

// Load читает конфигурацию из TOML файла и переменных окружения.
// Путь из CONFIG_PATH имеет приоритет над path.
func Load(path string) (*Config, error) {
	if fromEnv := os.Getenv(PathEnv); fromEnv != "" {
		path = fromEnv
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	// переменные окружения перекрывают значения из файла
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("%w: environment: %v", ErrInvalidConfig, err)
	}

	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
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
		c.Server.ShutdownTimeout = 10
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
		c.Metrics.ServiceName = "appointment_service"
	}
	if c.Redis.IdempotencyTTL == 0 {
		c.Redis.IdempotencyTTL = 86400
	}
	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 10
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 20
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database host and dbname are required", ErrInvalidConfig)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server http_port %d is out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit rps and burst must be positive", ErrInvalidConfig)
	}
	if _, err := c.Scheduling.Location(); err != nil {
		return err
	}
	if _, err := c.Scheduling.DefaultConfiguration(); err != nil {
		return err
	}
	return nil
}
