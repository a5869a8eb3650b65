package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig возвращается, если конфигурация не прошла валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Booking       BookingConfig       `toml:"booking"`
	Lifecycle     LifecycleConfig     `toml:"lifecycle"`
	Notifications NotificationsConfig `toml:"notifications"`
	SMTP          SMTPConfig          `toml:"smtp"`
	Templates     TemplatesConfig     `toml:"templates"`
	Kafka         KafkaConfig         `toml:"kafka"`
	SalesService  SalesServiceConfig  `toml:"sales_service"`
	Admin         AdminConfig         `toml:"admin"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host                string `toml:"host"`
	Port                int    `toml:"port"`
	User                string `toml:"user"`
	Password            string `toml:"password"`
	DBName              string `toml:"dbname"`
	SSLMode             string `toml:"sslmode"`
	MaxOpenConns        int    `toml:"max_open_conns"`
	MaxIdleConns        int    `toml:"max_idle_conns"`
	ConnMaxLifetime     int    `toml:"conn_max_lifetime"`
	SerializableRetries int    `toml:"serializable_retries"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig рабочие часы и формат номера записи
// open_hour = 0 допустим (открытие в полночь), умолчание применяется только если ключ не задан
type BookingConfig struct {
	DefaultTimezone string `toml:"default_timezone"`
	OpenHour        int    `toml:"open_hour"`
	CloseHour       int    `toml:"close_hour"`
	SlotStepMinutes int    `toml:"slot_step_minutes"`
	ReferencePrefix string `toml:"reference_prefix"`
}

// LifecycleConfig поведение машины состояний
// StrictTransitions = true - недопустимый переход возвращает ошибку вместо no-op
// CustomerCancelNoticeHours - за сколько часов до начала клиент ещё может отменить запись сам
type LifecycleConfig struct {
	StrictTransitions         bool `toml:"strict_transitions"`
	CustomerCancelNoticeHours int  `toml:"customer_cancel_notice_hours"`
}

type NotificationsConfig struct {
	RunnerEnabled         bool    `toml:"runner_enabled"`
	IntervalSeconds       int     `toml:"interval_seconds"`
	ReminderWindowHours   int     `toml:"reminder_window_hours"`
	CompletionWindowHours int     `toml:"completion_window_hours"`
	MaxPerPass            int     `toml:"max_per_pass"`
	PassTimeoutSeconds    int     `toml:"pass_timeout_seconds"`
	SendRatePerSecond     float64 `toml:"send_rate_per_second"`
	SendBurst             int     `toml:"send_burst"`
}

func (n NotificationsConfig) Interval() time.Duration {
	return time.Duration(n.IntervalSeconds) * time.Second
}

func (n NotificationsConfig) ReminderWindow() time.Duration {
	return time.Duration(n.ReminderWindowHours) * time.Hour
}

func (n NotificationsConfig) CompletionWindow() time.Duration {
	return time.Duration(n.CompletionWindowHours) * time.Hour
}

func (n NotificationsConfig) PassTimeout() time.Duration {
	return time.Duration(n.PassTimeoutSeconds) * time.Second
}

type SMTPConfig struct {
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
	From      string `toml:"from"`
	PortalURL string `toml:"portal_url"`
}

type TemplatesConfig struct {
	Dir string `toml:"dir"`
}

type KafkaConfig struct {
	Enabled             bool     `toml:"enabled"`
	Brokers             []string `toml:"brokers"`
	Topic               string   `toml:"topic"`
	PollIntervalSeconds int      `toml:"poll_interval_seconds"`
	BatchSize           int      `toml:"batch_size"`
}

type SalesServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

type AdminConfig struct {
	Token string `toml:"token"`
}

// Load читает конфигурацию из TOML файла
// Секреты можно переопределить переменными окружения DB_PASSWORD, SMTP_PASSWORD, ADMIN_TOKEN
func Load(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults(md)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		c.SMTP.Password = v
	}
	if v := os.Getenv("ADMIN_TOKEN"); v != "" {
		c.Admin.Token = v
	}
}

func (c *Config) applyDefaults(md toml.MetaData) {
	setInt(&c.Server.HTTPPort, 8080)
	setInt(&c.Server.ReadTimeout, 15)
	setInt(&c.Server.WriteTimeout, 15)
	setInt(&c.Server.IdleTimeout, 60)
	setInt(&c.Server.ShutdownTimeout, 10)

	setInt(&c.Database.Port, 5432)
	setString(&c.Database.SSLMode, "disable")
	setInt(&c.Database.MaxOpenConns, 25)
	setInt(&c.Database.MaxIdleConns, 5)
	setInt(&c.Database.ConnMaxLifetime, 300)
	setInt(&c.Database.SerializableRetries, 3)

	setString(&c.Logs.Level, "info")
	setString(&c.Metrics.Path, "/metrics")
	setString(&c.Metrics.ServiceName, "booking-service")

	setString(&c.Booking.DefaultTimezone, "UTC")
	if !md.IsDefined("booking", "open_hour") {
		c.Booking.OpenHour = 8
	}
	setInt(&c.Booking.CloseHour, 17)
	setInt(&c.Booking.SlotStepMinutes, 60)
	setString(&c.Booking.ReferencePrefix, "APT/")

	if !md.IsDefined("lifecycle", "customer_cancel_notice_hours") {
		c.Lifecycle.CustomerCancelNoticeHours = 24
	}

	setInt(&c.Notifications.IntervalSeconds, 300)
	setInt(&c.Notifications.ReminderWindowHours, 24)
	setInt(&c.Notifications.CompletionWindowHours, 24)
	setInt(&c.Notifications.MaxPerPass, 100)
	setInt(&c.Notifications.PassTimeoutSeconds, 120)
	setInt(&c.Notifications.SendBurst, 1)
	if c.Notifications.SendRatePerSecond <= 0 {
		c.Notifications.SendRatePerSecond = 5
	}

	setInt(&c.SMTP.Port, 587)
	setString(&c.Templates.Dir, "templates")

	setString(&c.Kafka.Topic, "appointments.events")
	setInt(&c.Kafka.PollIntervalSeconds, 2)
	setInt(&c.Kafka.BatchSize, 50)

	setInt(&c.SalesService.Timeout, 5)
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database host and dbname are required", ErrInvalidConfig)
	}
	if c.Booking.OpenHour < 0 || c.Booking.CloseHour > 24 || c.Booking.OpenHour >= c.Booking.CloseHour {
		return fmt.Errorf("%w: booking hours %d-%d", ErrInvalidConfig, c.Booking.OpenHour, c.Booking.CloseHour)
	}
	if c.Lifecycle.CustomerCancelNoticeHours < 0 {
		return fmt.Errorf("%w: customer_cancel_notice_hours %d", ErrInvalidConfig, c.Lifecycle.CustomerCancelNoticeHours)
	}
	if _, err := time.LoadLocation(c.Booking.DefaultTimezone); err != nil {
		return fmt.Errorf("%w: default_timezone %q: %v", ErrInvalidConfig, c.Booking.DefaultTimezone, err)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("%w: kafka enabled without brokers", ErrInvalidConfig)
	}
	return nil
}

func setInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func setString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}
