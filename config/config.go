package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Site       SiteConfig       `yaml:"site"`
	Booking    BookingConfig    `yaml:"booking"`
	Database   DatabaseConfig   `yaml:"database"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// SiteConfig describes the reservation site the client talks to.
type SiteConfig struct {
	BaseURL        string            `yaml:"base_url"`
	UserAgent      string            `yaml:"user_agent"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
	Timeout        time.Duration     `yaml:"-"` // derived from TimeoutSeconds
	Rooms          map[string]string `yaml:"rooms"`
}

// BookingConfig holds the timing knobs of a booking run.
type BookingConfig struct {
	StartTime            string        `yaml:"start_time"` // HH:MM, when reservations open
	HeadStartSeconds     int           `yaml:"head_start_seconds"`
	FinalLeadSeconds     int           `yaml:"final_lead_seconds"`
	BurstDurationSeconds int           `yaml:"burst_duration_seconds"`
	BurstIntervalMillis  int           `yaml:"burst_interval_millis"`
	FallbackAttempts     int           `yaml:"fallback_attempts"`
	AlternativeEnabled   bool          `yaml:"alternative_booking_enabled"`
	HeadStart            time.Duration `yaml:"-"`
	FinalLead            time.Duration `yaml:"-"`
	BurstDuration        time.Duration `yaml:"-"`
	BurstInterval        time.Duration `yaml:"-"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// DatabaseConfig holds the run-journal database configuration. The journal is
// process-lifetime scratch, so the default DSN is an in-memory database.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// Load reads the configuration from the given path and applies defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Site.BaseURL == "" {
		return nil, fmt.Errorf("site.base_url must be configured")
	}
	if cfg.Site.TimeoutSeconds <= 0 {
		cfg.Site.TimeoutSeconds = 30
	}
	cfg.Site.Timeout = time.Duration(cfg.Site.TimeoutSeconds) * time.Second

	if cfg.Booking.StartTime == "" {
		cfg.Booking.StartTime = "08:00"
	}
	if _, err := time.Parse("15:04", cfg.Booking.StartTime); err != nil {
		return nil, fmt.Errorf("booking.start_time %q is not HH:MM: %w", cfg.Booking.StartTime, err)
	}
	if cfg.Booking.HeadStartSeconds <= 0 {
		cfg.Booking.HeadStartSeconds = 10
	}
	if cfg.Booking.FinalLeadSeconds <= 0 {
		cfg.Booking.FinalLeadSeconds = 1
	}
	if cfg.Booking.BurstDurationSeconds <= 0 {
		cfg.Booking.BurstDurationSeconds = 3
	}
	if cfg.Booking.BurstIntervalMillis <= 0 {
		cfg.Booking.BurstIntervalMillis = 100
	}
	if cfg.Booking.FallbackAttempts <= 0 {
		cfg.Booking.FallbackAttempts = 5
	}
	cfg.Booking.HeadStart = time.Duration(cfg.Booking.HeadStartSeconds) * time.Second
	cfg.Booking.FinalLead = time.Duration(cfg.Booking.FinalLeadSeconds) * time.Second
	cfg.Booking.BurstDuration = time.Duration(cfg.Booking.BurstDurationSeconds) * time.Second
	cfg.Booking.BurstInterval = time.Duration(cfg.Booking.BurstIntervalMillis) * time.Millisecond

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file::memory:?cache=shared"
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}

	if cfg.WorkerPool.Size <= 0 {
		cfg.WorkerPool.Size = 1
	}

	return &cfg, nil
}
