package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"marketing-dashboard-service/internal/dashboard/core/domain"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all configuration for the service
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Store     StoreConfig     `yaml:"store"`
	Schema    SchemaConfig    `yaml:"schema"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port                   int `yaml:"port"`
	ShutdownTimeoutSeconds int `yaml:"shutdown_timeout_seconds"`
}

func (c ServerConfig) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// DatabaseConfig holds the postgres pool settings
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	ConnectRetries         uint64 `yaml:"connect_retries"`
}

func (c DatabaseConfig) ConnMaxLifetime() time.Duration {
	return time.Duration(c.ConnMaxLifetimeMinutes) * time.Minute
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// StoreConfig selects the record store backend
type StoreConfig struct {
	Driver      string            `yaml:"driver"`       // postgres or memory
	FixturePath string            `yaml:"fixture_path"` // memory only; empty means built-in demo data
	Tables      map[string]string `yaml:"tables"`       // entity -> table or view override
}

// SchemaConfig declares optional integrations when auto detection is off
type SchemaConfig struct {
	AutoDetect       bool   `yaml:"auto_detect"`
	MailingCampaign  bool   `yaml:"mailing_campaign"`
	MailingSource    bool   `yaml:"mailing_source"`
	ABTesting        bool   `yaml:"ab_testing"`
	InvoicingFields  bool   `yaml:"invoicing_fields"`
	Orders           bool   `yaml:"orders"`
	Stages           bool   `yaml:"stages"`
	LinkTracking     bool   `yaml:"link_tracking"`
	TraceStatusField string `yaml:"trace_status_field"` // trace_status or state
}

func (c SchemaConfig) Capabilities() domain.SchemaCapabilities {
	return domain.SchemaCapabilities{
		MailingCampaign:  c.MailingCampaign,
		MailingSource:    c.MailingSource,
		ABTesting:        c.ABTesting,
		InvoicingFields:  c.InvoicingFields,
		Orders:           c.Orders,
		Stages:           c.Stages,
		LinkTracking:     c.LinkTracking,
		TraceStatusField: domain.StatusField(c.TraceStatusField),
	}
}

// DashboardConfig holds result limits
type DashboardConfig struct {
	TopLinksLimit         int `yaml:"top_links_limit"`
	TopRevenueLimit       int `yaml:"top_revenue_limit"`
	FilterMailingsLimit   int `yaml:"filter_mailings_limit"`
	NewContactsWindowDays int `yaml:"new_contacts_window_days"`
}

func (c DashboardConfig) NewContactsWindow() time.Duration {
	return time.Duration(c.NewContactsWindowDays) * 24 * time.Hour
}

// Load reads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := Config{Schema: SchemaConfig{AutoDetect: true}}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ShutdownTimeoutSeconds == 0 {
		c.Server.ShutdownTimeoutSeconds = 5
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 20
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 10
	}
	if c.Database.ConnMaxLifetimeMinutes == 0 {
		c.Database.ConnMaxLifetimeMinutes = 30
	}
	if c.Database.ConnectRetries == 0 {
		c.Database.ConnectRetries = 5
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Store.Driver == "" {
		c.Store.Driver = DriverPostgres
	}
	if c.Dashboard.TopLinksLimit == 0 {
		c.Dashboard.TopLinksLimit = 5
	}
	if c.Dashboard.TopRevenueLimit == 0 {
		c.Dashboard.TopRevenueLimit = 5
	}
	if c.Dashboard.FilterMailingsLimit == 0 {
		c.Dashboard.FilterMailingsLimit = 50
	}
	if c.Dashboard.NewContactsWindowDays == 0 {
		c.Dashboard.NewContactsWindowDays = 30
	}
}

// LoadFromEnv loads configuration with environment variable overrides.
// A .env file in the working directory is read first if present.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" {
		cfg.Database.DSN = dsn
	}
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Server.Port = p
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if driver := os.Getenv("STORE_DRIVER"); driver != "" {
		cfg.Store.Driver = driver
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverPostgres:
		if c.Database.DSN == "" {
			return errors.New("POSTGRES_DSN is not set")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Dashboard.TopLinksLimit < 0 || c.Dashboard.TopRevenueLimit < 0 ||
		c.Dashboard.FilterMailingsLimit < 0 || c.Dashboard.NewContactsWindowDays < 0 {
		return errors.New("dashboard limits must be positive")
	}
	if !c.Schema.AutoDetect && c.Schema.TraceStatusField != "" &&
		!domain.StatusField(c.Schema.TraceStatusField).Valid() {
		return fmt.Errorf("invalid trace_status_field %q", c.Schema.TraceStatusField)
	}
	return nil
}
