// Package config provides functionality for managing configuration options
// for the application using command-line flags, environment variables, and
// a YAML config file.
package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string `yaml:"addr"`

	// BaseURL is the public base URL embedded in confirmation links.
	BaseURL string `yaml:"base_url"`

	// DatabaseDSN holds the database connection string.
	DatabaseDSN string `yaml:"database_dsn"`

	// HMACSecret is the process-wide secret used to sign redirect
	// messages. Loaded once at startup, read-only afterwards.
	HMACSecret string `yaml:"hmac_secret"`

	// Mail configures the outbound mail provider.
	Mail MailOptions `yaml:"mail"`

	// Cleaner configures the stale pending-subscription pruner.
	Cleaner CleanerOptions `yaml:"cleaner"`

	// Config is the path to the config file.
	Config string `yaml:"-"`
}

// MailOptions holds mail provider settings.
type MailOptions struct {
	// BaseURL is the provider API base URL.
	BaseURL string `yaml:"base_url"`
	// ServerToken is the provider API credential.
	ServerToken string `yaml:"server_token"`
	// Sender is the From address on every outgoing message.
	Sender string `yaml:"sender"`
	// TimeoutSeconds bounds each provider request.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// CleanerOptions holds pruner settings.
type CleanerOptions struct {
	// IntervalMinutes is how often the pruner runs.
	IntervalMinutes int `yaml:"interval_minutes"`
	// RetentionDays is how long a pending subscription is kept before
	// being pruned.
	RetentionDays int `yaml:"retention_days"`
}

// Timeout returns the provider request timeout as a duration.
func (m MailOptions) Timeout() time.Duration {
	if m.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(m.TimeoutSeconds) * time.Second
}

// Interval returns the pruner interval as a duration.
func (c CleanerOptions) Interval() time.Duration {
	if c.IntervalMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.IntervalMinutes) * time.Minute
}

// Retention returns the pruner retention window as a duration.
func (c CleanerOptions) Retention() time.Duration {
	if c.RetentionDays <= 0 {
		return 30 * 24 * time.Hour
	}
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.BaseURL, "b", "http://localhost:8080", "public base url")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.Config, "config", "config.yaml", "path to config file")
	flag.StringVar(&options.Config, "c", "config.yaml", "path to config file (shorthand)")
}

// Parse parses the command-line flags, the config file, and environment
// variables to set configuration values. Precedence: flags, then file,
// then environment overrides. It returns a pointer to the Options struct
// containing the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Load a .env file if present, ignoring its absence.
	_ = godotenv.Load()

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := yaml.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Addr = serverAddress
	}
	if baseURL := os.Getenv("BASE_URL"); baseURL != "" {
		options.BaseURL = baseURL
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if secret := os.Getenv("HMAC_SECRET"); secret != "" {
		options.HMACSecret = secret
	}
	if token := os.Getenv("MAIL_SERVER_TOKEN"); token != "" {
		options.Mail.ServerToken = token
	}

	return options
}
