package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Twilio holds credentials for the SMS delivery backend.
// When AccountSID is empty, the server falls back to a no-op sender.
type Twilio struct {
	// AccountSID identifies the Twilio account.
	AccountSID string `yaml:"account_sid"`
	// AuthToken authenticates API calls.
	AuthToken string `yaml:"auth_token"`
	// FromNumber is the sending phone number in E.164 form.
	FromNumber string `yaml:"from_number"`
	// BaseURL overrides the API endpoint, used by tests.
	BaseURL string `yaml:"base_url"`
}

// Config holds all settings for the reminder server.
type Config struct {
	// ListenAddress is the HTTP listen address, e.g. ":5000".
	ListenAddress string `yaml:"listen_addr"`
	// MongoURI is the MongoDB connection string.
	MongoURI string `yaml:"mongo_uri"`
	// MongoDatabase is the database holding reminders and users.
	MongoDatabase string `yaml:"mongo_database"`
	// SweepInterval is the cadence of the expiry reconciliation sweep.
	SweepInterval time.Duration `yaml:"sweep_interval"`
	// StartupDelay is waited before the first sweep so collaborators
	// finish initializing.
	StartupDelay time.Duration `yaml:"startup_delay"`
	// Timeout bounds every outbound operation (store, SMS, flag writes).
	Timeout time.Duration `yaml:"timeout"`
	// JWTSecret signs bearer tokens.
	JWTSecret string `yaml:"jwt_secret"`
	// TokenTTL is the bearer token lifetime.
	TokenTTL time.Duration `yaml:"token_ttl"`
	// AlarmFlagFile is the path of the JSON alarm flag slot when no
	// Firebase URL is configured.
	AlarmFlagFile string `yaml:"alarm_flag_file"`
	// FirebaseURL is the Realtime Database base URL holding the alarm
	// flag slot. When set it takes precedence over AlarmFlagFile.
	FirebaseURL string `yaml:"firebase_url"`
	// Twilio configures the SMS backend.
	Twilio Twilio `yaml:"twilio"`
	// LogLevel is the minimum level for log output.
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the default filename for server settings.
	DefaultConfigFilename = "reminder-server-settings.yaml"

	// DefaultAlarmFlagFilename is the default filename for the alarm flag JSON slot.
	DefaultAlarmFlagFilename = "reminder-alarm-flag.json"

	// DefaultMongoDatabase is the default database name.
	DefaultMongoDatabase = "product-expiry-reminder"

	// DefaultSweepInterval is the default cadence of the reconciliation sweep.
	DefaultSweepInterval = time.Minute

	// DefaultStartupDelay is the default grace period before the first sweep.
	DefaultStartupDelay = 3 * time.Second

	// DefaultTimeout is the default duration for outbound operations.
	DefaultTimeout = 5 * time.Second

	// DefaultTokenTTL is the default bearer token lifetime.
	DefaultTokenTTL = 7 * 24 * time.Hour

	// DefaultFilePermissions is the default file permission for config and state files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errListenAddressRequired is returned when the listen address is missing.
	errListenAddressRequired = errors.New("listen address must be provided")
	// errMongoURIRequired is returned when the MongoDB connection string is missing.
	errMongoURIRequired = errors.New("mongo URI must be provided")
	// errJWTSecretRequired is returned when the token signing secret is missing.
	errJWTSecretRequired = errors.New("jwt secret must be provided")
)

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions, the file carries credentials.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for required fields and fills defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.ListenAddress == "" {
		return errListenAddressRequired
	}

	if _, err := net.ResolveTCPAddr("tcp", cfg.ListenAddress); err != nil {
		return fmt.Errorf("invalid listen address: %w", err)
	}

	if cfg.MongoURI == "" {
		return errMongoURIRequired
	}

	if cfg.JWTSecret == "" {
		return errJWTSecretRequired
	}

	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = DefaultMongoDatabase
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = DefaultSweepInterval
	}

	if cfg.StartupDelay < 0 {
		cfg.StartupDelay = DefaultStartupDelay
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}

	if cfg.AlarmFlagFile == "" {
		cfg.AlarmFlagFile = DefaultAlarmFlagFilename
	}

	if cfg.FirebaseURL == "" {
		return nil
	}

	if _, err := url.ParseRequestURI(cfg.FirebaseURL); err != nil {
		return fmt.Errorf("invalid firebase URL: %w", err)
	}

	return nil
}
