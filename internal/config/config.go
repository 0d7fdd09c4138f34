package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	appDir    = "mindstride"
	envPrefix = "MINDSTRIDE"

	// DemoUserID is the fixed single-user identity used when none is configured.
	DemoUserID = "00000000-0000-0000-0000-000000000001"
)

// Config keys. Each maps to a MINDSTRIDE_<KEY> environment variable.
const (
	KeyUserID         = "user_id"
	KeyDBDriver       = "db_driver"
	KeyDBPath         = "db_path"
	KeyLogFile        = "log_file"
	KeyLogLevel       = "log_level"
	KeySourceURL      = "source_url"
	KeySourceTimeout  = "source_timeout"
	KeySourceRetries  = "source_retries"
	KeyPollInterval   = "poll_interval"
	KeyServerAddr     = "server_addr"
	KeyTrackInterval  = "track_interval"
	KeyTrackBatchSize = "track_batch_size"
	KeyRetentionDays  = "retention_days"
	KeyNotify         = "notify"
	KeyRollbarToken   = "rollbar_token"
	KeyEnvironment    = "environment"
)

// Config holds all runtime settings.
type Config struct {
	UserID string

	DBDriver string // "sqlite" or "postgres"
	DBPath   string // file path for sqlite, DSN for postgres

	LogFile  string
	LogLevel string

	SourceURL     string
	SourceTimeout time.Duration
	SourceRetries int
	PollInterval  time.Duration

	ServerAddr string

	TrackInterval  time.Duration
	TrackBatchSize int
	RetentionDays  int

	Notify       bool
	RollbarToken string
	Environment  string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyUserID, DemoUserID)
	v.SetDefault(KeyDBDriver, "sqlite")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeySourceURL, "http://127.0.0.1:5000/api/stats")
	v.SetDefault(KeySourceTimeout, 5*time.Second)
	v.SetDefault(KeySourceRetries, 1)
	v.SetDefault(KeyPollInterval, 15*time.Second)
	v.SetDefault(KeyServerAddr, "127.0.0.1:5000")
	v.SetDefault(KeyTrackInterval, 5*time.Second)
	v.SetDefault(KeyTrackBatchSize, 1)
	v.SetDefault(KeyRetentionDays, 30)
	v.SetDefault(KeyNotify, true)
	v.SetDefault(KeyEnvironment, "development")
}

// Load builds the configuration from defaults, an optional config.yaml in
// the XDG config directory, .env.local and .env files in envDir, and
// MINDSTRIDE_* environment variables, in increasing priority.
func Load(envDir string) (*Config, error) {
	if err := loadDotEnv(envDir); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	return fromViper(v)
}

// loadDotEnv loads .env.local first so it wins over .env. Variables already
// present in the environment are never overwritten.
func loadDotEnv(dir string) error {
	for _, name := range []string{".env.local", ".env"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("checking %s: %w", path, err)
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
	}
	return nil
}

func readConfigFile(v *viper.Viper) error {
	path, err := xdg.SearchConfigFile(filepath.Join(appDir, "config.yaml"))
	if err != nil {
		// No config file is fine.
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return nil
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		UserID:         v.GetString(KeyUserID),
		DBDriver:       v.GetString(KeyDBDriver),
		DBPath:         v.GetString(KeyDBPath),
		LogFile:        v.GetString(KeyLogFile),
		LogLevel:       v.GetString(KeyLogLevel),
		SourceURL:      v.GetString(KeySourceURL),
		SourceTimeout:  v.GetDuration(KeySourceTimeout),
		SourceRetries:  v.GetInt(KeySourceRetries),
		PollInterval:   v.GetDuration(KeyPollInterval),
		ServerAddr:     v.GetString(KeyServerAddr),
		TrackInterval:  v.GetDuration(KeyTrackInterval),
		TrackBatchSize: v.GetInt(KeyTrackBatchSize),
		RetentionDays:  v.GetInt(KeyRetentionDays),
		Notify:         v.GetBool(KeyNotify),
		RollbarToken:   v.GetString(KeyRollbarToken),
		Environment:    v.GetString(KeyEnvironment),
	}

	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "postgres" {
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}
	if cfg.DBPath == "" {
		if cfg.DBDriver == "postgres" {
			return nil, fmt.Errorf("%s_DB_PATH must hold a DSN when using postgres", envPrefix)
		}
		p, err := xdg.DataFile(filepath.Join(appDir, "mindstride.db"))
		if err != nil {
			return nil, fmt.Errorf("resolving database path: %w", err)
		}
		cfg.DBPath = p
	}
	if cfg.LogFile == "" {
		p, err := xdg.StateFile(filepath.Join(appDir, "mindstride.log"))
		if err != nil {
			return nil, fmt.Errorf("resolving log path: %w", err)
		}
		cfg.LogFile = p
	}
	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive, got %s", cfg.PollInterval)
	}
	if cfg.TrackInterval <= 0 {
		return nil, fmt.Errorf("track interval must be positive, got %s", cfg.TrackInterval)
	}
	if cfg.TrackBatchSize < 1 {
		cfg.TrackBatchSize = 1
	}
	if cfg.RetentionDays < 1 {
		return nil, fmt.Errorf("retention days must be at least 1, got %d", cfg.RetentionDays)
	}
	return cfg, nil
}
