package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/semver-bumper/internal/domain/semver"
	"github.com/oshokin/semver-bumper/internal/logger"
)

// Config holds the settings shared by every semver-bumper command.
type Config struct {
	// VersionFile is the path to the text file holding the version.
	VersionFile string `yaml:"version_file"`
	// InitialVersion is written when the version file does not exist yet.
	InitialVersion *semver.Version `yaml:"initial_version"`
	// LockTimeout bounds how long a command waits for another one to release the file.
	LockTimeout time.Duration `yaml:"lock_timeout"`
	// StaleLockLifetime is the age after which a lock is reclaimed even if its holder is still running.
	StaleLockLifetime time.Duration `yaml:"stale_lock_lifetime"`
	// LogLevel is the minimum level of log entries written to stderr.
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "semver-bumper.yaml"

	// DefaultVersionFilename is the default filename of the version file.
	DefaultVersionFilename = "version.txt"

	// DefaultInitialVersion is the content of a freshly created version file.
	DefaultInitialVersion = "0.0.1"

	// DefaultLockTimeout is how long a command waits for the version file lock.
	DefaultLockTimeout = 5 * time.Second

	// DefaultStaleLockLifetime is the age after which a lock held by a live process is reclaimed.
	DefaultStaleLockLifetime = 30 * time.Second

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the permission for files written by the tool.
	DefaultFilePermissions = 0o644
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownLogLevel is returned for log levels zap does not know.
	errUnknownLogLevel = errors.New("unknown log level")
	// errStaleLockLifetimeTooShort is returned when locks could be reclaimed while callers still wait for them.
	errStaleLockLifetimeTooShort = errors.New("stale_lock_lifetime must not be shorter than lock_timeout")
)

// Default returns settings filled with default values.
func Default() *Config {
	initial := semver.MustParse(DefaultInitialVersion)

	return &Config{
		VersionFile:       DefaultVersionFilename,
		InitialVersion:    &initial,
		LockTimeout:       DefaultLockTimeout,
		StaleLockLifetime: DefaultStaleLockLifetime,
		LogLevel:          DefaultLogLevel,
	}
}

// Load reads configuration from the provided path and validates it.
// A missing file is not an error: defaults are returned instead.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

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

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the settings and fills unset fields with defaults.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	defaults := Default()

	if settings.VersionFile == "" {
		settings.VersionFile = defaults.VersionFile
	}

	if settings.InitialVersion == nil {
		settings.InitialVersion = defaults.InitialVersion
	}

	if settings.LockTimeout <= 0 {
		settings.LockTimeout = defaults.LockTimeout
	}

	if settings.StaleLockLifetime <= 0 {
		settings.StaleLockLifetime = max(defaults.StaleLockLifetime, settings.LockTimeout)
	}

	if settings.StaleLockLifetime < settings.LockTimeout {
		return fmt.Errorf("%s < %s: %w", settings.StaleLockLifetime, settings.LockTimeout, errStaleLockLifetimeTooShort)
	}

	if settings.LogLevel == "" {
		settings.LogLevel = defaults.LogLevel
	}

	if _, ok := logger.ParseLogLevel(settings.LogLevel); !ok {
		return fmt.Errorf("%q: %w", settings.LogLevel, errUnknownLogLevel)
	}

	return nil
}
