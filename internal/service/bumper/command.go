package bumper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/oshokin/semver-bumper/internal/config"
	"github.com/oshokin/semver-bumper/internal/domain/semver"
	"github.com/oshokin/semver-bumper/internal/logger"
	"github.com/oshokin/semver-bumper/internal/repository/versionfile"
)

// Action selects what Run does with the version file.
type Action string

const (
	// ActionShow prints the current version.
	ActionShow Action = "show"
	// ActionBump increments the level named by the argument.
	ActionBump Action = "bump"
	// ActionSet replaces the version with the one given as argument.
	ActionSet Action = "set"
	// ActionSetPreRelease replaces the pre-release label.
	ActionSetPreRelease Action = "set-pre-release"
	// ActionSetBuildMetadata replaces the build metadata label.
	ActionSetBuildMetadata Action = "set-build-metadata"
	// ActionResetPreRelease removes the pre-release label.
	ActionResetPreRelease Action = "reset-pre-release"
	// ActionResetBuildMetadata removes the build metadata label.
	ActionResetBuildMetadata Action = "reset-build-metadata"
)

// Options controls a single semver-bumper invocation.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// VersionFile overrides the version file path from config when specified.
	VersionFile string
	// LogLevel overrides the log level from config when specified.
	LogLevel string
	// Action is the operation to perform.
	Action Action
	// Argument is the action parameter (level token, version or label).
	Argument string
	// Output receives the resulting version, defaults to stdout.
	Output io.Writer
}

var (
	// errUnknownAction is returned for actions Run does not implement.
	errUnknownAction = errors.New("unknown action")
	// errUnknownLogLevel is returned when the requested log level cannot be parsed.
	errUnknownLogLevel = errors.New("unknown log level")
)

// Run loads settings, applies the requested action to the version file and
// prints the resulting version.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "semver-bumper")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	// Command line options override config values.
	if opts.VersionFile != "" {
		cfg.VersionFile = opts.VersionFile
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	level, ok := logger.ParseLogLevel(cfg.LogLevel)
	if !ok {
		return fmt.Errorf("%q: %w", cfg.LogLevel, errUnknownLogLevel)
	}

	logger.SetLevel(level)

	// Resolve the operation before touching the file so bad arguments fail fast.
	op, err := operationFor(opts.Action, opts.Argument)
	if err != nil {
		return err
	}

	ctx = logger.WithKV(ctx, "file", cfg.VersionFile)

	repository := versionfile.NewFileRepository(cfg.VersionFile,
		versionfile.WithLockTimeout(cfg.LockTimeout),
		versionfile.WithStaleLockLifetime(cfg.StaleLockLifetime),
	)

	svc, err := NewService(repository, *cfg.InitialVersion)
	if err != nil {
		return fmt.Errorf("initialise service: %w", err)
	}

	result, err := svc.Apply(ctx, op)
	if err != nil {
		return err
	}

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	if _, err = fmt.Fprintln(output, result.New.String()); err != nil {
		return fmt.Errorf("print version: %w", err)
	}

	return nil
}

// operationFor maps an action and its argument to an Operation.
func operationFor(action Action, argument string) (Operation, error) {
	switch action {
	case ActionShow:
		return Show(), nil
	case ActionBump:
		level, err := semver.ParseLevel(argument)
		if err != nil {
			return Operation{}, err
		}

		return Bump(level), nil
	case ActionSet:
		target, err := semver.Parse(argument)
		if err != nil {
			return Operation{}, err
		}

		return Set(target), nil
	case ActionSetPreRelease:
		return SetPreRelease(argument), nil
	case ActionSetBuildMetadata:
		return SetBuildMetadata(argument), nil
	case ActionResetPreRelease:
		return ResetPreRelease(), nil
	case ActionResetBuildMetadata:
		return ResetBuildMetadata(), nil
	default:
		return Operation{}, fmt.Errorf("%q: %w", action, errUnknownAction)
	}
}
