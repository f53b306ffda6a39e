package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/semver-bumper/internal/buildinfo"
	"github.com/oshokin/semver-bumper/internal/config"
	"github.com/oshokin/semver-bumper/internal/service/bumper"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// versionFile overrides the version file path from config.
	versionFile string
	// logLevel overrides the log level from config.
	logLevel string

	// rootCmd represents the base command; subcommands operate on the version file.
	rootCmd = &cobra.Command{
		Use:   "semver-bumper",
		Short: "Read and update a semantic version stored in a text file.",
		Long: `Manages a single semantic version persisted in a text file (version.txt by default).

The file holds one line such as 1.4.0-SNAPSHOT+build.7 and is created with 0.0.1
on first use. Every command prints the resulting version to stdout.

Bumping keeps the pre-release and build metadata labels; reset them explicitly
to produce a clean release:

  semver-bumper bump minor
  semver-bumper reset-pre-release
  semver-bumper reset-build-metadata`,
		SilenceUsage: true,
	}
)

// Execute runs the semver-bumper CLI and exits with non-zero status on error.
func Execute() {
	buildinfo.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// run executes action against the version file with signal-aware cancellation.
func run(cmd *cobra.Command, action bumper.Action, argument string) error {
	// Setup graceful shutdown handling.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	options := &bumper.Options{
		ConfigPath:  configPath,
		VersionFile: versionFile,
		LogLevel:    logLevel,
		Action:      action,
		Argument:    argument,
		Output:      cmd.OutOrStdout(),
	}

	return bumper.Run(ctx, options)
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().
		StringVarP(&versionFile, "file", "f", "", "path to the version file (overrides config)")
	rootCmd.PersistentFlags().
		StringVarP(&logLevel, "log-level", "l", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		showCmd,
		bumpCmd,
		setCmd,
		setPreReleaseCmd,
		setBuildMetadataCmd,
		resetPreReleaseCmd,
		resetBuildMetadataCmd,
	)
}
