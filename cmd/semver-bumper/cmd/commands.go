package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/semver-bumper/internal/service/bumper"
)

var (
	showCmd = &cobra.Command{
		Use:   "show",
		Short: "Print the current version, creating the file if it does not exist.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, bumper.ActionShow, "")
		},
	}

	bumpCmd = &cobra.Command{
		Use:   "bump major|minor|patch",
		Short: "Increment MAJOR, MINOR or PATCH; labels are kept.",
		Long: `Increments one component of the version and zeroes the lower ones:

  major: 0.1.2-SNAPSHOT -> 1.0.0-SNAPSHOT
  minor: 0.1.2-SNAPSHOT -> 0.2.0-SNAPSHOT
  patch: 0.1.2-SNAPSHOT -> 0.1.3-SNAPSHOT

The level is matched case-insensitively.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"major", "minor", "patch"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, bumper.ActionBump, args[0])
		},
	}

	setCmd = &cobra.Command{
		Use:   "set VERSION",
		Short: "Replace the version with an explicit one.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, bumper.ActionSet, args[0])
		},
	}

	setPreReleaseCmd = &cobra.Command{
		Use:   "set-pre-release LABEL",
		Short: "Replace the pre-release label (the part after '-').",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, bumper.ActionSetPreRelease, args[0])
		},
	}

	setBuildMetadataCmd = &cobra.Command{
		Use:   "set-build-metadata LABEL",
		Short: "Replace the build metadata (the part after '+').",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, bumper.ActionSetBuildMetadata, args[0])
		},
	}

	resetPreReleaseCmd = &cobra.Command{
		Use:   "reset-pre-release",
		Short: "Remove the pre-release label.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, bumper.ActionResetPreRelease, "")
		},
	}

	resetBuildMetadataCmd = &cobra.Command{
		Use:   "reset-build-metadata",
		Short: "Remove the build metadata.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, bumper.ActionResetBuildMetadata, "")
		},
	}
)
