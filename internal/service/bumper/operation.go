package bumper

import (
	"fmt"
	"slices"

	"github.com/oshokin/semver-bumper/internal/domain/semver"
)

// Operation is a named pure transformation of a version.
type Operation struct {
	// Name identifies the operation in logs and results.
	Name string
	// Transform computes the new version from the current one.
	Transform func(semver.Version) semver.Version
	// Check, when set, rejects current versions the operation cannot apply to.
	Check func(semver.Version) error
}

// Bump increments the component selected by level.
func Bump(level semver.Level) Operation {
	return Operation{
		Name: "bump " + level.String(),
		Transform: func(v semver.Version) semver.Version {
			return v.Bump(level)
		},
		Check: func(v semver.Version) error {
			if !slices.Contains(semver.Levels(), level) {
				return fmt.Errorf("%s: %w", level, semver.ErrUnknownLevel)
			}

			if !v.CanBump(level) {
				return fmt.Errorf("bump %s of %s: %w", level, v, semver.ErrComponentOverflow)
			}

			return nil
		},
	}
}

// SetPreRelease replaces the pre-release label.
func SetPreRelease(value string) Operation {
	return Operation{
		Name: "set pre-release",
		Transform: func(v semver.Version) semver.Version {
			return v.SetPreRelease(value)
		},
	}
}

// SetBuildMetadata replaces the build metadata label.
func SetBuildMetadata(value string) Operation {
	return Operation{
		Name: "set build metadata",
		Transform: func(v semver.Version) semver.Version {
			return v.SetBuildMetadata(value)
		},
	}
}

// ResetPreRelease removes the pre-release label.
func ResetPreRelease() Operation {
	return Operation{
		Name: "reset pre-release",
		Transform: func(v semver.Version) semver.Version {
			return v.ResetPreRelease()
		},
	}
}

// ResetBuildMetadata removes the build metadata label.
func ResetBuildMetadata() Operation {
	return Operation{
		Name: "reset build metadata",
		Transform: func(v semver.Version) semver.Version {
			return v.ResetBuildMetadata()
		},
	}
}

// Set replaces the whole version with an explicit one.
func Set(target semver.Version) Operation {
	return Operation{
		Name: "set",
		Transform: func(semver.Version) semver.Version {
			return target
		},
	}
}

// Show leaves the version untouched; applying it only reads (and if needed creates) the file.
func Show() Operation {
	return Operation{
		Name: "show",
		Transform: func(v semver.Version) semver.Version {
			return v
		},
	}
}
