package semver

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// versionPattern is the semver.org grammar with capture groups for
// major, minor, patch, pre-release and build metadata.
var versionPattern = regexp.MustCompile(
	`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)` +
		`(?:-((?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*))?` +
		`(?:\+([0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?$`,
)

// Version is an immutable semantic version.
// An empty pre-release or build metadata means the label is absent.
type Version struct {
	// major is the MAJOR component.
	major uint64
	// minor is the MINOR component.
	minor uint64
	// patch is the PATCH component.
	patch uint64
	// preRelease is the label after '-', without the separator.
	preRelease string
	// buildMetadata is the label after '+', without the separator.
	buildMetadata string
}

// New builds a Version from components without validating them.
// Callers must pass components that are already valid on their own.
func New(major, minor, patch uint64, preRelease, buildMetadata string) Version {
	return Version{
		major:         major,
		minor:         minor,
		patch:         patch,
		preRelease:    preRelease,
		buildMetadata: buildMetadata,
	}
}

// Parse reads a semantic version from text. Surrounding whitespace is ignored.
func Parse(text string) (Version, error) {
	groups := versionPattern.FindStringSubmatch(strings.TrimSpace(text))
	if groups == nil {
		return Version{}, &ParseError{Input: text}
	}

	var numbers [3]uint64

	for i := range numbers {
		n, err := strconv.ParseUint(groups[i+1], 10, 64)
		if err != nil {
			// The grammar accepts any digit count; values past uint64 are rejected here.
			return Version{}, &ParseError{Input: text}
		}

		numbers[i] = n
	}

	return New(numbers[0], numbers[1], numbers[2], groups[4], groups[5]), nil
}

// MustParse is like Parse but panics when text is not a valid version.
func MustParse(text string) Version {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}

	return v
}

// Major returns the MAJOR component.
func (v Version) Major() uint64 { return v.major }

// Minor returns the MINOR component.
func (v Version) Minor() uint64 { return v.minor }

// Patch returns the PATCH component.
func (v Version) Patch() uint64 { return v.patch }

// PreRelease returns the pre-release label or an empty string.
func (v Version) PreRelease() string { return v.preRelease }

// BuildMetadata returns the build metadata label or an empty string.
func (v Version) BuildMetadata() string { return v.buildMetadata }

// Bump increments the component selected by level and zeroes the ones below it.
// Pre-release and build metadata are carried over unchanged; reset them
// explicitly to produce a clean release. An unknown level, or a component
// already at math.MaxUint64 (see CanBump), returns v as is.
func (v Version) Bump(level Level) Version {
	if !v.CanBump(level) {
		return v
	}

	switch level {
	case Major:
		return New(v.major+1, 0, 0, v.preRelease, v.buildMetadata)
	case Minor:
		return New(v.major, v.minor+1, 0, v.preRelease, v.buildMetadata)
	case Patch:
		return New(v.major, v.minor, v.patch+1, v.preRelease, v.buildMetadata)
	default:
		return v
	}
}

// CanBump reports whether Bump(level) yields a new version.
// It is false for unknown levels and when the selected component cannot be incremented.
func (v Version) CanBump(level Level) bool {
	switch level {
	case Major:
		return v.major < math.MaxUint64
	case Minor:
		return v.minor < math.MaxUint64
	case Patch:
		return v.patch < math.MaxUint64
	default:
		return false
	}
}

// SetPreRelease returns a copy with the pre-release label replaced.
// The label is not checked against the identifier grammar.
func (v Version) SetPreRelease(value string) Version {
	return New(v.major, v.minor, v.patch, value, v.buildMetadata)
}

// SetBuildMetadata returns a copy with the build metadata replaced.
// The label is not checked against the identifier grammar.
func (v Version) SetBuildMetadata(value string) Version {
	return New(v.major, v.minor, v.patch, v.preRelease, value)
}

// ResetPreRelease returns a copy without a pre-release label.
func (v Version) ResetPreRelease() Version {
	return v.SetPreRelease("")
}

// ResetBuildMetadata returns a copy without build metadata.
func (v Version) ResetBuildMetadata() Version {
	return v.SetBuildMetadata("")
}

// String renders the canonical MAJOR.MINOR.PATCH[-PRERELEASE][+BUILDMETADATA] form.
func (v Version) String() string {
	var b strings.Builder

	b.WriteString(strconv.FormatUint(v.major, 10))
	b.WriteByte('.')
	b.WriteString(strconv.FormatUint(v.minor, 10))
	b.WriteByte('.')
	b.WriteString(strconv.FormatUint(v.patch, 10))

	if v.preRelease != "" {
		b.WriteByte('-')
		b.WriteString(v.preRelease)
	}

	if v.buildMetadata != "" {
		b.WriteByte('+')
		b.WriteString(v.buildMetadata)
	}

	return b.String()
}

// IsCanonical reports whether the rendered form of v parses back to v.
// It is false only for values built with unchecked labels.
func (v Version) IsCanonical() bool {
	parsed, err := Parse(v.String())

	return err == nil && parsed == v
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*v = parsed

	return nil
}
