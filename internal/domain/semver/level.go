package semver

import (
	"fmt"
	"strings"
)

// Level is the granularity of a version increment.
type Level int

const (
	// Major increments MAJOR and resets MINOR and PATCH.
	Major Level = iota + 1
	// Minor increments MINOR and resets PATCH.
	Minor
	// Patch increments PATCH.
	Patch
)

// Levels lists every supported level in token order.
func Levels() []Level {
	return []Level{Major, Minor, Patch}
}

// String returns the upper-case token for the level.
func (l Level) String() string {
	switch l {
	case Major:
		return "MAJOR"
	case Minor:
		return "MINOR"
	case Patch:
		return "PATCH"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// ParseLevel matches token case-insensitively against MAJOR, MINOR and PATCH.
func ParseLevel(token string) (Level, error) {
	normalized := strings.ToUpper(strings.TrimSpace(token))
	for _, l := range Levels() {
		if l.String() == normalized {
			return l, nil
		}
	}

	return 0, fmt.Errorf("%q: %w", token, ErrUnknownLevel)
}
