package semver

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestParse_Components checks that every capture group lands in the right field.
func TestParse_Components(t *testing.T) {
	t.Parallel()

	v, err := Parse("0.1.2-SNAPSHOT+build.12")
	require.NoError(t, err)
	require.Equal(t, uint64(0), v.Major())
	require.Equal(t, uint64(1), v.Minor())
	require.Equal(t, uint64(2), v.Patch())
	require.Equal(t, "SNAPSHOT", v.PreRelease())
	require.Equal(t, "build.12", v.BuildMetadata())

	v, err = Parse("10.20.30")
	require.NoError(t, err)
	require.Empty(t, v.PreRelease())
	require.Empty(t, v.BuildMetadata())
}

// TestParse_RoundTrip verifies that String is the exact inverse of Parse.
func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"0.0.0",
		"0.1.2",
		"1.0.0-alpha",
		"1.0.0-alpha.1",
		"1.0.0-0.3.7",
		"1.0.0-x.7.z.92",
		"1.0.0-x-y-z.--",
		"1.0.0-alpha+001",
		"1.0.0+20130313144700",
		"1.0.0-beta+exp.sha.5114f85",
		"1.0.0+21AF26D3----117B344092BD",
		"1.2.3----RC-SNAPSHOT.12.9.1--.12+788",
		"2.0.0-rc.1+build.123",
		"18446744073709551615.0.0",
	}

	for _, in := range inputs {
		v, err := Parse(in)
		require.NoError(t, err, in)
		require.Equal(t, in, v.String())
		require.True(t, v.IsCanonical(), in)
	}
}

// TestParse_TrimsWhitespace ensures file content with a trailing newline parses.
func TestParse_TrimsWhitespace(t *testing.T) {
	t.Parallel()

	v, err := Parse("  0.1.2-SNAPSHOT\n")
	require.NoError(t, err)
	require.Equal(t, "0.1.2-SNAPSHOT", v.String())
}

// TestParse_RejectsMalformed covers inputs outside the grammar.
func TestParse_RejectsMalformed(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"1",
		"1.2",
		"1.2.3.4",
		"01.2.3",
		"1.02.3",
		"1.2.03",
		"1.2.3-",
		"1.2.3+",
		"1.2.3-01",
		"1.2.3-alpha..1",
		"1.2.3+build..1",
		"1.2.3-alpha_beta",
		"v1.2.3",
		"-1.2.3",
		"1.2.3 4",
		"18446744073709551616.0.0",
	}

	for _, in := range inputs {
		_, err := Parse(in)
		require.Error(t, err, in)

		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr), in)
		require.Equal(t, in, parseErr.Input)
		require.ErrorIs(t, err, ErrInvalidVersion)
	}
}

// TestParseError_Message keeps the untrimmed input in the message.
func TestParseError_Message(t *testing.T) {
	t.Parallel()

	_, err := Parse(" v1.2.3 ")
	require.EqualError(t, err, "expected MAJOR.MINOR.PATCH(-PRERELEASE+BUILDMETADATA) — got  v1.2.3 ")
}

// TestMustParse_Panics verifies MustParse panics on malformed input.
func TestMustParse_Panics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { MustParse("1.2") })
	require.NotPanics(t, func() { MustParse("1.2.3") })
}

// TestVersion_Scenarios runs the documented end-to-end transformations.
func TestVersion_Scenarios(t *testing.T) {
	t.Parallel()

	decorated := MustParse("0.1.2-SNAPSHOT+build.12")

	cases := []struct {
		name string
		got  Version
		want string
	}{
		{"plain", MustParse("0.1.2"), "0.1.2"},
		{"bump major", decorated.Bump(Major), "1.0.0-SNAPSHOT+build.12"},
		{"bump minor", decorated.Bump(Minor), "0.2.0-SNAPSHOT+build.12"},
		{"bump patch", decorated.Bump(Patch), "0.1.3-SNAPSHOT+build.12"},
		{"reset pre-release", decorated.ResetPreRelease(), "0.1.2+build.12"},
		{"reset build metadata", decorated.ResetBuildMetadata(), "0.1.2-SNAPSHOT"},
		{"set pre-release", MustParse("0.0.3").SetPreRelease("SNAPSHOT"), "0.0.3-SNAPSHOT"},
		{"set build metadata", MustParse("0.0.3").SetBuildMetadata("sha.1f2e"), "0.0.3+sha.1f2e"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, tc.got.String(), tc.name)
	}
}

// TestBump_ResetsLowerComponents checks the field reset rules of each level.
func TestBump_ResetsLowerComponents(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"0.0.0", "3.7.9", "1.0.0-rc.1", "4.5.6+meta"} {
		v := MustParse(in)

		major := v.Bump(Major)
		require.Equal(t, v.Major()+1, major.Major())
		require.Zero(t, major.Minor())
		require.Zero(t, major.Patch())

		minor := v.Bump(Minor)
		require.Equal(t, v.Major(), minor.Major())
		require.Equal(t, v.Minor()+1, minor.Minor())
		require.Zero(t, minor.Patch())

		patch := v.Bump(Patch)
		require.Equal(t, v.Major(), patch.Major())
		require.Equal(t, v.Minor(), patch.Minor())
		require.Equal(t, v.Patch()+1, patch.Patch())

		for _, bumped := range []Version{major, minor, patch} {
			require.Equal(t, v.PreRelease(), bumped.PreRelease())
			require.Equal(t, v.BuildMetadata(), bumped.BuildMetadata())
		}
	}
}

// TestBump_UnknownLevel returns the receiver unchanged.
func TestBump_UnknownLevel(t *testing.T) {
	t.Parallel()

	v := MustParse("1.2.3")
	require.Equal(t, v, v.Bump(Level(0)))
	require.Equal(t, v, v.Bump(Level(42)))
}

// TestBump_MaxComponent never wraps a component back to zero.
func TestBump_MaxComponent(t *testing.T) {
	t.Parallel()

	v := MustParse("18446744073709551615.2.3")
	require.Equal(t, uint64(math.MaxUint64), v.Major())
	require.False(t, v.CanBump(Major))
	require.Equal(t, v, v.Bump(Major))
	require.Equal(t, "18446744073709551615.2.3", v.Bump(Major).String())

	// Lower components are still free to move.
	require.True(t, v.CanBump(Minor))
	require.Equal(t, "18446744073709551615.3.0", v.Bump(Minor).String())

	edge := New(1, math.MaxUint64, math.MaxUint64, "rc.1", "")
	require.Equal(t, edge, edge.Bump(Minor))
	require.Equal(t, edge, edge.Bump(Patch))
	require.Equal(t, "2.0.0-rc.1", edge.Bump(Major).String())

	almost := New(0, 0, math.MaxUint64-1, "", "")
	require.True(t, almost.CanBump(Patch))
	require.Equal(t, "0.0.18446744073709551615", almost.Bump(Patch).String())
	require.False(t, almost.Bump(Patch).CanBump(Patch))

	require.False(t, v.CanBump(Level(0)))
}

// TestReset_Idempotent verifies that resetting twice equals resetting once.
func TestReset_Idempotent(t *testing.T) {
	t.Parallel()

	v := MustParse("0.1.2-SNAPSHOT+build.12")

	require.Equal(t, v.ResetPreRelease(), v.ResetPreRelease().ResetPreRelease())
	require.Equal(t, v.ResetBuildMetadata(), v.ResetBuildMetadata().ResetBuildMetadata())
}

// TestVersion_Immutable ensures transformations never touch the receiver.
func TestVersion_Immutable(t *testing.T) {
	t.Parallel()

	v := MustParse("0.1.2-SNAPSHOT+build.12")
	before := v.String()

	_ = v.Bump(Major)
	_ = v.Bump(Minor)
	_ = v.Bump(Patch)
	_ = v.SetPreRelease("rc.1")
	_ = v.SetBuildMetadata("other")
	_ = v.ResetPreRelease()
	_ = v.ResetBuildMetadata()

	require.Equal(t, before, v.String())
}

// TestSetPreRelease_Unchecked keeps labels that would not re-parse.
func TestSetPreRelease_Unchecked(t *testing.T) {
	t.Parallel()

	v := MustParse("1.2.3").SetPreRelease("not valid!")
	require.Equal(t, "1.2.3-not valid!", v.String())
	require.False(t, v.IsCanonical())

	_, err := Parse(v.String())
	require.ErrorIs(t, err, ErrInvalidVersion)
}

// TestNew_NoValidation checks that New stores components verbatim.
func TestNew_NoValidation(t *testing.T) {
	t.Parallel()

	v := New(1, 2, 3, "01", "")
	require.Equal(t, "1.2.3-01", v.String())
	require.Equal(t, New(1, 2, 3, "", ""), MustParse("1.2.3"))
}

// TestVersion_YAML ensures a Version is encoded as a plain scalar.
func TestVersion_YAML(t *testing.T) {
	t.Parallel()

	type document struct {
		Version Version `yaml:"version"`
	}

	data, err := yaml.Marshal(document{Version: MustParse("1.2.3-rc.1+b.7")})
	require.NoError(t, err)
	require.Equal(t, "version: 1.2.3-rc.1+b.7\n", string(data))

	var decoded document
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	require.Equal(t, MustParse("1.2.3-rc.1+b.7"), decoded.Version)

	err = yaml.Unmarshal([]byte("version: 1.2\n"), &decoded)
	require.ErrorIs(t, err, ErrInvalidVersion)
}
