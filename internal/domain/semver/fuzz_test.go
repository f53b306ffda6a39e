package semver

import (
	"testing"
)

// FuzzParse checks that Parse never panics and that accepted input round-trips.
func FuzzParse(f *testing.F) {
	f.Add("0.0.1")
	f.Add("0.1.2-SNAPSHOT+build.12")
	f.Add("1.0.0-alpha.beta.1")
	f.Add("1.0.0+exp.sha.5114f85")
	f.Add("01.2.3")
	f.Add("1.2.3-")
	f.Add("1.2.3.4")
	f.Add("v1.2.3")
	f.Add(" 1.2.3 ")
	f.Add("")

	f.Fuzz(func(t *testing.T, input string) {
		v, err := Parse(input)
		if err != nil {
			return
		}

		s := v.String()

		v2, err := Parse(s)
		if err != nil {
			t.Fatalf("re-parsing %q (from %q) failed: %v", s, input, err)
		}

		if v != v2 {
			t.Fatalf("round-trip mismatch for %q: %+v != %+v", input, v, v2)
		}

		if !v.IsCanonical() {
			t.Fatalf("parsed value %q is not canonical", s)
		}
	})
}
