// Package semver contains the version value type at the heart of the bumper.
//
// A Version is parsed from text with Parse, transformed with Bump and the
// pre-release/build metadata helpers, and rendered back with String. Values
// are immutable: every transformation returns a new Version and leaves the
// receiver untouched, so they can be shared freely between goroutines.
package semver
