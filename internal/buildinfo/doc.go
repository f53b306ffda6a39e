// Package buildinfo exposes build metadata of the semver-bumper binary.
//
// Version, Commit and BuildTime are injected at build time via Go ldflags.
// Version itself is a semantic version and must satisfy the same grammar the
// tool enforces on version files.
package buildinfo
