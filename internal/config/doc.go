// Package config defines the settings of semver-bumper and helpers to load,
// validate and save them in YAML format.
//
// The file is optional: a missing settings file yields Default values, and
// command-line flags override whatever was loaded.
package config
