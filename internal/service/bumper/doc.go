// Package bumper runs version file operations end to end.
//
// A Service loads the current version (creating the file with the initial
// version on first use), applies an Operation while holding the file lock,
// and persists the result. Run is the entry point used by the CLI.
package bumper
