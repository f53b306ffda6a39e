// Package versionfile persists a single semantic version in a text file.
//
// The FileRepository reads and writes the file as one line followed by a
// newline, replaces it atomically on save, and offers a cross-process lock
// (a sibling ".lock" file holding the owner PID) so that concurrent commands
// cannot interleave their read-modify-write cycles.
package versionfile
