// Package logger wraps zap with a global sugared logger and context helpers.
//
// Commands attach a named logger to their context with WithName and WithKV;
// lower layers fetch it back with FromContext through the leveled helpers
// (Info, InfoKV, Warnf, ...). Output goes to stderr so that command results
// printed to stdout stay machine readable.
package logger
