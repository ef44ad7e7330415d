// Package emoji provides symbol constants for CLI output.
// These symbols keep the status banner and summary consistent.
package emoji

// Symbol constants for CLI output.
const (
	// Success marks a completed import.
	Success = "✓"

	// Error marks a failed import or a row that produced no card.
	Error = "✗"

	// Warning marks a row imported with a problem.
	Warning = "!"

	// Info marks informational messages.
	Info = "i"

	// Optional marks an empty summary value.
	Optional = "-"
)
