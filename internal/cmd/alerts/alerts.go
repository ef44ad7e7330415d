// Package alerts provides the status banner printed at the end of a run.
//
// A run ends with exactly one outcome banner: Failed for a fatal error, or
// Completed otherwise. A dry run adds a DryRun banner before it.
package alerts

import (
	"fmt"
	"time"
)

// Banner messages.
const (
	MessageFailed      = "Import failed"
	MessageSucceeded   = "Import succeeded"
	MessageSkippedRows = "Import completed with skipped rows"
	MessageDryRun      = "Dry run, merged document not written"
)

// Alert is one banner line with optional detail lines below it.
type Alert struct {
	Level     Level
	Message   string
	Details   []string
	Timestamp time.Time
	Err       error
}

// New creates a new alert with the given level and message.
func New(level Level, message string) *Alert {
	return &Alert{
		Level:     level,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewError creates a new error alert.
func NewError(message string) *Alert {
	return New(LevelError, message)
}

// NewWarning creates a new warning alert.
func NewWarning(message string) *Alert {
	return New(LevelWarning, message)
}

// NewInfo creates a new info alert.
func NewInfo(message string) *Alert {
	return New(LevelInfo, message)
}

// NewSuccess creates a new success alert.
func NewSuccess(message string) *Alert {
	return New(LevelSuccess, message)
}

// Failed is the banner for a run stopped by err. hints are listed below it.
func Failed(err error, hints ...string) *Alert {
	return NewError(MessageFailed).WithError(err).WithDetails(hints...)
}

// Completed is the banner for a run that finished. Rows left out of the
// board turn it into a warning; the run still counts as completed.
func Completed(summary string, skippedRows bool) *Alert {
	alert := NewSuccess(MessageSucceeded)
	if skippedRows {
		alert = NewWarning(MessageSkippedRows)
	}
	return alert.WithDetails(summary)
}

// DryRun notes that the merged board was discarded. destination is where it
// would have gone.
func DryRun(destination string) *Alert {
	if destination == "" || destination == "-" {
		destination = "stdout"
	}
	return NewInfo(MessageDryRun).WithDetails("destination: " + destination)
}

// WithError adds an underlying error to the alert.
func (a *Alert) WithError(err error) *Alert {
	a.Err = err
	return a
}

// WithDetails adds additional context lines to the alert.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String returns the single line form of the alert.
func (a *Alert) String() string {
	message := fmt.Sprintf("%s %s", a.Level.Icon(), a.Message)
	if a.Err != nil {
		message += fmt.Sprintf(": %v", a.Err)
	}
	return message
}
