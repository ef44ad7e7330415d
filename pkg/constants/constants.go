// Package constants provides shared constants used throughout the wekanimport
// codebase. This includes file permissions, tabular source layout and the
// fixed values Wekan expects on synthesized entities.
package constants

// File permission constants define standard Unix file permissions
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Tabular source layout
const (
	// HeaderRows is the number of leading rows discarded from every tabular source
	HeaderRows = 2

	// ColumnTitle holds the card title
	ColumnTitle = 0

	// ColumnDescription holds the card description
	ColumnDescription = 1

	// ColumnAssignee holds the assignee's full name
	ColumnAssignee = 2

	// ColumnStartAt holds the start date
	ColumnStartAt = 3

	// ColumnDueAt holds the due date
	ColumnDueAt = 4

	// ColumnList holds the target list title
	ColumnList = 5

	// ColumnLabels holds comma separated label names (optional)
	ColumnLabels = 6

	// LabelSeparator splits the labels column
	LabelSeparator = ","
)

// Board document values
const (
	// SwimlaneType is the type written on every synthesized swimlane
	SwimlaneType = "swimlane"

	// MaxIDAttempts bounds how often a colliding identifier is redrawn
	MaxIDAttempts = 16

	// MaxSuggestions bounds the near-miss names reported for an unresolved reference
	MaxSuggestions = 3
)

// Date layouts accepted for text date cells, tried in order
var DateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"02/01/2006",
	"02/01/2006 15:04",
}

// Default values
const (
	// DefaultIDFormat is the identifier scheme used for new entities
	DefaultIDFormat = "meteor"

	// ConfigFileName is the base name of the optional config file
	ConfigFileName = ".wekanimport"

	// EnvPrefix is the prefix for environment variable configuration
	EnvPrefix = "WEKANIMPORT"
)
