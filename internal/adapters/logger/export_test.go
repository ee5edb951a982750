package logger

// ErrorEntry exposes errorEntry to the external tests.
type ErrorEntry = errorEntry

// Error formatting internals for the external tests.
var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)
