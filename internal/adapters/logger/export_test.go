// export_test.go exports private functions for white-box testing.
package logger

// Exported error formatting functions for testing.
var (
	CollectErrorEntriesExported = collectErrorEntries
	FormatErrorEntriesExported  = formatErrorEntries
	ExtractLocationExported     = extractLocation
)
