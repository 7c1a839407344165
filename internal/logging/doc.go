// Package logging builds the slog loggers used across foraymatch.
//
// Two handler formats are supported: a compact console format (colored when
// writing to a terminal) and line-delimited JSON. Component loggers carry a
// "component" attribute so pipeline, store, and CLI output can be told
// apart in one stream.
package logging
