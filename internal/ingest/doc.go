// Package ingest reads the two CSV inputs of a matching run: the ForayNL
// specimen export and the MycoBank reference list.
//
// Both files ship Latin-1 encoded; readers decode through
// golang.org/x/text before parsing. Column lookup is header-driven and
// tolerant of the naming drift seen across yearly exports (for example
// "id" vs "foray_id", or "Authors" vs "authors"). Field values are trimmed
// on the way in, so downstream code always sees normalized strings.
package ingest
