// Package store persists matching inputs and results in a local SQLite
// database.
//
// One database holds the raw specimen and MycoBank rows (optional, for
// detail inspection), the four result tables of the latest matching run,
// and run metadata. Saving a run replaces the previous run's result rows
// wholesale; there is no history. A file lock next to the database
// serializes runs so two processes cannot interleave writes.
package store
