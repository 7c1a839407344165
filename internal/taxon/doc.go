// Package taxon defines the domain records flowing through the matching
// engine: field-collected specimen rows with their three transcribed name
// variants, and canonical MycoBank reference rows.
//
// Name handling follows two rules used everywhere downstream:
//   - Normalize trims surrounding whitespace and nothing else; case is
//     preserved for both scoring and display.
//   - PreferredName favors a record's current (accepted) name over its
//     original taxon name.
package taxon
