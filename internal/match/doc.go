// Package match finds the best-scoring MycoBank reference row for a query
// name.
//
// The reference list is partitioned by an Index built from a Bucketer so
// each lookup scans only candidates sharing the query's bucket key. The
// default FirstLetterBucketer keys on the uppercased first letter of a
// row's preferred name; this deliberately never finds a true best match
// whose first letter differs from the query's (for example a transcription
// error in the leading character) in exchange for bounding per-query cost.
//
// A Matcher wraps an Index with a bounded LRU memo so repeated queries skip
// the bucket scan entirely. Results are deterministic: re-asking with the
// same query and source tag always yields the identical answer.
package match
