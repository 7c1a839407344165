// Package textutil provides the string-similarity metric used for fuzzy
// name matching.
//
// Ratio computes a normalized indel similarity between two strings on a
// 0-100 integer scale: 100 for identical non-empty strings, 0 when either
// string is empty or the two share no common subsequence. The metric is
// symmetric, deterministic, and operates on runes so accented characters
// in transcriptions cost a single edit.
package textutil
