// Package pipeline classifies specimen records and resolves their best
// MycoBank candidates across a fixed worker pool.
//
// Each specimen is one unit of work. Specimens whose three name variants
// agree become perfect matches (with an exact reference hit when one scores
// 100); the rest are categorized by pairwise agreement and looked up once
// per variant, keeping the highest-scoring candidate. Workers hand their
// unit results to a single collector over a channel, so the four output
// collections are only ever appended from one goroutine.
package pipeline
