// Package textutil provides the text primitives used by series matching:
// normalization, edit distance, phonetic folding, and word extraction.
//
// Normalize is the canonical form every comparison runs on: lowercase,
// diacritics stripped, punctuation collapsed to single spaces. It is total
// (empty input yields "") and idempotent, so malformed records degrade to a
// non-match instead of an error further up the stack.
package textutil
