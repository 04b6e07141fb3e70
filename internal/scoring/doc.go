// Package scoring implements the bounded similarity score used to rank a book
// against canonical series names.
//
// Score runs a cascade of strategies from strongest to weakest signal and
// returns the first hit, so an exact or containment match is never diluted by
// a weaker word-level heuristic. All scores share a single 0-100 scale; the
// thresholds applied by validation and batch analysis live on the same scale.
package scoring
