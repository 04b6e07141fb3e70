// Package resolve decides which canonical series, if any, a book belongs to.
//
// The Resolver scores a book against every registry entry in its category,
// validates each candidate against membership rules (author similarity,
// title containment, exclusion keywords, canonical volume cross-checks,
// category refinement), and returns the best validated candidate with its
// confidence and a human-readable justification. Resolution is pure and
// side-effect-free; callers may share one Resolver across goroutines.
package resolve
