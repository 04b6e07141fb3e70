// Package report aggregates a catalog collection into distribution
// statistics and reading recommendations. Aggregation is pure: it takes the
// already-fetched collection plus the known series definitions and never
// touches the store or the resolver.
package report
