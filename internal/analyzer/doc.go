// Package analyzer drives series resolution across a whole collection.
//
// Analyze fetches the collection from the catalog store, resolves every book
// that has no saga assigned, and builds a Report. Commit writes accepted
// detections back to the store. Both run strictly sequentially with a
// configurable pause between store requests so bulk runs never burst the
// external service, and both honor context cancellation before every
// iteration and every store call. A single item's failure is recorded and
// never aborts the run.
package analyzer
