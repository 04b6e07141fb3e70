// Package logging wraps log/slog with the repository's handler setup and
// typed attribute helpers.
//
// Components receive a *slog.Logger tagged with a component attribute via
// NewComponentLogger; tests use NewNop. The console handler favors short
// human-readable lines, the json handler stable machine-readable fields.
package logging
