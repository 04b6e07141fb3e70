// Package registry holds the canonical series definitions the resolution
// engine matches against.
//
// The definitions live in an embedded TOML data file, series.toml, kept apart
// from the matching code so new series, spellings, and exclusion keywords can
// be added without touching scoring or validation logic. Load parses and
// validates the embedded data once; the resulting Registry is immutable and
// safe for concurrent readers.
package registry
