// Package catalog defines the boundary to the external book store.
//
// The engine never owns persistence: it reads the collection and patches
// individual records through the Store interface. Client talks to a remote
// catalog service over HTTP; catalogdb provides a local SQLite-backed
// implementation of the same interface for offline use.
package catalog
