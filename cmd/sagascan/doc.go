// Command sagascan analyzes a personal book catalog against a registry of
// known series, reports which books belong to which saga, and optionally
// writes the detected groupings back to the catalog.
package main
