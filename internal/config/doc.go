// Package config loads and validates the sagascan configuration file.
//
// Configuration is TOML, read from --config, ~/.config/sagascan/config.toml,
// or ./sagascan.toml, in that order. Defaults are applied first, the file is
// layered on top, paths are expanded, and the result is validated before any
// component sees it.
package config
