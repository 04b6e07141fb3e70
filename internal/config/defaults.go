package config

const (
	defaultDataDir        = "~/.local/share/sagascan"
	defaultLogDir         = "~/.local/share/sagascan/logs"
	defaultCatalogBackend = "sqlite"
	defaultMinConfidence  = 75
	defaultDelayMs        = 200
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Catalog: Catalog{
			Backend: defaultCatalogBackend,
		},
		Analyzer: Analyzer{
			MinConfidence: defaultMinConfidence,
			DelayMs:       defaultDelayMs,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
	}
}
