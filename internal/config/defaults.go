package config

const (
	defaultCatalogDir          = "~/.local/share/libriscan"
	defaultLogDir              = "~/.local/share/libriscan/logs"
	defaultExportDir           = "~/libriscan-exports"
	defaultFrameIntervalMS     = 200
	defaultSimilarityThreshold = 0.8
	defaultLookupBaseURL       = "https://openlibrary.org"
	defaultLookupTimeout       = 10
	defaultNotifyTimeout       = 10
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CatalogDir: defaultCatalogDir,
			LogDir:     defaultLogDir,
			ExportDir:  defaultExportDir,
		},
		Scanning: Scanning{
			FrameIntervalMS: defaultFrameIntervalMS,
		},
		Dedup: Dedup{
			SimilarityThreshold: defaultSimilarityThreshold,
		},
		Lookup: Lookup{
			Enabled:        true,
			BaseURL:        defaultLookupBaseURL,
			RequestTimeout: defaultLookupTimeout,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Scan:           true,
			Duplicates:     true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
