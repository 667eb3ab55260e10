package config

const (
	defaultDataDir             = "~/.local/share/kotoba"
	defaultLogDir              = "~/.local/share/kotoba/logs"
	defaultIngestWorkers       = 3
	defaultIngestMaxAttempts   = 3
	defaultRetryBackoffSeconds = 2
	defaultFetchTimeoutSeconds = 30
	defaultSubtitleLanguage    = "ja"
	defaultContextRadius       = 2
	defaultLeadInSeconds       = 1.0
	defaultMaxResults          = 50
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Ingest: Ingest{
			Workers:             defaultIngestWorkers,
			MaxAttempts:         defaultIngestMaxAttempts,
			RetryBackoffSeconds: defaultRetryBackoffSeconds,
			FetchTimeoutSeconds: defaultFetchTimeoutSeconds,
			Language:            defaultSubtitleLanguage,
		},
		Search: Search{
			ContextRadius: defaultContextRadius,
			LeadInSeconds: defaultLeadInSeconds,
			MaxResults:    defaultMaxResults,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
