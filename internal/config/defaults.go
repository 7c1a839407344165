package config

const (
	defaultDataDir   = "~/.local/share/foraymatch"
	defaultLogDir    = "~/.local/share/foraymatch/logs"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Matching: Matching{
			Workers:           0,
			CacheCapacity:     0,
			SkipSaveOriginals: false,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
