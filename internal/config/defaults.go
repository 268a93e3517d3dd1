package config

const (
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Log: Log{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Categories: map[string]string{},
	}
}
