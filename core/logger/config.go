package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum level that is written (debug, info, warn, error).
	Level string `mapstructure:"level" default:"warn"`
	// Format is the encoder used for log lines (console or json).
	Format string `mapstructure:"format" default:"console"`
}
