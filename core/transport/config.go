package transport

// Config holds configuration for outbound HTTP connections.
type Config struct {
	// TimeoutSeconds bounds connection setup, the TLS handshake and the wait for
	// response headers. It does not bound reading the body.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" default:"steam-storage-optimiser"`
}
