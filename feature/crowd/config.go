package crowd

import "github.com/JakeMartin-ICL/steam-storage-optimiser/core/transport"

// Config holds configuration for the crowd size database client.
type Config struct {
	// BaseURL is the root of the size database API.
	BaseURL string `mapstructure:"base_url" default:"https://eu5di55p9a.execute-api.eu-west-2.amazonaws.com/default"`
	// BatchSize is the number of appids per lookup request.
	BatchSize int `mapstructure:"batch_size" default:"100"`
	// Contribute enables sending locally measured sizes back to the database.
	Contribute bool `mapstructure:"contribute" default:"true"`
	// RequestsPerSecond limits the request rate. Zero disables the limit.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"0"`
	// HTTP holds the transport settings for database calls.
	HTTP transport.Config `mapstructure:"http"`
}
