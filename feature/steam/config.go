package steam

import "github.com/JakeMartin-ICL/steam-storage-optimiser/core/transport"

// Config holds configuration for the Steam Web API client.
type Config struct {
	// APIURL is the base URL of the Steam Web API.
	APIURL string `mapstructure:"api_url" default:"https://api.steampowered.com"`
	// HTTP holds the transport settings for API calls.
	HTTP transport.Config `mapstructure:"http"`
}
