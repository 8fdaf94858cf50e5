// Package config provides configuration management for the optimiser.
//
// It utilizes Viper for loading the persisted JSON config file and environment
// overrides, and godotenv for an optional .env file in the working directory.
//
// # Configuration Structure
//
// The persisted file must contain the three keys set during first-run setup:
//   - key: Steam Web API key
//   - steamid: 64-bit SteamID of the account
//   - install_dir: steamapps directory containing libraryfolders.vdf
//
// Optional sections keep their defaults unless present:
//   - steam: Web API base URL and HTTP timeouts
//   - crowd: size database URL, batch size, write-back opt-out, rate limit
//   - log: logging level and format
//
// A file that cannot be parsed or lacks a required key yields
// ErrMalformedConfig; a missing file yields ErrNotFound, which the CLI answers
// with interactive setup.
//
// # Usage
//
//	path, _ := config.DefaultPath()
//	cfg, err := config.LoadConfig(path)
//	if errors.Is(err, config.ErrNotFound) {
//	    // run setup, then config.Save(path, cfg)
//	}
package config
