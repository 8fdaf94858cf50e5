package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"github.com/JakeMartin-ICL/steam-storage-optimiser/core/logger"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/feature/crowd"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/feature/steam"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// AppDirName is the directory created under the user config dir.
	AppDirName = "Steam Storage Optimiser"
	// FileName is the name of the persisted config file.
	FileName = "config.json"
	// EnvPrefix prefixes environment overrides, e.g. STEAM_OPTIMISER_CROWD_CONTRIBUTE.
	EnvPrefix = "STEAM_OPTIMISER"
)

var (
	// ErrNotFound is returned when no config file exists yet.
	ErrNotFound = errors.New("no config file found")
	// ErrMalformedConfig is returned when the config file cannot be parsed or
	// lacks a required key.
	ErrMalformedConfig = errors.New("malformed config file")
)

// RequiredKeys must be present in a persisted config file.
var RequiredKeys = []string{"key", "steamid", "install_dir"}

var steamIDPattern = regexp.MustCompile(`^7656119\d{10}$`)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Key is the Steam Web API key.
	Key string `mapstructure:"key" default:""`
	// SteamID is the 64-bit id of the account whose library is analysed.
	SteamID string `mapstructure:"steamid" default:""`
	// InstallDir is the steamapps directory holding libraryfolders.vdf.
	InstallDir string `mapstructure:"install_dir" default:""`
	// Steam holds configuration for the Steam Web API client.
	Steam steam.Config `mapstructure:"steam"`
	// Crowd holds configuration for the crowd size database client.
	Crowd crowd.Config `mapstructure:"crowd"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// IsValidSteamID checks that SteamID looks like a 64-bit individual account id.
func (c Config) IsValidSteamID() bool {
	return steamIDPattern.MatchString(c.SteamID)
}

// DefaultPath returns the location of the config file in the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(dir, AppDirName, FileName), nil
}

// DefaultInstallDir returns the usual steamapps location for an OS.
func DefaultInstallDir(goos, home string) string {
	switch goos {
	case "linux":
		return filepath.Join(home, ".steam", "steam", "steamapps")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Steam", "steamapps")
	default:
		return `C:\Program Files (x86)\Steam\steamapps`
	}
}

// LoadConfig loads configuration from the JSON file at path, with defaults
// from struct tags and overrides from the environment and a .env file in the
// working directory.
func LoadConfig(path string) (*Config, error) {
	// Ignore error if file doesn't exist
	_ = godotenv.Overload(".env")

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedConfig, err)
	}

	for _, key := range RequiredKeys {
		if !v.InConfig(key) {
			return nil, fmt.Errorf("%w: missing %q", ErrMalformedConfig, key)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedConfig, err)
	}

	return &config, nil
}

// Save persists the user supplied keys to path, creating its directory.
// Other settings keep their defaults until edited by hand.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("json")
	v.Set("key", cfg.Key)
	v.Set("steamid", cfg.SteamID)
	v.Set("install_dir", cfg.InstallDir)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. STEAM_OPTIMISER_CROWD_BASE_URL -> crowd.base_url)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
