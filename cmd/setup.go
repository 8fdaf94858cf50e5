package cmd

import (
	"os"
	"runtime"

	"github.com/JakeMartin-ICL/steam-storage-optimiser/core/config"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/feature/presenter"
)

// setup asks for the API key and SteamID on first run, saves them along with
// the default install location and reloads the file so defaults apply.
func setup(p *presenter.Presenter, path string) (*config.Config, error) {
	p.Warn("No config file found.")

	home, _ := os.UserHomeDir()
	installDir := config.DefaultInstallDir(runtime.GOOS, home)
	p.Warn("Setting Steam install location to default. If Steam is not installed at %s, you can change this in the config file.", installDir)

	key, err := p.Prompt("Enter your API key (create one here: https://steamcommunity.com/dev/apikey (domain is irrelevant))")
	if err != nil {
		return nil, err
	}
	steamID, err := p.Prompt("Enter your 64-bit SteamID (eg. use this tool https://www.steamidfinder.com/, it should look like 76561197960287930)")
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{Key: key, SteamID: steamID, InstallDir: installDir}
	if err := config.Save(path, cfg); err != nil {
		return nil, err
	}
	p.Ok("Saved new config file.")
	p.Pause("Press Enter to continue . . .")

	return config.LoadConfig(path)
}
