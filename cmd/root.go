package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/JakeMartin-ICL/steam-storage-optimiser/core/config"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/core/logger"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/core/reconcile"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/core/transport"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/feature/crowd"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/feature/library"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/feature/optimiser"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/feature/presenter"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/feature/steam"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// out is shared by the command and Execute so errors are printed the same
// way as progress.
var out = presenter.New(color.Output, os.Stdin, color.NoColor)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "steam-storage-optimiser",
	Short: "Rank your Steam games by hours played per GB of disk",
	Long: `Steam Storage Optimiser compares the playtime of every game you own with
its install size, measured locally or taken from a shared size database, and
ranks them so you can see which installs earn their disk space.
Sizes measured on this machine are contributed back to the database.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return run(ctx, out)
	},
}

func Execute() {
	if err := RootCmd.ExecuteContext(context.Background()); err != nil {
		out.Error("%s", describe(err))
		out.Pause("Press Enter to exit . . .")
		os.Exit(1)
	}
	out.Pause("\nPress Enter to exit . . .")
}

func run(ctx context.Context, p *presenter.Presenter) error {
	// 1. Load Configuration
	path, err := config.DefaultPath()
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(path)
	if errors.Is(err, config.ErrNotFound) {
		cfg, err = setup(p, path)
	}
	if err != nil {
		return err
	}
	p.Ok("Loaded config file. To change, edit or delete the config file in %s.", filepath.Dir(path))
	if !cfg.IsValidSteamID() {
		p.Warn("SteamID %q does not look like a 64-bit SteamID. It should look like 76561197960287930.", cfg.SteamID)
	}

	// 2. Initialize Logger
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logg.Sync()
	logg = logger.WithRunID(logg, logger.NewRunID())
	logg.Debug("Configuration loaded", zap.String("path", path), zap.String("install_dir", cfg.InstallDir))

	// 3. Initialize Clients
	owned := steam.NewClient(cfg.Steam, cfg.Key, cfg.SteamID, transport.NewHTTPClient(cfg.Steam.HTTP), logg)
	db := crowd.NewClient(cfg.Crowd, transport.NewHTTPClient(cfg.Crowd.HTTP), logg)
	scanner := library.NewScanner(cfg.InstallDir, logg)

	// 4. Run
	svc := optimiser.NewService(owned, scanner, db, p, reconcile.ReconcileOptions{
		BatchSize:  cfg.Crowd.BatchSize,
		Contribute: cfg.Crowd.Contribute,
	}, logg)

	_, err = svc.Run(ctx)
	return err
}

// describe turns an error into the single line shown to the user. The first
// sentence names the failure and is coloured by the presenter.
func describe(err error) string {
	switch {
	case errors.Is(err, config.ErrMalformedConfig):
		return fmt.Sprintf("Malformed config file. Delete or fix the config file and try again (%v).", err)
	case errors.Is(err, library.ErrLibraryFolders):
		return fmt.Sprintf("Problem with libraryfolders file. If Steam is not installed there, edit install_dir in your config file and try again (%v).", err)
	case errors.Is(err, steam.ErrInvalidResponse):
		return fmt.Sprintf("Steam API response invalid. Check your config? (%v)", err)
	case errors.Is(err, crowd.ErrWriteRejected):
		return fmt.Sprintf("Error while updating size database. %v", err)
	case errors.Is(err, crowd.ErrInvalidResponse):
		return fmt.Sprintf("Size database response invalid. Report this issue on GitHub (%v).", err)
	case errors.Is(err, context.Canceled):
		return "Interrupted."
	default:
		return fmt.Sprintf("Run failed. %v", err)
	}
}
