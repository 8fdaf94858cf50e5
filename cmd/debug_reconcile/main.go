package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/JakeMartin-ICL/steam-storage-optimiser/core/config"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/core/logger"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/core/reconcile"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/core/transport"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/feature/crowd"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/feature/library"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/feature/steam"
)

// debug_reconcile computes the reconciliation plan without writing anything
// back and dumps it to debug_reconcile.json. Pass appids as arguments to also
// print their individual crowd records.
func main() {
	// Load config
	path, err := config.DefaultPath()
	if err != nil {
		log.Fatal(err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Fatal(err)
	}

	logg, err := logger.New(&logger.Config{Level: "debug", Format: "console"})
	if err != nil {
		log.Fatal(err)
	}
	defer logg.Sync()

	ctx := context.Background()
	owned := steam.NewClient(cfg.Steam, cfg.Key, cfg.SteamID, transport.NewHTTPClient(cfg.Steam.HTTP), logg)
	db := crowd.NewClient(cfg.Crowd, transport.NewHTTPClient(cfg.Crowd.HTTP), logg)

	// Test 1: Library scan
	fmt.Println("=== TEST 1: Library Scan ===")
	scan, err := library.NewScanner(cfg.InstallDir, logg).Scan(ctx)
	if err != nil {
		log.Fatal(err)
	}
	for _, lib := range scan.Libraries {
		fmt.Printf("%s: manifests=%d missing=%v\n", lib.Path, lib.Manifests, lib.Missing)
	}
	fmt.Printf("Installed games: %d (skipped manifests: %d)\n", len(scan.Installed), scan.Skipped)

	// Test 2: Owned games
	fmt.Println("\n=== TEST 2: Owned Games ===")
	games, err := owned.GetOwnedGames(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Owned games: %d\n", len(games))

	// Test 3: Plan
	fmt.Println("\n=== TEST 3: Reconcile (dry run) ===")
	plan, err := reconcile.ReconcileWithPlan(ctx, games, scan.Installed, db, reconcile.ReconcileOptions{
		BatchSize: cfg.Crowd.BatchSize,
		DryRun:    true,
	})
	if err != nil {
		log.Fatal(err)
	}
	s := plan.Summary
	fmt.Printf("owned=%d installed=%d crowd=%d matched=%d unmatched=%d adds=%d updates=%d duplicates=%d\n",
		s.Owned, s.Installed, s.CrowdRecords, s.Matched, s.Unmatched, s.Adds, s.Updates, s.Duplicates)

	// Test 4: Single lookups
	if len(os.Args) > 1 {
		fmt.Println("\n=== TEST 4: Single Lookups ===")
		for _, arg := range os.Args[1:] {
			appid, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Printf("%s: not an appid\n", arg)
				continue
			}
			record, err := db.GetSize(ctx, appid)
			switch {
			case err != nil:
				fmt.Printf("%d: %v\n", appid, err)
			case record == nil:
				fmt.Printf("%d: NOT FOUND in database\n", appid)
			default:
				fmt.Printf("%d: name=%s size=%d\n", appid, record.Name, record.Size)
			}
		}
	}

	// Save detailed output
	data, _ := json.MarshalIndent(plan, "", "  ")
	os.WriteFile("debug_reconcile.json", data, 0644)

	fmt.Println("\nDebug complete. Check debug_reconcile.json for details.")
}
