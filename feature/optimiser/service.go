package optimiser

import (
	"context"
	"time"

	"github.com/JakeMartin-ICL/steam-storage-optimiser/core/reconcile"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/core/report"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/core/utils"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/feature/crowd"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/feature/library"

	"go.uber.org/zap"
)

// OwnedGamesSource lists the games owned by the configured account.
type OwnedGamesSource interface {
	GetOwnedGames(ctx context.Context) ([]reconcile.OwnedGame, error)
}

// Scanner lists the games installed on this machine.
type Scanner interface {
	Scan(ctx context.Context) (*library.ScanResult, error)
}

// Output receives progress lines and the final reports.
type Output interface {
	Ok(format string, args ...any)
	Warn(format string, args ...any)
	Note(format string, args ...any)
	Matched(rows []report.Row)
	Unmatched(rows []reconcile.UnmatchedRow)
}

// Result is everything a run produced.
type Result struct {
	Plan      *reconcile.Plan
	Scan      *library.ScanResult
	Matched   []report.Row
	Unmatched []reconcile.UnmatchedRow
	Written   int
}

// Service runs the optimiser pipeline.
type Service struct {
	owned   OwnedGamesSource
	scanner Scanner
	db      crowd.Database
	out     Output
	opts    reconcile.ReconcileOptions
	logger  *zap.Logger
}

// NewService creates a new optimiser service.
func NewService(owned OwnedGamesSource, scanner Scanner, db crowd.Database, out Output, opts reconcile.ReconcileOptions, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		owned:   owned,
		scanner: scanner,
		db:      db,
		out:     out,
		opts:    opts,
		logger:  logger,
	}
}

// Run scans the local libraries, fetches the owned games, looks up crowd
// sizes, contributes local sizes back and renders both reports. Any error
// aborts the run before anything is rendered.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	scan, err := s.scanner.Scan(ctx)
	if err != nil {
		return nil, err
	}
	for _, lib := range scan.Libraries {
		if lib.Missing {
			s.out.Warn("Library %s missing. Skipping.", lib.Path)
			continue
		}
		s.out.Ok("Found %d in library %s", lib.Manifests, lib.Path)
	}
	if scan.Skipped > 0 {
		s.logger.Debug("Skipped unreadable manifests", zap.Int("count", scan.Skipped))
	}

	owned, err := s.owned.GetOwnedGames(ctx)
	if err != nil {
		return nil, err
	}

	plan, err := reconcile.ReconcileWithPlan(ctx, owned, scan.Installed, s.db, s.opts)
	if err != nil {
		return nil, err
	}
	s.out.Ok("Matched %d with database.", plan.Summary.CrowdRecords)

	opts := s.opts
	opts.OnAction = s.announce
	written, err := reconcile.ApplyPlan(ctx, s.db, plan, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Plan:      plan,
		Scan:      scan,
		Matched:   report.BuildMatched(plan.Matched),
		Unmatched: report.BuildUnmatched(plan.Unmatched),
		Written:   written,
	}

	s.out.Matched(result.Matched)
	s.out.Unmatched(result.Unmatched)

	s.logger.Info("Run complete",
		zap.Int("owned", plan.Summary.Owned),
		zap.Int("installed", plan.Summary.Installed),
		zap.Int("matched", plan.Summary.Matched),
		zap.Int("unmatched", plan.Summary.Unmatched),
		zap.Int("duplicates", plan.Summary.Duplicates),
		zap.Int("written", written),
		zap.Duration("duration", time.Since(start)),
	)

	return result, nil
}

func (s *Service) announce(action reconcile.Action) {
	switch action.Type {
	case reconcile.ActionAdd:
		s.out.Ok("Adding to database. This is the first time %s has been seen.", action.Name)
	case reconcile.ActionUpdate:
		s.out.Ok("Updating database. Your install size for %s is %s. The average size is %s.",
			action.Name, utils.HumanSize(action.Size), utils.HumanSize(action.CrowdSize))
	default:
		s.logger.Warn("Unexpected action", zap.String("type", string(action.Type)))
	}
}
