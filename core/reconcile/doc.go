// Package reconcile merges the three appid-keyed sources of a run: the owned
// games reported by the Steam Web API, the locally installed app manifests and
// the crowd-sourced size database.
//
// # Architecture
//
// The package consists of three parts:
//
// 1. Lookup: LookupAll queries the crowd database in fixed batches of BatchSize
// appids and merges the answers into one index. A failed batch fails the run.
//
// 2. Engine: Reconcile walks the owned games in input order. The owned list is
// the authoritative key set; the installed and crowd indices are optional
// overlays, and a miss in either is a normal branch. For each game it
//   - resolves the size (a local measurement always wins over crowd data),
//   - plans a write-back when the game is installed and the crowd database has
//     no record, or a record that differs by more than Threshold,
//   - routes the game to Matched (positive size, with derived metrics) or to
//     Unmatched (no size, or size 0).
//
// 3. Plan: ReconcileWithPlan combines both steps; ApplyPlan executes the
// planned write-backs through a Writer, stopping at the first failure.
//
// The engine is a pure, synchronous transform. It does not log, print or retry;
// rendering belongs to the presenter.
//
// # Usage Example
//
//	plan, err := reconcile.ReconcileWithPlan(ctx, owned, installed, crowdClient, opts)
//	if err != nil {
//	    return err
//	}
//	executed, err := reconcile.ApplyPlan(ctx, crowdClient, plan, opts)
package reconcile
