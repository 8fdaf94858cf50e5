package reconcile

import (
	"context"
	"fmt"
)

// ReconcileWithPlan looks up crowd sizes for every owned game and returns the
// reconciliation plan. It does NOT execute write-backs; use ApplyPlan for that.
func ReconcileWithPlan(
	ctx context.Context,
	owned []OwnedGame,
	installed map[int]InstalledGame,
	lookup SizeLookup,
	opts ReconcileOptions,
) (*Plan, error) {
	appids := make([]int, 0, len(owned))
	seen := make(map[int]struct{}, len(owned))
	for _, game := range owned {
		if _, dup := seen[game.AppID]; dup {
			continue
		}
		seen[game.AppID] = struct{}{}
		appids = append(appids, game.AppID)
	}

	crowd, err := LookupAll(ctx, lookup, appids, opts.BatchSize)
	if err != nil {
		return nil, err
	}

	plan := Reconcile(owned, installed, crowd)
	plan.Summary.CrowdRecords = len(crowd)

	return plan, nil
}

// ApplyPlan executes the write-back actions of a plan in order.
// Returns the number of actions executed and the first error encountered;
// execution stops at that error. Requires opts.Contribute=true and
// opts.DryRun=false to actually execute.
func ApplyPlan(ctx context.Context, writer Writer, plan *Plan, opts ReconcileOptions) (executed int, err error) {
	if !opts.Contribute || opts.DryRun {
		return 0, nil
	}

	for _, action := range plan.Actions {
		if opts.OnAction != nil {
			opts.OnAction(action)
		}

		switch action.Type {
		case ActionAdd:
			if err := writer.AddSize(ctx, action.AppID, action.Size, action.Name); err != nil {
				return executed, fmt.Errorf("failed to add app %d to size database: %w", action.AppID, err)
			}
		case ActionUpdate:
			if err := writer.UpdateSize(ctx, action.AppID, action.Size, action.Name); err != nil {
				return executed, fmt.Errorf("failed to update app %d in size database: %w", action.AppID, err)
			}
		default:
			return executed, fmt.Errorf("unknown action type %q for app %d", action.Type, action.AppID)
		}
		executed++
	}

	return executed, nil
}
