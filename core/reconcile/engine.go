package reconcile

import (
	"github.com/JakeMartin-ICL/steam-storage-optimiser/core/utils"
)

// Reconcile merges the owned games with the installed and crowd overlays.
// Owned games are visited in input order; the first occurrence of an appid
// wins. Inputs are not modified.
func Reconcile(owned []OwnedGame, installed map[int]InstalledGame, crowd map[int]CrowdSizeRecord) *Plan {
	plan := &Plan{
		Matched:   []Seed{},
		Unmatched: []UnmatchedRow{},
		Actions:   []Action{},
	}
	seen := make(map[int]struct{}, len(owned))

	for _, game := range owned {
		if _, dup := seen[game.AppID]; dup {
			plan.Summary.Duplicates++
			continue
		}
		seen[game.AppID] = struct{}{}
		plan.Summary.Owned++

		size, resolved, isInstalled := resolveSize(game.AppID, installed, crowd)
		if isInstalled {
			plan.Summary.Installed++
			if action, ok := planWriteBack(game, size, crowd); ok {
				plan.Actions = append(plan.Actions, action)
				switch action.Type {
				case ActionAdd:
					plan.Summary.Adds++
				case ActionUpdate:
					plan.Summary.Updates++
				}
			}
		}

		if !resolved || size <= 0 {
			plan.Unmatched = append(plan.Unmatched, UnmatchedRow{
				AppID:           game.AppID,
				Name:            game.Name,
				PlaytimeMinutes: game.PlaytimeForever,
				PlaytimeHuman:   utils.FormatPlaytime(game.PlaytimeForever),
			})
			plan.Summary.Unmatched++
			continue
		}

		plan.Matched = append(plan.Matched, buildSeed(game, size, isInstalled))
		plan.Summary.Matched++
	}

	return plan
}

// resolveSize returns the size of an owned game. A local install is
// authoritative; otherwise the crowd record is used when there is one.
func resolveSize(appid int, installed map[int]InstalledGame, crowd map[int]CrowdSizeRecord) (size int64, resolved, isInstalled bool) {
	if local, ok := installed[appid]; ok {
		return local.SizeOnDisk, true, true
	}
	if record, ok := crowd[appid]; ok {
		return record.Size, true, false
	}
	return 0, false, false
}

// planWriteBack decides whether a locally measured size should be sent to the
// crowd database. Only called for installed games.
func planWriteBack(game OwnedGame, localSize int64, crowd map[int]CrowdSizeRecord) (Action, bool) {
	record, ok := crowd[game.AppID]
	if !ok {
		return Action{Type: ActionAdd, AppID: game.AppID, Size: localSize, Name: game.Name}, true
	}

	diff := record.Size - localSize
	if diff < 0 {
		diff = -diff
	}
	if diff > Threshold {
		return Action{
			Type:      ActionUpdate,
			AppID:     game.AppID,
			Size:      localSize,
			Name:      game.Name,
			CrowdSize: record.Size,
		}, true
	}

	return Action{}, false
}

// buildSeed computes the derived metrics of a matched game. size must be positive.
func buildSeed(game OwnedGame, size int64, installed bool) Seed {
	playtime := float64(game.PlaytimeForever)
	return Seed{
		AppID:           game.AppID,
		Name:            game.Name,
		SizeBytes:       size,
		PlaytimeMinutes: game.PlaytimeForever,
		PlaytimeHuman:   utils.FormatPlaytime(game.PlaytimeForever),
		TimePerByte:     playtime / float64(size),
		HoursPerGiB:     (playtime / 60) / (float64(size) / utils.BytesPerGiB),
		Installed:       installed,
	}
}
