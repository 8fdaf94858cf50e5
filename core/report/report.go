package report

import (
	"runtime"
	"sort"

	"github.com/JakeMartin-ICL/steam-storage-optimiser/core/reconcile"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/core/utils"
)

// InstalledMarker flags rows whose size was measured locally. Legacy Windows
// consoles cannot render the check mark, so a square root sign stands in.
var InstalledMarker = installedMarker(runtime.GOOS)

func installedMarker(goos string) string {
	if goos == "windows" {
		return "√"
	}
	return "✓"
}

// Row is one ranked line of the matched report.
type Row struct {
	AppID               int     `json:"appid"`
	Name                string  `json:"name"`
	SizeBytes           int64   `json:"size_bytes"`
	SizeHuman           string  `json:"size"`
	PlaytimeMinutes     int64   `json:"playtime_minutes"`
	PlaytimeHuman       string  `json:"playtime"`
	TimePerByte         float64 `json:"time_per_byte"`
	HoursPerGiB         float64 `json:"hours_per_gib"`
	InstalledMarker     string  `json:"installed"`
	CumulativeSizeBytes int64   `json:"cumulative_size_bytes"`
	CumulativeSizeHuman string  `json:"cumulative_size"`
	CumulativeMinutes   int64   `json:"cumulative_minutes"`
	CumulativeTimeHuman string  `json:"cumulative_time"`
}

// BuildMatched ranks matched games by descending TimePerByte and computes the
// running totals. Ties keep their input order. Row i's cumulative fields are
// the sums over rows 0..i.
func BuildMatched(seeds []reconcile.Seed) []Row {
	ordered := make([]reconcile.Seed, len(seeds))
	copy(ordered, seeds)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TimePerByte > ordered[j].TimePerByte
	})

	rows := make([]Row, 0, len(ordered))
	var cumulativeSize, cumulativeTime int64
	for _, seed := range ordered {
		cumulativeSize += seed.SizeBytes
		cumulativeTime += seed.PlaytimeMinutes

		marker := ""
		if seed.Installed {
			marker = InstalledMarker
		}

		rows = append(rows, Row{
			AppID:               seed.AppID,
			Name:                seed.Name,
			SizeBytes:           seed.SizeBytes,
			SizeHuman:           utils.HumanSize(seed.SizeBytes),
			PlaytimeMinutes:     seed.PlaytimeMinutes,
			PlaytimeHuman:       seed.PlaytimeHuman,
			TimePerByte:         seed.TimePerByte,
			HoursPerGiB:         seed.HoursPerGiB,
			InstalledMarker:     marker,
			CumulativeSizeBytes: cumulativeSize,
			CumulativeSizeHuman: utils.HumanSize(cumulativeSize),
			CumulativeMinutes:   cumulativeTime,
			CumulativeTimeHuman: utils.FormatPlaytime(cumulativeTime),
		})
	}

	return rows
}

// BuildUnmatched orders unmatched games by descending playtime. Ties keep
// their input order.
func BuildUnmatched(rows []reconcile.UnmatchedRow) []reconcile.UnmatchedRow {
	ordered := make([]reconcile.UnmatchedRow, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PlaytimeMinutes > ordered[j].PlaytimeMinutes
	})
	return ordered
}

// Totals summarises a matched report.
type Totals struct {
	Games         int
	Installed     int
	SizeHuman     string
	PlaytimeHuman string
}

// Summarise returns the totals of a matched report, read from its last row.
func Summarise(rows []Row) Totals {
	totals := Totals{
		Games:         len(rows),
		SizeHuman:     utils.HumanSize(0),
		PlaytimeHuman: utils.FormatPlaytime(0),
	}
	for _, row := range rows {
		if row.InstalledMarker != "" {
			totals.Installed++
		}
	}
	if len(rows) > 0 {
		last := rows[len(rows)-1]
		totals.SizeHuman = last.CumulativeSizeHuman
		totals.PlaytimeHuman = last.CumulativeTimeHuman
	}
	return totals
}
