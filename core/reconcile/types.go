package reconcile

// Threshold is the largest difference, in bytes, between a local install size
// and the crowd size that is tolerated without updating the crowd record.
const Threshold int64 = 1024 * 1024 * 1024

// BatchSize is the number of appids sent per crowd lookup request.
const BatchSize = 100

// OwnedGame is a game owned by the account, as reported by the Steam Web API.
// The owned list is the authoritative key set of a run.
type OwnedGame struct {
	// AppID is the Steam application id.
	AppID int `json:"appid"`

	// Name is the store name of the game.
	Name string `json:"name"`

	// PlaytimeForever is the total playtime in minutes.
	PlaytimeForever int64 `json:"playtime_forever"`
}

// InstalledGame is a game found in a local app manifest.
type InstalledGame struct {
	// AppID is the Steam application id.
	AppID int `json:"appid"`

	// Name is the name recorded in the manifest.
	Name string `json:"name"`

	// SizeOnDisk is the measured install size in bytes.
	SizeOnDisk int64 `json:"size_on_disk"`
}

// CrowdSizeRecord is a size record from the crowd size database.
type CrowdSizeRecord struct {
	AppID int    `json:"AppId"`
	Size  int64  `json:"Size"`
	Name  string `json:"Name"`
}

// Seed is a matched game with a positive resolved size. The report builder
// turns seeds into ranked report rows.
type Seed struct {
	// AppID is the Steam application id.
	AppID int `json:"appid"`

	// Name is the display name of the game.
	Name string `json:"name"`

	// SizeBytes is the resolved size. Always positive.
	SizeBytes int64 `json:"size_bytes"`

	// PlaytimeMinutes is the total playtime in minutes.
	PlaytimeMinutes int64 `json:"playtime_minutes"`

	// PlaytimeHuman is PlaytimeMinutes formatted as HH:MM.
	PlaytimeHuman string `json:"playtime_human"`

	// TimePerByte is minutes of playtime per byte of disk; the ranking key.
	TimePerByte float64 `json:"time_per_byte"`

	// HoursPerGiB is hours of playtime per GiB of disk.
	HoursPerGiB float64 `json:"hours_per_gib"`

	// Installed reports whether the size came from a local install.
	Installed bool `json:"installed"`
}

// UnmatchedRow is an owned game without a usable size.
type UnmatchedRow struct {
	AppID           int    `json:"appid"`
	Name            string `json:"name"`
	PlaytimeMinutes int64  `json:"playtime_minutes"`
	PlaytimeHuman   string `json:"playtime_human"`
}

// ActionType represents the type of write-back action.
type ActionType string

const (
	// ActionAdd creates a crowd record for a game seen for the first time.
	ActionAdd ActionType = "add"
	// ActionUpdate replaces a crowd record that is off by more than Threshold.
	ActionUpdate ActionType = "update"
)

// Action represents a planned write-back to the crowd size database.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// AppID is the Steam application id.
	AppID int `json:"appid"`

	// Size is the local install size to contribute.
	Size int64 `json:"size"`

	// Name is the game name sent along with the size.
	Name string `json:"name"`

	// CrowdSize is the size currently held by the crowd database.
	// Only populated for ActionUpdate.
	CrowdSize int64 `json:"crowd_size,omitempty"`
}

// Plan contains the reconciliation output and the planned write-backs.
type Plan struct {
	// Matched contains the games with a positive resolved size, in input order.
	Matched []Seed `json:"matched"`

	// Unmatched contains the games without a usable size, in input order.
	Unmatched []UnmatchedRow `json:"unmatched"`

	// Actions contains planned write-backs, in input order.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// Owned is the number of distinct owned games.
	Owned int `json:"owned"`

	// Installed is the number of owned games that are installed locally.
	Installed int `json:"installed"`

	// CrowdRecords is the number of records returned by the crowd lookup.
	CrowdRecords int `json:"crowd_records"`

	// Matched counts games routed to the matched set.
	Matched int `json:"matched"`

	// Unmatched counts games routed to the unmatched set.
	Unmatched int `json:"unmatched"`

	// Adds counts planned ActionAdd write-backs.
	Adds int `json:"adds"`

	// Updates counts planned ActionUpdate write-backs.
	Updates int `json:"updates"`

	// Duplicates counts repeated appids in the owned list that were ignored.
	Duplicates int `json:"duplicates"`
}

// ReconcileOptions controls lookup batching and write-back behaviour.
type ReconcileOptions struct {
	// BatchSize overrides the crowd lookup batch size. Zero or less means BatchSize.
	BatchSize int

	// Contribute enables write-backs to the crowd database.
	Contribute bool

	// DryRun prevents execution of any write-back if true.
	DryRun bool

	// OnAction, when set, is called before each write-back is executed.
	OnAction func(Action)
}
