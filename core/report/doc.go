// Package report turns a reconciliation plan into the two tables shown to the
// user.
//
// The matched report ranks games by minutes of playtime per byte of disk, best
// value first, and carries running totals so the user can read off how much
// space the top N games take and how much of their playtime they account for.
// The unmatched report lists games without a known size, most played first.
//
// Sorting is stable, so games with equal keys keep the order of the owned list.
package report
