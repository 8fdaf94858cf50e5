// Package presenter renders the optimiser's console output.
//
// Status lines colour their first sentence by severity (ok, warn, note,
// error) using github.com/fatih/color. The matched and unmatched reports are
// aligned with text/tabwriter. Prompt and Pause read from the configured
// input so the interactive parts can be driven from tests.
package presenter
