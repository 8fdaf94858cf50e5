// Package optimiser wires the stages of a run together: scan local libraries,
// fetch owned games, look up crowd sizes, contribute local sizes back and
// render the ranked report.
package optimiser
