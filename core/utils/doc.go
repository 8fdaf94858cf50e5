// Package utils provides common utility functions for the optimiser.
// It includes helper functions for type conversion of loosely typed VDF values
// and the human-readable size and playtime formats shared by the engine and
// the report builder.
package utils
