// Package format holds pure string formatting helpers shared by the CLI
// presentation layer: durations, progress bars and remaining-time estimates.
package format
