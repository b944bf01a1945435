// Package ui holds the agecalc color theme. Output code asks for a role
// (strategy, duration, age, failure...) rather than a raw color, through
// the Color* accessors for plain text and GetTableStyles for lipgloss tables.
//
// Colors are disabled by --no-color, the NO_COLOR environment variable or
// TERM=dumb.
package ui
