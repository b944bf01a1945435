package ui

import (
	"os"
	"sync"
)

// Palette assigns an xterm-256 color number to each role agecalc prints.
type Palette struct {
	Strategy string // strategy names in banners and the comparison table
	Duration string // timings, lookup delay and timeout
	Setting  string // roster size, reference date, limits
	Person   string // names in the ages table
	Age      string // computed ages
	Success  string
	Warning  string // timeouts and cancellation
	Failure  string
	Muted    string // file paths and placeholders
}

// Theme is a named palette. A Plain theme emits no escape codes at all.
type Theme struct {
	Name    string
	Palette Palette
	Plain   bool
}

var (
	// DarkTheme is the default, tuned for dark terminal backgrounds.
	DarkTheme = Theme{
		Name: "dark",
		Palette: Palette{
			Strategy: "39",  // bright blue
			Duration: "220", // yellow
			Setting:  "141", // purple
			Person:   "252", // light grey
			Age:      "82",  // green
			Success:  "82",
			Warning:  "214", // orange
			Failure:  "196", // red
			Muted:    "245", // grey
		},
	}

	// NoColorTheme is selected by --no-color, NO_COLOR or a dumb terminal.
	NoColorTheme = Theme{Name: "none", Plain: true}

	active   = DarkTheme
	activeMu sync.RWMutex
)

// Active returns the theme in use.
func Active() Theme {
	activeMu.RLock()
	defer activeMu.RUnlock()
	return active
}

// SetActive replaces the theme in use. Tests use it to pin and restore colors.
func SetActive(t Theme) {
	activeMu.Lock()
	defer activeMu.Unlock()
	active = t
}

// InitTheme picks the theme for this run. Colors are off when noColor is
// set, when NO_COLOR is present with any value (https://no-color.org/), or
// when TERM is "dumb".
func InitTheme(noColor bool) {
	t := DarkTheme
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set || os.Getenv("TERM") == "dumb" {
		t = NoColorTheme
	}
	SetActive(t)
}
