package ui

const (
	escReset     = "\033[0m"
	escUnderline = "\033[4m"
)

// fg returns the foreground escape code for one palette role, or "" when the
// active theme is plain.
func fg(role func(Palette) string) string {
	t := Active()
	if t.Plain {
		return ""
	}
	return "\033[38;5;" + role(t.Palette) + "m"
}

func plainOr(code string) string {
	if Active().Plain {
		return ""
	}
	return code
}

// The Color* accessors return the escape code of one palette role, or "" when
// colors are off.

func ColorStrategy() string { return fg(func(p Palette) string { return p.Strategy }) }
func ColorDuration() string { return fg(func(p Palette) string { return p.Duration }) }
func ColorSetting() string  { return fg(func(p Palette) string { return p.Setting }) }
func ColorSuccess() string  { return fg(func(p Palette) string { return p.Success }) }
func ColorWarning() string  { return fg(func(p Palette) string { return p.Warning }) }
func ColorFailure() string  { return fg(func(p Palette) string { return p.Failure }) }
func ColorMuted() string    { return fg(func(p Palette) string { return p.Muted }) }

// ColorHeading underlines table headings.
func ColorHeading() string { return plainOr(escUnderline) }

// ColorReset ends any of the above.
func ColorReset() string { return plainOr(escReset) }
