package color

import "strings"

// Palette colors.
var (
	Black       = Color{0.0, 0.0, 0.0}
	DarkRed     = Color{0.5, 0.0, 0.0}
	DarkGreen   = Color{0.0, 0.5, 0.0}
	DarkBlue    = Color{0.0, 0.0, 0.5}
	Brown       = Color{0.5, 0.5, 0.0}
	DarkPurple  = Color{0.5, 0.0, 0.5}
	DarkCyan    = Color{0.0, 0.5, 0.5}
	Red         = Color{1.0, 0.0, 0.0}
	Green       = Color{0.0, 1.0, 0.0}
	Blue        = Color{0.0, 0.0, 1.0}
	Yellow      = Color{1.0, 1.0, 0.0}
	Purple      = Color{1.0, 0.0, 1.0}
	Cyan        = Color{0.0, 1.0, 1.0}
	LightRed    = Color{1.0, 0.5, 0.5}
	LightGreen  = Color{0.5, 1.0, 0.5}
	LightBlue   = Color{0.5, 0.5, 1.0}
	LightYellow = Color{1.0, 1.0, 0.5}
	LightPurple = Color{1.0, 0.5, 1.0}
	LightCyan   = Color{0.5, 1.0, 1.0}
	White       = Color{1.0, 1.0, 1.0}
)

var palette = map[string]Color{
	"black":       Black,
	"darkred":     DarkRed,
	"darkgreen":   DarkGreen,
	"darkblue":    DarkBlue,
	"brown":       Brown,
	"darkpurple":  DarkPurple,
	"darkcyan":    DarkCyan,
	"red":         Red,
	"green":       Green,
	"blue":        Blue,
	"yellow":      Yellow,
	"purple":      Purple,
	"cyan":        Cyan,
	"lightred":    LightRed,
	"lightgreen":  LightGreen,
	"lightblue":   LightBlue,
	"lightyellow": LightYellow,
	"lightpurple": LightPurple,
	"lightcyan":   LightCyan,
	"white":       White,
}

// Named looks up a palette color by name, ignoring case.
func Named(name string) (Color, bool) {
	c, ok := palette[strings.ToLower(name)]
	return c, ok
}
