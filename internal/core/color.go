package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorPink
	ColorBrown
	ColorPurple
)

// Palette lists the cosmetic colors cycled through by candy variants.
var Palette = []Color{
	ColorPink,
	ColorBrightYellow,
	ColorBrightCyan,
	ColorBrightGreen,
	ColorOrange,
	ColorPurple,
	ColorBrightRed,
	ColorBrightBlue,
}

// PaletteColor returns the palette entry for an arbitrary index.
func PaletteColor(i int) Color {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}
