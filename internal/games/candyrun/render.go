package candyrun

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/candy-run/internal/core"
	"github.com/vovakirdan/candy-run/internal/runner"
)

// Visual characters for rendering
const (
	GroundTop   = '▀'
	GroundFill  = '░'
	PlayerBody  = '█'
	PlayerHurt  = '▒'
	CandyChar   = '◆'
	HeartFull   = '♥'
	HeartEmpty  = '♡'
	HatChar     = '▲'
	WeaponChar  = '/'
	ShoesChar   = '▄'
	hudRows     = 1
	minCellSize = 1
)

type look struct {
	glyph rune
	color core.Color
}

var objectLooks = map[string]look{
	runner.TypeCactus:   {'♣', core.ColorGreen},
	runner.TypeRock:     {'●', core.ColorGray},
	runner.TypeBarrier:  {'#', core.ColorOrange},
	runner.TypeMushroom: {'♠', core.ColorRed},
	runner.TypeBird:     {'v', core.ColorBrightWhite},
	runner.TypeBee:      {'*', core.ColorBrightYellow},
	runner.TypeGhost:    {'@', core.ColorBrightCyan},
}

// groundColors tint the ground line per background tier.
var groundColors = []core.Color{
	core.ColorGreen,
	core.ColorBrightGreen,
	core.ColorYellow,
	core.ColorOrange,
	core.ColorBrightRed,
	core.ColorMagenta,
	core.ColorPurple,
	core.ColorBlue,
	core.ColorCyan,
	core.ColorBrightWhite,
}

var skinColors = map[string]core.Color{
	"white":      core.ColorBrightWhite,
	"cocoa":      core.ColorBrown,
	"peach":      core.ColorOrange,
	"rose":       core.ColorPink,
	"lilac":      core.ColorPurple,
	"periwinkle": core.ColorBrightBlue,
	"aqua":       core.ColorBrightCyan,
	"mint":       core.ColorBrightGreen,
	"lime":       core.ColorYellow,
	"coral":      core.ColorBrightRed,
}

// view maps world pixels onto the playfield below the HUD.
type view struct {
	sx, sy float64
	dx     int
}

func newView(f runner.Frame, w, h int) view {
	return view{
		sx: float64(w) / f.WorldW,
		sy: float64(h-hudRows) / f.WorldH,
	}
}

func (v view) col(x float64) int {
	return int(math.Floor(x*v.sx)) + v.dx
}

func (v view) row(y float64) int {
	return hudRows + int(math.Floor(y*v.sy))
}

// rect converts a world box to a cell rect at least one cell in size.
func (v view) rect(b core.Box) core.Rect {
	x0, x1 := v.col(b.Left()), v.col(b.Right())
	y0, y1 := v.row(b.Top()), v.row(b.Bottom())
	return core.NewRect(x0, y0, core.Max(x1-x0, minCellSize), core.Max(y1-y0, minCellSize))
}

// Render draws the current frame to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}
	f := g.session.Frame()
	v := newView(f, dst.Width(), dst.Height())
	if f.Shake && (g.tick/2)%2 == 0 {
		v.dx = 1
	}

	g.drawGround(dst, f, v)
	for _, s := range f.Sprites {
		drawSprite(dst, s, v)
	}
	g.drawPlayer(dst, f, v)
	drawHUD(dst, f)

	switch {
	case f.GameOver:
		title := "GAME OVER"
		if f.Fell {
			title = "YOU FELL IN A PIT"
		}
		drawCenteredMessage(dst, title, fmt.Sprintf("Score: %d  Time: %s  |  R to restart", f.Score, f.Clock))
	case f.Paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case f.SpeedUp:
		dst.DrawTextCenteredColored(hudRows+1, ">> SPEED UP! <<", core.ColorBrightYellow)
	}
}

func (g *Game) drawGround(dst *core.Screen, f runner.Frame, v view) {
	top := v.row(f.GroundY)
	color := groundColors[core.Clamp(f.BgTier, 0, len(groundColors)-1)]
	dst.DrawHLineColored(0, top, dst.Width(), GroundTop, color)
	for y := top + 1; y < dst.Height(); y++ {
		dst.DrawHLineColored(0, y, dst.Width(), GroundFill, core.ColorBrown)
	}
	for _, p := range f.Pits {
		x0, x1 := v.col(p.Left()), v.col(p.Right())
		for y := top; y < dst.Height(); y++ {
			dst.DrawHLine(x0, y, core.Max(x1-x0, 1), ' ')
		}
	}
}

func drawSprite(dst *core.Screen, s runner.Sprite, v view) {
	r := v.rect(s.Box)
	if s.Kind == runner.KindCollectible {
		cx, cy := r.X+r.W/2, r.Y+r.H/2
		dst.SetColored(cx, cy, CandyChar, core.PaletteColor(s.Variant))
		return
	}
	lk, ok := objectLooks[s.Type]
	if !ok {
		lk = look{'?', core.ColorWhite}
	}
	dst.DrawRectColored(r, lk.glyph, lk.color)
}

func (g *Game) drawPlayer(dst *core.Screen, f runner.Frame, v view) {
	// Blink while invulnerable.
	if f.Hurt && g.tick%8 < 4 {
		return
	}
	color, ok := skinColors[f.Appearance.Skin]
	if !ok {
		color = core.ColorBrightWhite
	}
	body := PlayerBody
	if f.Pose == runner.PoseFall {
		body = PlayerHurt
	}
	r := v.rect(f.Player)
	dst.DrawRectColored(r, body, color)

	a := f.Appearance
	if a.Clothes != "" && r.H > 2 {
		dst.DrawHLineColored(r.X, r.Y+r.H/2, r.W, PlayerBody, core.ColorBlue)
	}
	if a.Shoes != "" {
		dst.DrawHLineColored(r.X, r.Y+r.H-1, r.W, ShoesChar, core.ColorRed)
	}
	if a.Hat != "" && f.Pose != runner.PoseSlide {
		dst.DrawHLineColored(r.X, r.Y-1, r.W, HatChar, core.ColorBrightYellow)
	}
	if a.Weapon != "" {
		dst.SetColored(r.X+r.W, r.Y+r.H/2, WeaponChar, core.ColorGray)
	}
}

func drawHUD(dst *core.Screen, f runner.Frame) {
	x := 1
	for i := range f.MaxHearts {
		h := HeartEmpty
		if i < f.Hearts {
			h = HeartFull
		}
		dst.SetColored(x, 0, h, core.ColorBrightRed)
		x++
	}

	stats := fmt.Sprintf(" Candy %d  Score %d  Stage %d  %s ", f.Candies, f.Score, f.Stage, f.Clock)
	dst.DrawTextColored(x+1, 0, stats, core.ColorBrightWhite)

	if f.HardMode {
		tag := " HARD "
		dst.DrawTextColored(dst.Width()-len(tag)-1, 0, tag, core.ColorBrightRed)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Min(core.Max(len(title), len(subtitle))+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightYellow)
	if len(subtitle) > boxW-2 {
		subtitle = strings.TrimSpace(subtitle[:boxW-2])
	}
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
