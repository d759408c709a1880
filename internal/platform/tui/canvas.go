package tui

import (
	"strings"

	"github.com/vovakirdan/upball/internal/core"
	"github.com/vovakirdan/upball/internal/spawn"
	"github.com/vovakirdan/upball/internal/world"
)

// Terminal cells are roughly twice as tall as wide.
const cellAspect = 2.0

// Glyphs of the playfield.
const (
	glyphBall   = 'O'
	glyphHazard = '✖'
	glyphStar   = '★'
	glyphGoal   = '◉'
)

// fieldArea returns the largest box inside a w×h canvas that keeps the
// field's proportions, centered horizontally. The box includes the border.
func fieldArea(f *world.Field, w, h int) core.Rect {
	fw, fh := f.Size()
	innerH := h - 2
	if innerH < 1 || w < 3 {
		return core.Rect{}
	}
	innerW := int(float64(innerH) * fw / fh * cellAspect)
	if innerW > w-2 {
		innerW = w - 2
	}
	if innerW < 1 {
		innerW = 1
	}
	return core.NewRect((w-innerW-2)/2, 0, innerW+2, innerH+2)
}

// drawField draws the playfield, its bodies and the ball into s.
func drawField(s *core.Screen, f *world.Field) core.Rect {
	box := fieldArea(f, s.Width(), s.Height())
	if box.W == 0 {
		return box
	}
	s.DrawBox(box, core.ColorGray)

	fw, fh := f.Size()
	proj := core.Projection{
		WorldW: fw,
		WorldH: fh,
		Area:   core.NewRect(box.X+1, box.Y+1, box.W-2, box.H-2),
	}

	ball := f.Ball()
	if _, rampY, ok := proj.Cell(0, ball.Y); ok {
		drawRamp(s, proj.Area, rampY, f.Tilt())
	}

	for _, b := range f.Bodies() {
		x, y, ok := proj.Cell(b.X, b.Y)
		if !ok {
			continue
		}
		switch b.Kind {
		case spawn.KindHazard:
			s.Set(x, y, glyphHazard, core.ColorRed)
		case spawn.KindStar:
			s.Set(x, y, glyphStar, core.ColorBrightYellow)
		case spawn.KindGoal:
			s.Set(x, y, glyphGoal, core.ColorMagenta)
		}
	}

	if x, y, ok := proj.Cell(ball.X, ball.Y); ok {
		s.Set(x, y-1, glyphBall, core.ColorCyan)
	}
	return box
}

// drawRamp draws the ramp row; its glyph shows which way it leans.
func drawRamp(s *core.Screen, area core.Rect, y int, tilt float64) {
	glyph := '─'
	switch {
	case tilt > 0.05:
		glyph = '╲'
	case tilt < -0.05:
		glyph = '╱'
	}
	for x := area.X; x < area.Right(); x++ {
		s.Set(x, y, glyph, core.ColorGray)
	}
}

// drawOverlay draws a boxed panel of centered lines in the middle of area.
func drawOverlay(s *core.Screen, area core.Rect, lines []string, colors []core.Color) {
	width := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > width {
			width = n
		}
	}
	w := width + 4
	h := len(lines) + 2
	panel := core.NewRect(area.X+(area.W-w)/2, area.Y+(area.H-h)/2, w, h)

	s.FillRect(panel, ' ', core.ColorDefault)
	s.DrawBox(panel, core.ColorWhite)
	for i, l := range lines {
		c := core.ColorWhite
		if i < len(colors) {
			c = colors[i]
		}
		pad := (width - len([]rune(l))) / 2
		s.DrawText(panel.X+2+pad, panel.Y+1+i, l, c)
	}
}

// starString renders earned stars out of three, e.g. "★★☆".
func starString(stars, max int) string {
	if stars < 0 {
		stars = 0
	}
	if stars > max {
		stars = max
	}
	return strings.Repeat("★", stars) + strings.Repeat("☆", max-stars)
}
