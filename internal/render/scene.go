// Package render composes the clock and forecast rows onto a surface and
// drives the frame loop.
package render

import (
	"fmt"
	"image"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/bassaaaa/home-clock/internal/framebuffer"
	"github.com/bassaaaa/home-clock/internal/glyph"
	"github.com/bassaaaa/home-clock/internal/icon"
	"github.com/bassaaaa/home-clock/internal/layout"
	"github.com/bassaaaa/home-clock/internal/weather"
)

// Screen geometry.
const (
	Width  = 800
	Height = 480

	DateY     = 40
	DateScale = 3

	TimeY     = 120
	TimeScale = 16

	ForecastY      = 360
	ForecastScale  = 2
	ForecastSlots  = 4
	IconOffsetY    = 30
	RainOffsetY    = IconOffsetY + 40
	RainHighChance = 50
)

// Palette holds the scene colors.
type Palette struct {
	Background framebuffer.Color
	Date       framebuffer.Color
	Time       framebuffer.Color
	Forecast   framebuffer.Color
	RainHigh   framebuffer.Color
	RainLow    framebuffer.Color
	Status     framebuffer.Color
}

// DefaultPalette is the dark kiosk theme.
var DefaultPalette = Palette{
	Background: 0x001020,
	Date:       framebuffer.RGB(180, 180, 180),
	Time:       framebuffer.RGB(255, 255, 255),
	Forecast:   framebuffer.RGB(150, 150, 150),
	RainHigh:   framebuffer.RGB(100, 150, 255),
	RainLow:    framebuffer.RGB(120, 120, 120),
	Status:     framebuffer.RGB(90, 100, 120),
}

// Scene draws one frame. It holds no per-frame state, so drawing the same
// inputs twice yields identical pixels.
type Scene struct {
	Icons      icon.Painter
	Palette    Palette
	ShowStatus bool
}

// NewScene creates a scene with the default palette.
func NewScene(icons icon.Painter) *Scene {
	return &Scene{
		Icons:   icons,
		Palette: DefaultPalette,
	}
}

// Blink reports whether the time separator is visible at t: on for the first
// half of every second.
func Blink(t time.Time) bool {
	return t.Nanosecond() < int(500*time.Millisecond)
}

// Draw renders the date, the time and, when snap is non-nil, the forecast
// strip. The caller clears the surface first.
func (sc *Scene) Draw(s *framebuffer.Surface, now time.Time, snap *weather.Snapshot) {
	sc.DrawDate(s, now)
	sc.DrawTime(s, now.Hour(), now.Minute(), Blink(now))
	if snap != nil {
		sc.DrawForecast(s, snap.Forecast)
	}
	if sc.ShowStatus {
		sc.drawStatus(s, now, snap)
	}
}

// Weekday returns the three-letter uppercase weekday label.
func Weekday(d time.Weekday) string {
	return strings.ToUpper(d.String()[:3])
}

// DrawDate draws "YYYY-MM-DD WKD" centered on the surface.
func (sc *Scene) DrawDate(s *framebuffer.Surface, now time.Time) {
	const scale = DateScale
	cell := glyph.DigitWidth * scale
	wd := Weekday(now.Weekday())

	date := fmt.Sprintf("%04d-%02d-%02d", now.Year()%10000, int(now.Month()), now.Day())
	row := layout.NewRow(scale)
	for range date {
		row.Add(cell)
	}
	row.Pad(2 * scale).Add(glyph.TextWidth(wd, scale))

	xs := row.Place(0, s.Width())
	for i, r := range date {
		if r == '-' {
			glyph.DrawHyphen(s, xs[i], DateY, scale, sc.Palette.Date)
			continue
		}
		glyph.DrawDigit(s, int(r-'0'), xs[i], DateY, scale, sc.Palette.Date)
	}
	glyph.DrawText(s, wd, xs[len(xs)-1], DateY, scale, sc.Palette.Date)
}

// clockRow lays out "HH:MM" at the given scale inside [x0, x0+container).
func clockRow(x0, container, scale int) []int {
	cell := glyph.DigitWidth * scale
	row := layout.NewRow(scale)
	row.Add(cell).Add(cell).Add(glyph.ColonWidth * scale).Add(cell).Add(cell)
	return row.Place(x0, container)
}

func drawClock(s *framebuffer.Surface, xs []int, y, scale, hour, minute int, c framebuffer.Color, blink bool) {
	glyph.DrawDigit(s, hour/10, xs[0], y, scale, c)
	glyph.DrawDigit(s, hour%10, xs[1], y, scale, c)
	glyph.DrawColon(s, xs[2], y, scale, c, blink)
	glyph.DrawDigit(s, minute/10, xs[3], y, scale, c)
	glyph.DrawDigit(s, minute%10, xs[4], y, scale, c)
}

// DrawTime draws the large "HH:MM" readout centered on the surface.
func (sc *Scene) DrawTime(s *framebuffer.Surface, hour, minute int, blink bool) {
	xs := clockRow(0, s.Width(), TimeScale)
	drawClock(s, xs, TimeY, TimeScale, hour, minute, sc.Palette.Time, blink)
}

// DrawForecast draws up to ForecastSlots items. Each slot is a quarter of
// the surface width; fewer items are centered as a group.
func (sc *Scene) DrawForecast(s *framebuffer.Surface, points []weather.ForecastPoint) {
	if len(points) > ForecastSlots {
		points = points[:ForecastSlots]
	}
	slot := s.Width() / ForecastSlots
	for i, x := range layout.Slots(s.Width(), slot, len(points)) {
		sc.drawForecastItem(s, points[i], x, slot)
	}
}

func (sc *Scene) drawForecastItem(s *framebuffer.Surface, p weather.ForecastPoint, slotX, slot int) {
	const scale = ForecastScale

	xs := clockRow(slotX, slot, scale)
	drawClock(s, xs, ForecastY, scale, p.Hour, 0, sc.Palette.Forecast, true)

	iconSize := icon.Size * scale
	iconX := slotX + layout.Center(slot, iconSize)
	if sc.Icons != nil {
		sc.Icons.Draw(s, icon.Classify(p.ConditionCode, p.IsDay), iconX, ForecastY+IconOffsetY, scale)
	}

	rainColor := sc.Palette.RainLow
	if p.ChanceOfRain >= RainHighChance {
		rainColor = sc.Palette.RainHigh
	}
	digits := strconv.Itoa(p.ChanceOfRain)
	cell := glyph.DigitWidth * scale
	row := layout.NewRow(scale)
	for range digits {
		row.Add(cell)
	}
	row.Add(cell)

	rx := row.Place(slotX, slot)
	y := ForecastY + RainOffsetY
	for i, r := range digits {
		glyph.DrawDigit(s, int(r-'0'), rx[i], y, scale, rainColor)
	}
	glyph.DrawPercent(s, rx[len(rx)-1], y, scale, rainColor)
}

// drawStatus writes a small diagnostic line in the bottom-left corner.
func (sc *Scene) drawStatus(s *framebuffer.Surface, now time.Time, snap *weather.Snapshot) {
	text := "waiting for weather data"
	if snap != nil {
		age := now.Sub(snap.FetchedAt).Truncate(time.Minute)
		if age < 0 {
			age = 0
		}
		text = fmt.Sprintf("%s  updated %s ago", snap.Location, age)
	}

	d := &font.Drawer{
		Dst:  s,
		Src:  image.NewUniform(sc.Palette.Status),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(8, s.Height()-8),
	}
	d.DrawString(text)
}
