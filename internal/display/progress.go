package display

import (
	"fmt"
	"math"
	"strings"

	"github.com/jamesboyd/powertimer/internal/i18n"
)

const (
	defaultBarWidth = 40
	defaultFill     = "█"
	defaultEmpty    = "░"
)

// BarOptions controls DrawProgressBar. Zero values select width 40, the
// accent color and the block glyphs.
type BarOptions struct {
	Width int
	Color string
	Fill  string
	Empty string
}

// Progress returns current/total clamped to [0, 1]. A non-positive total
// or a NaN operand yields 0.
func Progress(current, total float64) float64 {
	if total <= 0 || math.IsNaN(current) || math.IsNaN(total) {
		return 0
	}
	return min(max(current/total, 0), 1)
}

// ProgressBar builds the bar glyphs and the integer percentage.
func ProgressBar(current, total float64, width int, fill, empty string) (string, int) {
	p := Progress(current, total)
	filled := int(float64(width) * p)
	bar := strings.Repeat(fill, filled) + strings.Repeat(empty, width-filled)
	return bar, int(p * 100)
}

// DrawProgressBar renders a centered bar followed by its percentage.
func (r *Renderer) DrawProgressBar(current, total float64, o BarOptions) {
	if o.Width <= 0 {
		o.Width = defaultBarWidth
	}
	if o.Fill == "" {
		o.Fill = defaultFill
	}
	if o.Empty == "" {
		o.Empty = defaultEmpty
	}
	if o.Color == "" {
		o.Color = r.cfg.AccentColor
	}

	bar, pct := ProgressBar(current, total, o.Width, o.Fill, o.Empty)
	margin := strings.Repeat(" ", max(0, (r.width()-o.Width-7)/2))
	r.line(fmt.Sprintf("%s%s %d%%", margin, StyleText(bar, o.Color), pct))
}

// FormatClock renders seconds as HH:MM:SS, or MM:SS below one hour.
// Negative input is treated as zero.
func FormatClock(seconds int) string {
	seconds = max(seconds, 0)
	h, rem := seconds/3600, seconds%3600
	m, s := rem/60, rem%60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// DrawClock renders the remaining time in a titled box and a bar showing the
// seconds elapsed within the current minute.
func (r *Renderer) DrawClock(remaining int) {
	remaining = max(remaining, 0)
	units := i18n.UnitsMS
	if remaining >= 3600 {
		units = i18n.UnitsHMS
	}

	r.DrawBox([]string{"", FormatClock(remaining), r.msg.T(units), ""}, BoxOptions{
		Title: r.msg.T(i18n.TimeRemaining),
		Color: r.cfg.AccentColor,
	})
	r.DrawProgressBar(float64(60-remaining%60), 60, BarOptions{})
}
