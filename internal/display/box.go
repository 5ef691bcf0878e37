package display

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	// maxBoxWidth caps every box regardless of terminal size.
	maxBoxWidth = 60
	// minBoxWidth keeps glyph counts positive on tiny terminals.
	minBoxWidth = 8
	ellipsis    = "..."
)

type borderSet struct {
	tl, tr, bl, br, h, v string
}

var borders = map[string]borderSet{
	"simple":  {tl: "┌", tr: "┐", bl: "└", br: "┘", h: "─", v: "│"},
	"double":  {tl: "╔", tr: "╗", bl: "╚", br: "╝", h: "═", v: "║"},
	"rounded": {tl: "╭", tr: "╮", bl: "╰", br: "╯", h: "─", v: "│"},
}

// BoxOptions controls DrawBox. Zero values select the defaults: the terminal
// width minus 4 for Width, the configured box style and accent color.
type BoxOptions struct {
	Title string
	Width int
	Style string
	Color string
}

func (r *Renderer) border(style string) borderSet {
	if style == "" {
		style = r.cfg.BoxStyle
	}
	if b, ok := borders[style]; ok {
		return b
	}
	return borders["rounded"]
}

// boxWidth computes the outer width of a box for the given content.
func boxWidth(requested, termWidth int, lines []string) int {
	if requested <= 0 {
		requested = termWidth - 4
	}
	longest := 0
	for _, l := range lines {
		longest = max(longest, runewidth.StringWidth(l))
	}
	width := max(requested, longest+4)
	width = min(width, termWidth-2, maxBoxWidth)
	return max(width, minBoxWidth)
}

// fit truncates s to width columns with a trailing ellipsis.
func fit(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// DrawBox renders lines inside a bordered box centered on the terminal.
func (r *Renderer) DrawBox(lines []string, o BoxOptions) {
	termWidth := r.width()
	b := r.border(o.Style)
	color := o.Color
	if color == "" {
		color = r.cfg.AccentColor
	}

	width := boxWidth(o.Width, termWidth, lines)
	inner := width - 4
	margin := strings.Repeat(" ", max(0, (termWidth-width)/2))

	if o.Title != "" {
		title := fit(o.Title, inner)
		rest := width - 4 - runewidth.StringWidth(title)
		left := rest / 2
		top := b.tl + strings.Repeat(b.h, left) + " " + title + " " + strings.Repeat(b.h, rest-left) + b.tr
		r.line(margin + StyleText(top, color))
	} else {
		r.line(margin + StyleText(b.tl+strings.Repeat(b.h, width-2)+b.tr, color))
	}

	for _, l := range lines {
		l = center(fit(l, inner), inner)
		r.line(margin + StyleText(b.v+" "+l+" "+b.v, color))
	}

	r.line(margin + StyleText(b.bl+strings.Repeat(b.h, width-2)+b.br, color))
}
