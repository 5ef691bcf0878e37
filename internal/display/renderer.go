// Package display renders styled text, boxes, progress bars and the
// countdown clock as ANSI escape sequences.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/jamesboyd/powertimer/internal/config"
	"github.com/jamesboyd/powertimer/internal/i18n"
)

const (
	// newline carries an explicit carriage return so rows stay aligned
	// while the terminal is in raw mode.
	newline = "\r\n"

	clearScreen = "\033[2J\033[H"

	fallbackWidth  = 80
	fallbackHeight = 24
)

// Geometry reports the current terminal width and height.
type Geometry func() (width, height int)

// StdoutGeometry queries the size of the terminal attached to stdout.
func StdoutGeometry() (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return w, h
}

// Renderer writes styled output using the colors and box style from cfg.
type Renderer struct {
	out  io.Writer
	cfg  *config.Config
	msg  *i18n.Catalog
	size Geometry
}

// Option customizes a Renderer.
type Option func(*Renderer)

// WithGeometry replaces the terminal size query.
func WithGeometry(g Geometry) Option {
	return func(r *Renderer) { r.size = g }
}

// New creates a Renderer writing to out.
func New(out io.Writer, cfg *config.Config, msg *i18n.Catalog, opts ...Option) *Renderer {
	r := &Renderer{
		out:  out,
		cfg:  cfg,
		msg:  msg,
		size: StdoutGeometry,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// width queries the terminal every call; frames must not reuse a stale size.
func (r *Renderer) width() int {
	w, _ := r.size()
	if w <= 0 {
		return fallbackWidth
	}
	return w
}

func (r *Renderer) line(s string) {
	io.WriteString(r.out, s+newline)
}

// Clear erases the screen and homes the cursor.
func (r *Renderer) Clear() {
	io.WriteString(r.out, clearScreen)
}

// SetTitle sets the terminal window title. Terminals that do not support
// OSC 0 ignore it.
func (r *Renderer) SetTitle(title string) {
	fmt.Fprintf(r.out, "\033]0;%s\a", title)
}

// PrintCentered writes text centered on the current terminal width.
func (r *Renderer) PrintCentered(text string, names ...string) {
	r.line(StyleText(center(text, r.width()), names...))
}

// Prompt writes text without a trailing newline.
func (r *Renderer) Prompt(text string) {
	io.WriteString(r.out, newline+text)
}

// Notice clears the screen and shows a single-message box colored by role
// ("error_color", "warning_color", "success_color", ...).
func (r *Renderer) Notice(title, text, role string) {
	r.Clear()
	r.DrawBox([]string{text}, BoxOptions{Title: title, Color: r.cfg.ColorFor(role)})
}

// MenuOption is one selectable menu entry.
type MenuOption struct {
	Key   string
	Label string
}

// DrawMenu renders options inside a box, followed by optional footer lines.
func (r *Renderer) DrawMenu(title string, options []MenuOption, footer ...string) {
	content := make([]string, 0, len(options)+len(footer)+1)
	for _, o := range options {
		content = append(content, fmt.Sprintf("  [%s] %s", o.Key, o.Label))
	}
	if len(footer) > 0 {
		content = append(content, "")
		content = append(content, footer...)
	}
	r.DrawBox(content, BoxOptions{Title: title, Color: r.cfg.AccentColor})
}

// center pads s on both sides to width display columns, extra space going right.
func center(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}
