package display

import "fmt"

// Status prints a progress line with the accent color marker.
func (r *Renderer) Status(msg string) {
	r.line(fmt.Sprintf("%s %s", StyleText("▸", "bold", r.cfg.AccentColor), msg))
}

// Success prints a completion line.
func (r *Renderer) Success(msg string) {
	r.line(fmt.Sprintf("%s %s", StyleText("✓", "bold", r.cfg.SuccessColor), msg))
}

// Warn prints a warning line.
func (r *Renderer) Warn(msg string) {
	r.line(fmt.Sprintf("%s %s", StyleText("!", "bold", r.cfg.WarningColor), msg))
}

// Error prints an error line.
func (r *Renderer) Error(msg string) {
	r.line(fmt.Sprintf("%s %s", StyleText("✗", "bold", r.cfg.ErrorColor), msg))
}

// Info prints an aligned label/value pair.
func (r *Renderer) Info(label, value string) {
	r.line(fmt.Sprintf("  %s %s", StyleText(fmt.Sprintf("%-18s", label), r.cfg.AccentColor), value))
}
