// Package keyboard reads single keystrokes from the controlling terminal.
//
// Each host platform has its own Poller; New picks the one compiled for the
// current OS. All implementations share the same contract: EnableRawMode and
// RestoreMode are idempotent, and PollKey never blocks longer than its
// timeout.
package keyboard

import (
	"errors"
	"time"
	"unicode"
)

// Interrupt is the byte a raw-mode terminal delivers for Ctrl+C.
const Interrupt rune = 0x03

// ErrUnsupported is returned by EnableRawMode where raw input is unavailable.
var ErrUnsupported = errors.New("keyboard: raw mode unsupported on this platform")

// Poller owns the terminal's raw-mode lifecycle and polls for keys.
type Poller interface {
	// EnableRawMode switches stdin to unbuffered, unechoed input.
	EnableRawMode() error
	// PollKey waits up to timeout for a key. ok is false when none arrived.
	PollKey(timeout time.Duration) (key rune, ok bool, err error)
	// RestoreMode puts back the terminal mode saved by EnableRawMode.
	RestoreMode() error
}

// New returns the Poller for the host platform reading from stdin.
func New() Poller {
	return newPoller()
}

func normalize(r rune) rune {
	return unicode.ToLower(r)
}
