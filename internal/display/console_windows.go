//go:build windows

package display

import (
	"os"

	"golang.org/x/sys/windows"
)

// EnableVirtualTerminal switches the console into VT processing mode so the
// escape sequences this package writes are interpreted. Best effort.
func EnableVirtualTerminal() {
	h := windows.Handle(os.Stdout.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return
	}
	windows.SetConsoleMode(h, mode|windows.ENABLE_PROCESSED_OUTPUT|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING)
}
