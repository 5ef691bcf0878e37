//go:build !windows

package display

// EnableVirtualTerminal is a no-op; ANSI terminals need no setup.
func EnableVirtualTerminal() {}
