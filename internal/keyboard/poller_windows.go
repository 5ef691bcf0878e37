//go:build windows

package keyboard

import (
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/windows"
	"golang.org/x/term"
)

// pollStep is how often the console is checked for a pending key.
const pollStep = 10 * time.Millisecond

// windowsPoller checks the console with the C runtime's _kbhit/_getwch.
type windowsPoller struct {
	mu     sync.Mutex
	fd     int
	state  *term.State
	kbhit  *windows.LazyProc
	getwch *windows.LazyProc
}

func newPoller() Poller {
	crt := windows.NewLazySystemDLL("msvcrt.dll")
	return &windowsPoller{
		fd:     int(os.Stdin.Fd()),
		kbhit:  crt.NewProc("_kbhit"),
		getwch: crt.NewProc("_getwch"),
	}
}

func (p *windowsPoller) EnableRawMode() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != nil || !term.IsTerminal(p.fd) {
		return nil
	}
	st, err := term.MakeRaw(p.fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	p.state = st
	return nil
}

func (p *windowsPoller) RestoreMode() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == nil {
		return nil
	}
	err := term.Restore(p.fd, p.state)
	p.state = nil
	if err != nil {
		return fmt.Errorf("restore terminal mode: %w", err)
	}
	return nil
}

func (p *windowsPoller) PollKey(timeout time.Duration) (rune, bool, error) {
	if err := p.kbhit.Find(); err != nil {
		return 0, false, fmt.Errorf("load _kbhit: %w", err)
	}
	if err := p.getwch.Find(); err != nil {
		return 0, false, fmt.Errorf("load _getwch: %w", err)
	}

	deadline := time.Now().Add(timeout)
	for {
		if hit, _, _ := p.kbhit.Call(); hit != 0 {
			ch, _, _ := p.getwch.Call()
			// Function and arrow keys arrive as a 0x00/0xE0 prefix plus a scan code.
			if ch == 0 || ch == 0xE0 {
				p.getwch.Call()
				return 0, false, nil
			}
			return normalize(rune(uint16(ch))), true, nil
		}
		if !time.Now().Before(deadline) {
			return 0, false, nil
		}
		time.Sleep(min(pollStep, time.Until(deadline)))
	}
}
