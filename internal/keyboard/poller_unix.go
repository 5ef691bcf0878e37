//go:build unix

package keyboard

import (
	"fmt"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// unixPoller waits for input readiness with poll(2).
type unixPoller struct {
	mu    sync.Mutex
	fd    int
	state *term.State
	buf   [16]byte
	// pending holds bytes from the last read not yet returned as keys.
	pending []byte
}

func newPoller() Poller {
	return newUnixPoller(os.Stdin)
}

func newUnixPoller(f *os.File) *unixPoller {
	return &unixPoller{fd: int(f.Fd())}
}

func (p *unixPoller) EnableRawMode() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != nil {
		return nil
	}
	// Redirected stdin has no line discipline to change; polling still works.
	if !term.IsTerminal(p.fd) {
		return nil
	}
	st, err := term.MakeRaw(p.fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	p.state = st
	return nil
}

func (p *unixPoller) RestoreMode() error {
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

func (p *unixPoller) PollKey(timeout time.Duration) (rune, bool, error) {
	if len(p.pending) > 0 {
		return p.next(), true, nil
	}
	deadline := time.Now().Add(timeout)

	for {
		ms := max(int(time.Until(deadline)/time.Millisecond), 0)
		fds := []unix.PollFd{{Fd: int32(p.fd), Events: unix.POLLIN}}

		n, err := unix.Poll(fds, ms)
		if err != nil {
			if err == unix.EINTR && time.Now().Before(deadline) {
				continue
			}
			if err == unix.EINTR {
				return 0, false, nil
			}
			return 0, false, fmt.Errorf("poll stdin: %w", err)
		}
		if n == 0 {
			return 0, false, nil
		}

		rn, err := unix.Read(p.fd, p.buf[:])
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return 0, false, fmt.Errorf("read stdin: %w", err)
		}
		if rn == 0 {
			// EOF stays readable forever; wait out the timeout instead of spinning.
			time.Sleep(time.Until(deadline))
			return 0, false, nil
		}

		p.pending = p.buf[:rn]
		return p.next(), true, nil
	}
}

// next pops one rune off pending.
func (p *unixPoller) next() rune {
	r, size := utf8.DecodeRune(p.pending)
	p.pending = p.pending[size:]
	return normalize(r)
}
