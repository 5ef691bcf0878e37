//go:build !unix && !windows

package keyboard

import "time"

// nopPoller is used where no console API is available. It never reports a key.
type nopPoller struct{}

func newPoller() Poller {
	return nopPoller{}
}

func (nopPoller) EnableRawMode() error { return ErrUnsupported }

func (nopPoller) RestoreMode() error { return nil }

func (nopPoller) PollKey(timeout time.Duration) (rune, bool, error) {
	time.Sleep(timeout)
	return 0, false, nil
}
