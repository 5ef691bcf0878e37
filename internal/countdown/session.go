package countdown

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle position of a Session.
type State int32

const (
	Running State = iota
	CancelledByUser
	Expired
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case CancelledByUser:
		return "cancelled"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// Terminal reports whether s has no outgoing transition.
func (s State) Terminal() bool {
	return s == CancelledByUser || s == Expired
}

// Session is one countdown from start to a terminal state.
//
// The state word is the only value shared between the ticking goroutine and
// the key-polling loop. Both leave Running through resolve, so exactly one of
// cancellation and expiry can ever win.
type Session struct {
	ID  string
	End time.Time

	state atomic.Int32
}

func newSession(now time.Time, d time.Duration) *Session {
	return &Session{
		ID:  uuid.NewString(),
		End: now.Add(d),
	}
}

// State returns the current state.
func (s *Session) State() State {
	return State(s.state.Load())
}

// resolve moves the session from Running to to. It reports false if the
// session had already left Running.
func (s *Session) resolve(to State) bool {
	return s.state.CompareAndSwap(int32(Running), int32(to))
}

// Remaining returns the whole seconds left at now, rounded up and clamped to
// zero.
func (s *Session) Remaining(now time.Time) int {
	left := s.End.Sub(now)
	if left <= 0 {
		return 0
	}
	return int((left + time.Second - 1) / time.Second)
}
