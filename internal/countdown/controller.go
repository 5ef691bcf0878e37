// Package countdown runs the cancellable shutdown countdown.
package countdown

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jamesboyd/powertimer/internal/apperr"
	"github.com/jamesboyd/powertimer/internal/keyboard"
	"github.com/jamesboyd/powertimer/internal/logging"
	"github.com/jamesboyd/powertimer/internal/power"
)

const (
	// CancelKey cancels a running countdown.
	CancelKey = 'c'

	defaultTickInterval = time.Second
	defaultPollInterval = 100 * time.Millisecond
)

var (
	ErrInvalidDuration = errors.New("countdown duration must be at least one second")
	ErrSessionActive   = errors.New("a countdown is already running")
	ErrInterrupted     = errors.New("countdown interrupted")
)

// View draws the countdown. Tick is called from the ticking goroutine;
// Cancelled is called after that goroutine has exited.
type View interface {
	Tick(remaining int)
	Cancelled()
}

// Result describes how a session ended.
type Result struct {
	SessionID   string
	State       State
	Interrupted bool
	// ShutdownErr is whatever the Shutdowner returned on expiry.
	ShutdownErr error
}

// Controller owns at most one running Session at a time.
type Controller struct {
	keys  keyboard.Poller
	view  View
	power power.Shutdowner
	clock Clock
	log   *logging.Logger

	tickInterval time.Duration
	pollInterval time.Duration

	active atomic.Bool
}

// Option customizes a Controller.
type Option func(*Controller)

// WithClock replaces the wall clock.
func WithClock(clock Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithPollInterval sets how long each key poll may block.
func WithPollInterval(d time.Duration) Option {
	return func(c *Controller) { c.pollInterval = d }
}

// New creates a Controller.
func New(keys keyboard.Poller, view View, sd power.Shutdowner, opts ...Option) *Controller {
	c := &Controller{
		keys:         keys,
		view:         view,
		power:        sd,
		clock:        RealClock{},
		log:          logging.Discard(),
		tickInterval: defaultTickInterval,
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithComponent("countdown")
	return c
}

// tickResult is what the ticking goroutine reports when it exits.
type tickResult struct {
	shutdownErr error
	panicErr    error
}

// Run counts d down, redrawing once per tick, and shuts the machine down when
// it reaches zero. Pressing CancelKey cancels; Ctrl+C or cancelling ctx
// cancels and returns an apperr.Interrupt error. Raw mode is restored on
// every return path.
func (c *Controller) Run(ctx context.Context, d time.Duration) (Result, error) {
	seconds := int64(d / time.Second)
	if seconds <= 0 {
		return Result{}, apperr.New(apperr.Validation, "start countdown", fmt.Errorf("%w: got %v", ErrInvalidDuration, d))
	}
	if !c.active.CompareAndSwap(false, true) {
		return Result{}, ErrSessionActive
	}
	defer c.active.Store(false)

	if err := c.keys.EnableRawMode(); err != nil {
		return Result{}, apperr.New(apperr.Unexpected, "start countdown", err)
	}
	defer c.keys.RestoreMode()

	s := newSession(c.clock.Now(), time.Duration(seconds)*time.Second)
	log := c.log.WithSession(s.ID)
	log.Info("session started", map[string]any{"seconds": seconds, "end": s.End.Format(time.RFC3339)})

	stop := make(chan struct{})
	done := make(chan tickResult, 1)
	go c.tick(ctx, s, stop, done)

	// stopTicker requests cancellation and waits for the ticking goroutine to
	// exit. If expiry already won, it just waits for the shutdown call to return.
	stopTicker := func() tickResult {
		if s.resolve(CancelledByUser) {
			close(stop)
		}
		return <-done
	}

	for {
		select {
		case res := <-done:
			return c.finish(s, res, false, log)
		default:
		}

		if ctx.Err() != nil {
			return c.finish(s, stopTicker(), true, log)
		}

		key, ok, err := c.keys.PollKey(c.pollInterval)
		if err != nil {
			res := stopTicker()
			log.Error("keyboard poll failed", map[string]any{"error": err})
			return Result{SessionID: s.ID, State: s.State(), ShutdownErr: res.shutdownErr},
				apperr.New(apperr.Unexpected, "poll keyboard", err)
		}
		if !ok {
			continue
		}

		switch key {
		case CancelKey:
			return c.finish(s, stopTicker(), false, log)
		case keyboard.Interrupt:
			return c.finish(s, stopTicker(), true, log)
		}
	}
}

// tick redraws once per interval until the session leaves Running or time
// runs out. It always sends exactly one value on done.
func (c *Controller) tick(ctx context.Context, s *Session, stop <-chan struct{}, done chan<- tickResult) {
	var res tickResult
	defer func() {
		if r := recover(); r != nil {
			res.panicErr = fmt.Errorf("countdown ticker panicked: %v", r)
		}
		done <- res
	}()

	for {
		if s.State() != Running {
			return
		}

		now := c.clock.Now()
		if !now.Before(s.End) {
			if s.resolve(Expired) {
				res.shutdownErr = c.power.Shutdown(ctx)
			}
			return
		}

		c.view.Tick(s.Remaining(now))

		select {
		case <-stop:
			return
		case <-c.clock.After(c.tickInterval):
		}
	}
}

func (c *Controller) finish(s *Session, res tickResult, interrupted bool, log *logging.Logger) (Result, error) {
	if res.panicErr != nil {
		// The ticker died while Running; abandon the session so nothing fires.
		s.resolve(CancelledByUser)
		log.Error("session aborted", map[string]any{"error": res.panicErr})
		return Result{SessionID: s.ID, State: s.State(), Interrupted: interrupted},
			apperr.New(apperr.Unexpected, "countdown", res.panicErr)
	}

	result := Result{
		SessionID:   s.ID,
		State:       s.State(),
		Interrupted: interrupted,
		ShutdownErr: res.shutdownErr,
	}

	switch result.State {
	case Expired:
		if result.ShutdownErr != nil {
			log.Error("shutdown failed", map[string]any{"error": result.ShutdownErr})
		} else {
			log.Info("session expired, shutdown issued")
		}
	case CancelledByUser:
		if !interrupted {
			log.Info("session cancelled by user")
			c.view.Cancelled()
		}
	}

	if interrupted {
		log.Warn("session interrupted", map[string]any{"state": result.State})
		return result, apperr.New(apperr.Interrupt, "countdown", ErrInterrupted)
	}
	return result, nil
}
