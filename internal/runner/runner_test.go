package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jamesboyd/powertimer/internal/apperr"
	"github.com/jamesboyd/powertimer/internal/config"
	"github.com/jamesboyd/powertimer/internal/keyboard"
	"github.com/jamesboyd/powertimer/internal/logging"
)

type fakeKeys struct {
	mu       sync.Mutex
	script   []rune
	restored int
}

func (k *fakeKeys) EnableRawMode() error { return nil }

func (k *fakeKeys) RestoreMode() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.restored++
	return nil
}

func (k *fakeKeys) PollKey(time.Duration) (rune, bool, error) {
	k.mu.Lock()
	if len(k.script) > 0 {
		r := k.script[0]
		k.script = k.script[1:]
		k.mu.Unlock()
		return r, true, nil
	}
	k.mu.Unlock()
	time.Sleep(time.Millisecond)
	return 0, false, nil
}

func (k *fakeKeys) restoreCount() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.restored
}

type fakeShutdown struct {
	calls atomic.Int32
	err   error
}

func (f *fakeShutdown) Shutdown(context.Context) error {
	f.calls.Add(1)
	return f.err
}

// stepClock jumps forward by d on every After(d). A held clock never fires,
// leaving the countdown on its first frame.
type stepClock struct {
	mu   sync.Mutex
	now  time.Time
	hold bool
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hold {
		return nil
	}
	c.now = c.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

// syncBuffer guards writes from the ticking goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fixture struct {
	runner *Runner
	out    *syncBuffer
	keys   *fakeKeys
	sd     *fakeShutdown
	clock  *stepClock
	path   string
}

func newFixture(t *testing.T, input io.Reader, keys ...rune) *fixture {
	t.Helper()
	f := &fixture{
		out:   &syncBuffer{},
		keys:  &fakeKeys{script: keys},
		sd:    &fakeShutdown{},
		clock: &stepClock{now: time.Date(2026, 3, 1, 22, 0, 0, 0, time.UTC)},
		path:  filepath.Join(t.TempDir(), "powertimer_config.json"),
	}
	f.runner = New(Options{
		ConfigPath: f.path,
		In:         input,
		Out:        f.out,
		Keys:       f.keys,
		Shutdowner: f.sd,
		Clock:      f.clock,
		Geometry:   func() (int, int) { return 100, 40 },
	})
	return f
}

func TestInvalidOptionShowsErrorAndContinues(t *testing.T) {
	f := newFixture(t, strings.NewReader("9\n5\n"))

	if err := f.runner.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := f.out.String()
	if !strings.Contains(out, "Error: Invalid option") {
		t.Fatalf("missing invalid option notice:\n%s", out)
	}
	if !strings.Contains(out, "See you soon!") {
		t.Fatalf("missing goodbye after exit option:\n%s", out)
	}
	if f.keys.restoreCount() == 0 {
		t.Fatal("terminal mode not restored on exit")
	}
}

func TestCustomDurationValidation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"zero", "4\n0\n5\n", "minutes must be greater than 0"},
		{"negative", "4\n-3\n5\n", "minutes must be greater than 0"},
		{"not a number", "4\nabc\n5\n", `"abc" is not a whole number of minutes`},
		{"overflows duration", "4\n307445735\n5\n", "minutes must be at most"},
		{"max int", "4\n9223372036854775807\n5\n", "minutes must be at most"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, strings.NewReader(tt.input))
			if err := f.runner.Run(context.Background()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out := f.out.String(); !strings.Contains(out, tt.want) {
				t.Fatalf("expected %q in output:\n%s", tt.want, out)
			}
			if f.sd.calls.Load() != 0 {
				t.Fatal("shutdown invoked for invalid input")
			}
			if want := []int{30, 60, 120}; !slices.Equal(f.runner.Config().LastUsedTimes, want) {
				t.Fatalf("recent = %v, want %v unchanged", f.runner.Config().LastUsedTimes, want)
			}
		})
	}
}

func TestCancelledCountdownReturnsToMenu(t *testing.T) {
	f := newFixture(t, strings.NewReader("3\n5\n"), 'c')
	f.clock.hold = true

	if err := f.runner.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := f.out.String()
	if !strings.Contains(out, "Shutdown cancelled") {
		t.Fatalf("missing cancellation notice:\n%s", out)
	}
	if !strings.Contains(out, "Repeat last (120 min)") {
		t.Fatalf("menu not redrawn with the new recent duration:\n%s", out)
	}
	if f.sd.calls.Load() != 0 {
		t.Fatal("shutdown invoked after cancellation")
	}

	saved, err := config.Load(f.path)
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if want := []int{120, 30, 60}; !slices.Equal(saved.LastUsedTimes, want) {
		t.Fatalf("saved recent = %v, want %v", saved.LastUsedTimes, want)
	}
}

func TestRepeatLastUsesMostRecent(t *testing.T) {
	f := newFixture(t, strings.NewReader("R\n5\n"), 'c')
	f.clock.hold = true

	if err := f.runner.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := f.runner.Config().MostRecent(); got != 30 {
		t.Fatalf("most recent = %d, want 30", got)
	}
	if !strings.Contains(f.out.String(), "Shutdown cancelled") {
		t.Fatal("repeat did not start a countdown")
	}
}

func TestCustomCountdownExpiresAndShutsDown(t *testing.T) {
	f := newFixture(t, strings.NewReader("4\n1\n"))

	if err := f.runner.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.sd.calls.Load(); got != 1 {
		t.Fatalf("shutdown calls = %d, want 1", got)
	}
	out := f.out.String()
	if !strings.Contains(out, "00:01") {
		t.Fatalf("final frame not drawn:\n%s", out)
	}
	if !strings.Contains(out, "Shutting down now") {
		t.Fatalf("missing shutdown notice:\n%s", out)
	}
}

func TestShutdownFailureKeepsMenuRunning(t *testing.T) {
	f := newFixture(t, strings.NewReader("4\n1\n5\n"))
	f.sd.err = errors.New("permission denied")

	if err := f.runner.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := f.out.String()
	if !strings.Contains(out, "Shutdown failed: permission denied") {
		t.Fatalf("missing failure notice:\n%s", out)
	}
	if !strings.Contains(out, "See you soon!") {
		t.Fatal("menu did not continue after a failed shutdown")
	}
}

func TestCtrlCDuringCountdownInterrupts(t *testing.T) {
	f := newFixture(t, strings.NewReader("1\n"), keyboard.Interrupt)
	f.clock.hold = true

	err := f.runner.Run(context.Background())
	if !apperr.Is(err, apperr.Interrupt) {
		t.Fatalf("expected interrupt, got %v", err)
	}
	if code := f.runner.Report(err); code != ExitInterrupted {
		t.Fatalf("exit code = %d, want %d", code, ExitInterrupted)
	}
	if !strings.Contains(f.out.String(), "Program terminated by user") {
		t.Fatal("missing termination message")
	}
	if f.sd.calls.Load() != 0 {
		t.Fatal("shutdown invoked after interrupt")
	}
}

func TestEndOfInputExits(t *testing.T) {
	for _, input := range []string{"", "4\n", "9\n"} {
		f := newFixture(t, strings.NewReader(input))

		if err := f.runner.Run(context.Background()); err != nil {
			t.Fatalf("input %q: unexpected error: %v", input, err)
		}
	}
}

func TestContextCancelWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })
	f := newFixture(t, pr)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- f.runner.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		if !apperr.Is(err, apperr.Interrupt) {
			t.Fatalf("expected interrupt, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestRunOnceDryRun(t *testing.T) {
	out := &syncBuffer{}
	r := New(Options{
		ConfigPath: filepath.Join(t.TempDir(), "powertimer_config.yaml"),
		DryRun:     true,
		In:         strings.NewReader(""),
		Out:        out,
		Keys:       &fakeKeys{},
		Clock:      &stepClock{now: time.Date(2026, 3, 1, 22, 0, 0, 0, time.UTC)},
		Geometry:   func() (int, int) { return 100, 40 },
	})

	if err := r.RunOnce(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "[dry-run] would run: shutdown") {
		t.Fatalf("dry run did not report the command:\n%s", out.String())
	}
}

func TestRunOnceRejectsNonPositive(t *testing.T) {
	f := newFixture(t, strings.NewReader(""))

	err := f.runner.RunOnce(context.Background(), 0)
	if !apperr.Is(err, apperr.Validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if code := f.runner.Report(err); code != ExitUsage {
		t.Fatalf("exit code = %d, want %d", code, ExitUsage)
	}
}

func TestRunOnceRejectsDurationOverflow(t *testing.T) {
	f := newFixture(t, strings.NewReader(""))

	err := f.runner.RunOnce(context.Background(), int(MaxMinutes)+1)
	if !apperr.Is(err, apperr.Validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if f.sd.calls.Load() != 0 {
		t.Fatal("shutdown invoked for an overflowing duration")
	}
	if got, _ := f.runner.Config().MostRecent(); got != 30 {
		t.Fatalf("overflowing duration was recorded as recent: %d", got)
	}
}

func TestPrintRecent(t *testing.T) {
	f := newFixture(t, strings.NewReader(""))
	f.runner.PrintRecent()

	out := f.out.String()
	for _, want := range []string{"30 minutes", "60 minutes", "120 minutes", f.path} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestReportCodes(t *testing.T) {
	f := newFixture(t, strings.NewReader(""))

	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{apperr.Validationf("bad"), ExitUsage},
		{apperr.New(apperr.Interrupt, "x", context.Canceled), ExitInterrupted},
		{errors.New("boom"), ExitError},
	}
	for _, tt := range tests {
		if got := f.runner.Report(tt.err); got != tt.want {
			t.Errorf("Report(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
	if !strings.Contains(f.out.String(), "Unexpected error: boom") {
		t.Fatal("unexpected error not shown")
	}
}

func TestUnknownConfigColorIsLogged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "powertimer_config.json")
	cfg := config.Default()
	cfg.WarningColor = "sparkle"
	if err := config.Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	logger := logging.New()
	logger.SetOutput(&logs)

	New(Options{
		ConfigPath: path,
		In:         strings.NewReader(""),
		Out:        &syncBuffer{},
		Keys:       &fakeKeys{},
		Logger:     logger,
	})

	out := logs.String()
	if !strings.Contains(out, "unknown color") || !strings.Contains(out, "role=warning_color") {
		t.Fatalf("expected a warning for warning_color, got:\n%s", out)
	}
	if strings.Contains(out, "role=accent_color") {
		t.Fatalf("known colors should not be reported:\n%s", out)
	}
}
