//go:build unix

package keyboard

import (
	"os"
	"testing"
	"time"
)

func pipePoller(t *testing.T) (*unixPoller, *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})
	return newUnixPoller(r), w
}

func TestPollKeyLowercases(t *testing.T) {
	p, w := pipePoller(t)
	if _, err := w.Write([]byte("C")); err != nil {
		t.Fatal(err)
	}

	key, ok, err := p.PollKey(100 * time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || key != 'c' {
		t.Fatalf("expected 'c', got %q ok=%v", key, ok)
	}
}

func TestPollKeyReturnsEveryBufferedKey(t *testing.T) {
	p, w := pipePoller(t)
	if _, err := w.Write([]byte("xñC")); err != nil {
		t.Fatal(err)
	}
	// Let all bytes land so a single read picks them up together.
	time.Sleep(10 * time.Millisecond)

	for _, want := range []rune{'x', 'ñ', 'c'} {
		key, ok, err := p.PollKey(50 * time.Millisecond)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok || key != want {
			t.Fatalf("expected %q, got %q ok=%v", want, key, ok)
		}
	}
	if _, ok, _ := p.PollKey(20 * time.Millisecond); ok {
		t.Fatal("expected no key after the buffered ones")
	}
}

func TestPollKeyTimeout(t *testing.T) {
	p, _ := pipePoller(t)

	start := time.Now()
	_, ok, err := p.PollKey(50 * time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected no key")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("PollKey blocked for %v", elapsed)
	}
}

func TestPollKeyEOFWaitsOutTimeout(t *testing.T) {
	p, w := pipePoller(t)
	w.Close()

	start := time.Now()
	_, ok, err := p.PollKey(30 * time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected no key at EOF")
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("expected EOF poll to wait, returned after %v", elapsed)
	}
}

func TestPollKeyCtrlC(t *testing.T) {
	p, w := pipePoller(t)
	w.Write([]byte{0x03})

	key, ok, _ := p.PollKey(100 * time.Millisecond)
	if !ok || key != Interrupt {
		t.Fatalf("expected interrupt byte, got %q ok=%v", key, ok)
	}
}

func TestRawModeOnNonTerminalIsNoop(t *testing.T) {
	p, _ := pipePoller(t)

	for i := 0; i < 2; i++ {
		if err := p.EnableRawMode(); err != nil {
			t.Fatalf("enable #%d: %v", i, err)
		}
	}
	for i := 0; i < 2; i++ {
		if err := p.RestoreMode(); err != nil {
			t.Fatalf("restore #%d: %v", i, err)
		}
	}
}
