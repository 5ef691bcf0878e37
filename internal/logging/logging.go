// Package logging writes levelled diagnostic lines.
//
// Stdout belongs to the countdown UI, so the default output is io.Discard.
// Point it at a file with SetOutput (the --log-file flag does this).
package logging

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level represents log severity.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

var levelPriority = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// ParseLevel maps a case-insensitive name to a Level, defaulting to INFO.
func ParseLevel(s string) Level {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := levelPriority[l]; ok {
		return l
	}
	return LevelInfo
}

// sink is shared by a logger and every logger derived from it.
type sink struct {
	mu       sync.Mutex
	output   io.Writer
	minLevel Level
}

// Logger writes `LEVEL TIMESTAMP [component] message key=value ...` lines.
type Logger struct {
	sink      *sink
	component string
	session   string
	now       func() time.Time
}

// New creates a Logger that discards everything until SetOutput is called.
func New() *Logger {
	return &Logger{
		sink: &sink{output: io.Discard, minLevel: LevelInfo},
		now:  time.Now,
	}
}

// Discard returns a logger that never writes.
func Discard() *Logger {
	return New()
}

// WithComponent returns a logger tagged with the given component name.
func (l *Logger) WithComponent(component string) *Logger {
	c := *l
	c.component = component
	return &c
}

// WithSession returns a logger tagged with a countdown session ID.
func (l *Logger) WithSession(id string) *Logger {
	c := *l
	c.session = id
	return &c
}

// SetLevel sets the minimum level for this logger and all derived loggers.
func (l *Logger) SetLevel(level Level) {
	l.sink.mu.Lock()
	l.sink.minLevel = level
	l.sink.mu.Unlock()
}

// SetOutput sets the destination for this logger and all derived loggers.
func (l *Logger) SetOutput(w io.Writer) {
	l.sink.mu.Lock()
	l.sink.output = w
	l.sink.mu.Unlock()
}

func (l *Logger) Debug(msg string, fields ...map[string]any) { l.log(LevelDebug, msg, fields...) }
func (l *Logger) Info(msg string, fields ...map[string]any)  { l.log(LevelInfo, msg, fields...) }
func (l *Logger) Warn(msg string, fields ...map[string]any)  { l.log(LevelWarn, msg, fields...) }
func (l *Logger) Error(msg string, fields ...map[string]any) { l.log(LevelError, msg, fields...) }

// formatFields renders fields as sorted key=value pairs.
func formatFields(fields []map[string]any) string {
	var parts []string
	for _, f := range fields {
		for k, v := range f {
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	sort.Strings(parts)
	return " " + strings.Join(parts, " ")
}

func (l *Logger) log(level Level, msg string, fields ...map[string]any) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	if levelPriority[level] < levelPriority[l.sink.minLevel] {
		return
	}

	var b strings.Builder
	b.WriteString(string(level))
	b.WriteByte(' ')
	b.WriteString(l.now().UTC().Format("2006-01-02T15:04:05.000Z"))
	if l.component != "" {
		fmt.Fprintf(&b, " [%s]", l.component)
	}
	b.WriteByte(' ')
	b.WriteString(msg)
	if l.session != "" {
		fmt.Fprintf(&b, " session=%s", l.session)
	}
	b.WriteString(formatFields(fields))
	b.WriteByte('\n')

	io.WriteString(l.sink.output, b.String())
}
