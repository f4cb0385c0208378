// Package logger provides logging implementations.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
	"github.com/user/droneframes/pkg/ports"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
)

var levelColors = map[ports.LogLevel]string{
	ports.LevelDebug: colorGray,
	ports.LevelWarn:  colorYellow,
	ports.LevelError: colorRed,
}

// sink is the destination shared by a logger and every logger derived from it.
// Warnings and errors go to errOut, everything else to out.
type sink struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	color  bool
}

func (s *sink) writeLine(level ports.LogLevel, line string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.out
	if level >= ports.LevelWarn {
		w = s.errOut
	}
	fmt.Fprintln(w, line)
}

// ConsoleLogger writes translated messages to the console.
// Loggers derived with WithComponent share one sink, so lines written by
// concurrent batch workers never interleave.
type ConsoleLogger struct {
	level     ports.LogLevel
	component string
	sink      *sink
}

// NewConsole creates a logger writing to stdout and stderr.
// Color output is enabled when stdout is a terminal.
func NewConsole(level ports.LogLevel) *ConsoleLogger {
	fd := os.Stdout.Fd()
	return &ConsoleLogger{
		level: level,
		sink: &sink{
			out:    os.Stdout,
			errOut: os.Stderr,
			color:  isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		},
	}
}

// NewWriter creates an uncolored logger writing every level to w.
func NewWriter(level ports.LogLevel, w io.Writer) *ConsoleLogger {
	return &ConsoleLogger{
		level: level,
		sink:  &sink{out: w, errOut: w},
	}
}

// Debug logs a debug message.
func (l *ConsoleLogger) Debug(msg string, args ...interface{}) {
	l.log(ports.LevelDebug, msg, args...)
}

// Info logs an informational message.
func (l *ConsoleLogger) Info(msg string, args ...interface{}) {
	l.log(ports.LevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *ConsoleLogger) Warn(msg string, args ...interface{}) {
	l.log(ports.LevelWarn, msg, args...)
}

// Error logs an error message.
func (l *ConsoleLogger) Error(msg string, args ...interface{}) {
	l.log(ports.LevelError, msg, args...)
}

// WithComponent returns a logger that prefixes lines with [component].
func (l *ConsoleLogger) WithComponent(component string) ports.Logger {
	return &ConsoleLogger{
		level:     l.level,
		component: component,
		sink:      l.sink,
	}
}

func (l *ConsoleLogger) log(level ports.LogLevel, msg string, args ...interface{}) {
	if level < l.level {
		return
	}

	var b strings.Builder
	color := l.sink.color
	if l.component != "" {
		if color {
			fmt.Fprintf(&b, "%s[%s]%s ", colorCyan, l.component, colorReset)
		} else {
			fmt.Fprintf(&b, "[%s] ", l.component)
		}
	}
	b.WriteString(l10n.F(msg, args...))

	line := b.String()
	if c, ok := levelColors[level]; ok && color {
		line = c + line + colorReset
	}
	l.sink.writeLine(level, line)
}

var _ ports.Logger = (*ConsoleLogger)(nil)
