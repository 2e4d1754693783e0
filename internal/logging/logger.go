package logging

import (
	"fmt"
	"io"
	"time"
)

// Logger writes status lines and, when Verbose is set, diagnostic detail
// such as discovery stage timings. A zero Logger discards everything.
type Logger struct {
	Writer  io.Writer
	Verbose bool
	Scope   string
}

func New(writer io.Writer, verbose bool) Logger {
	return Logger{Writer: writer, Verbose: verbose}
}

// With returns a copy of the logger that tags every line with scope.
func (l Logger) With(scope string) Logger {
	if l.Scope != "" {
		scope = l.Scope + "/" + scope
	}
	l.Scope = scope
	return l
}

func (l Logger) Infof(format string, args ...any) {
	if l.Writer == nil {
		return
	}
	if l.Scope != "" {
		format = "[" + l.Scope + "] " + format
	}
	fmt.Fprintf(l.Writer, format+"\n", args...)
}

func (l Logger) Warnf(format string, args ...any) {
	l.Infof("Warning: "+format, args...)
}

func (l Logger) Verbosef(format string, args ...any) {
	if !l.Verbose {
		return
	}
	l.Infof("Verbose: "+format, args...)
}

// Measure returns a stop function that logs the elapsed time when called.
func (l Logger) Measure(label string) func() {
	if !l.Verbose {
		return func() {}
	}
	start := time.Now()
	return func() {
		l.Verbosef("%s took %s", label, time.Since(start).Round(time.Millisecond))
	}
}
