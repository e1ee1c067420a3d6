// Package logging provides structured logging with per-run iteration tracking.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"
)

// contextKey is used for storing logger in context.
type contextKey struct{}

// Logger wraps slog.Logger with agent-run bookkeeping.
type Logger struct {
	*slog.Logger
	runID     string
	startTime time.Time
	iteration int
}

// RunError represents an error that occurred during an agent run.
type RunError struct {
	RunID     string
	Phase     string
	Iteration int
	Err       error
	Stack     string
}

func (e *RunError) Error() string {
	if e.Iteration > 0 {
		return fmt.Sprintf("[run %s] iteration %d (%s): %v", e.RunID, e.Iteration, e.Phase, e.Err)
	}
	return fmt.Sprintf("[run %s] %s: %v", e.RunID, e.Phase, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// Format implements fmt.Formatter for detailed error output.
func (e *RunError) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v':
		if f.Flag('+') {
			fmt.Fprintf(f, "%s\n\nStack trace:\n%s", e.Error(), e.Stack)
			return
		}
		fallthrough
	default:
		fmt.Fprint(f, e.Error())
	}
}

// New creates a Logger writing to the given destination.
func New(w io.Writer, jsonFormat bool) *Logger {
	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{Key: "ts", Value: slog.StringValue(a.Value.Time().Format("2006-01-02 15:04:05.000"))}
			}
			return a
		},
	}
	if jsonFormat {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// Default returns a text logger on stdout.
func Default() *Logger {
	return New(os.Stdout, false)
}

// With returns a new Logger with the given attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger:    l.Logger.With(args...),
		runID:     l.runID,
		startTime: l.startTime,
		iteration: l.iteration,
	}
}

// WithContext returns a new context with the logger attached.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext retrieves the logger from context, or returns the default logger.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(contextKey{}).(*Logger); ok {
		return l
	}
	return Default()
}

// StartRun creates a logger scoped to one agent run.
func (l *Logger) StartRun(runID string, attrs ...any) *Logger {
	runLogger := &Logger{
		Logger:    l.Logger.With(append([]any{"run_id", runID}, attrs...)...),
		runID:     runID,
		startTime: time.Now(),
		iteration: 0,
	}
	runLogger.Info("run started")
	return runLogger
}

// Iteration logs the start of a loop iteration and returns a
// function to log its completion.
func (l *Logger) Iteration(attrs ...any) func(error) {
	l.iteration++
	iterStart := time.Now()
	iterLogger := l.With(append([]any{"iteration", l.iteration}, attrs...)...)
	iterLogger.Info("iteration started")

	return func(err error) {
		elapsed := time.Since(iterStart)
		if err != nil {
			iterLogger.Error("iteration failed",
				"error", err.Error(),
				"elapsed_ms", elapsed.Milliseconds(),
			)
		} else {
			iterLogger.Info("iteration completed",
				"elapsed_ms", elapsed.Milliseconds(),
			)
		}
	}
}

// EndRun logs run completion.
func (l *Logger) EndRun(err error) {
	elapsed := time.Since(l.startTime)
	if err != nil {
		l.Error("run failed",
			"error", err.Error(),
			"elapsed_ms", elapsed.Milliseconds(),
			"iterations", l.iteration,
		)
	} else {
		l.Info("run completed",
			"elapsed_ms", elapsed.Milliseconds(),
			"iterations", l.iteration,
		)
	}
}

// WrapError wraps an error with run context and a stack trace.
func (l *Logger) WrapError(phase string, err error) error {
	if err == nil {
		return nil
	}
	return &RunError{
		RunID:     l.runID,
		Phase:     phase,
		Iteration: l.iteration,
		Err:       err,
		Stack:     captureStack(2),
	}
}

// captureStack captures the current stack trace, skipping the specified number of frames.
func captureStack(skip int) string {
	var pcs [32]uintptr
	n := runtime.Callers(skip+1, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var sb strings.Builder
	for {
		frame, more := frames.Next()
		if strings.Contains(frame.File, "runtime/") {
			if !more {
				break
			}
			continue
		}
		fmt.Fprintf(&sb, "  %s\n    %s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return sb.String()
}
