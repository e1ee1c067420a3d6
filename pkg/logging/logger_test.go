package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestRunLifecycleLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)

	run := logger.StartRun("run-1", "query", "what is 2+3")
	done := run.Iteration("action", "call")
	done(nil)
	run.EndRun(nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 log lines, got %d:\n%s", len(lines), buf.String())
	}

	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("first line is not JSON: %v", err)
	}
	if first["run_id"] != "run-1" {
		t.Errorf("run_id = %v, want run-1", first["run_id"])
	}
	if first["msg"] != "run started" {
		t.Errorf("msg = %v, want run started", first["msg"])
	}

	var last map[string]any
	if err := json.Unmarshal([]byte(lines[3]), &last); err != nil {
		t.Fatalf("last line is not JSON: %v", err)
	}
	if last["msg"] != "run completed" {
		t.Errorf("msg = %v, want run completed", last["msg"])
	}
	if last["iterations"] != float64(1) {
		t.Errorf("iterations = %v, want 1", last["iterations"])
	}
}

func TestIterationFailureLogged(t *testing.T) {
	var buf bytes.Buffer
	run := New(&buf, true).StartRun("run-2")

	done := run.Iteration()
	done(errors.New("capability exploded"))

	if !strings.Contains(buf.String(), "iteration failed") {
		t.Error("missing iteration failed line")
	}
	if !strings.Contains(buf.String(), "capability exploded") {
		t.Error("missing error detail")
	}
}

func TestWrapError(t *testing.T) {
	var buf bytes.Buffer
	run := New(&buf, false).StartRun("run-3")
	run.Iteration()(nil)

	cause := errors.New("boom")
	err := run.WrapError("invoke", cause)

	var runErr *RunError
	if !errors.As(err, &runErr) {
		t.Fatalf("expected *RunError, got %T", err)
	}
	if runErr.Iteration != 1 {
		t.Errorf("iteration = %d, want 1", runErr.Iteration)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error does not unwrap to cause")
	}
	if !strings.Contains(err.Error(), "run-3") {
		t.Errorf("error %q missing run id", err)
	}

	if run.WrapError("invoke", nil) != nil {
		t.Error("WrapError(nil) should be nil")
	}
}

func TestFromContextFallback(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	ctx := logger.WithContext(context.Background())
	if FromContext(ctx) != logger {
		t.Error("context roundtrip lost logger")
	}
	if FromContext(context.Background()) == nil {
		t.Error("expected default logger for bare context")
	}
}
