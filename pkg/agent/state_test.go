package agent

import (
	"errors"
	"strings"
	"testing"
)

func TestRunStateFresh(t *testing.T) {
	state := NewRunState("What is 2 + 3?")

	if state.RunID == "" {
		t.Error("run id not assigned")
	}
	if state.Status != StatusIdle {
		t.Errorf("status = %v, want idle", state.Status)
	}
	if state.Iterations != 0 || state.HasHistory() {
		t.Error("fresh state must have no history")
	}

	other := NewRunState("another query")
	if other.RunID == state.RunID {
		t.Error("run ids must be unique per run")
	}
}

func TestCallRecordSummary(t *testing.T) {
	state := NewRunState("q")
	state.AddCallRecord("add", map[string]any{"a": 2, "b": 3}, []string{"5"})

	if len(state.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(state.Records))
	}
	summary := state.Records[0].Summary
	if !strings.HasPrefix(summary, "In the 1 iteration you called add with ") {
		t.Errorf("summary = %q", summary)
	}
	if !strings.HasSuffix(summary, "and the function returned 5.") {
		t.Errorf("summary = %q", summary)
	}
	if got := state.LastResult; len(got) != 1 || got[0] != "5" {
		t.Errorf("last result = %v", got)
	}
}

func TestCallRecordMultiValueSummary(t *testing.T) {
	state := NewRunState("q")
	state.AddCallRecord("fibonacci", map[string]any{"n": 3}, []string{"0", "1", "1"})

	if !strings.Contains(state.Records[0].Summary, "returned [0, 1, 1].") {
		t.Errorf("summary = %q", state.Records[0].Summary)
	}
}

func TestErrorRecordSummary(t *testing.T) {
	state := NewRunState("q")
	state.IncrementIteration()
	state.AddErrorRecord(errors.New("unknown capability: subtract"))

	summary := state.Records[0].Summary
	if summary != "Error in iteration 2: unknown capability: subtract" {
		t.Errorf("summary = %q", summary)
	}
}

func TestSummariesKeepOrder(t *testing.T) {
	state := NewRunState("q")
	state.AddCallRecord("add", map[string]any{"a": 1, "b": 1}, []string{"2"})
	state.IncrementIteration()
	state.AddCallRecord("add", map[string]any{"a": 2, "b": 2}, []string{"4"})

	summaries := state.Summaries()
	if len(summaries) != 2 {
		t.Fatalf("summaries = %d, want 2", len(summaries))
	}
	if !strings.HasPrefix(summaries[0], "In the 1 iteration") {
		t.Errorf("first summary = %q", summaries[0])
	}
	if !strings.HasPrefix(summaries[1], "In the 2 iteration") {
		t.Errorf("second summary = %q", summaries[1])
	}
}

func TestRunStatusString(t *testing.T) {
	cases := map[RunStatus]string{
		StatusIdle:      "idle",
		StatusRunning:   "running",
		StatusCompleted: "completed",
		StatusFailed:    "failed",
		StatusExhausted: "exhausted",
	}
	for status, want := range cases {
		if got := status.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", status, got, want)
		}
	}
}
