package agent

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// RunStatus tracks where a run is in its lifecycle.
type RunStatus int

const (
	// StatusIdle is the state before the catalog and prompt are ready.
	StatusIdle RunStatus = iota
	// StatusRunning is the state while iterations are in progress.
	StatusRunning
	// StatusCompleted means the run produced a final answer.
	StatusCompleted
	// StatusFailed means an error ended the run.
	StatusFailed
	// StatusExhausted means the iteration budget ran out with no answer.
	StatusExhausted
)

func (s RunStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	case StatusExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// IterationRecord captures one loop iteration: the capability called,
// its arguments, and either the result payload or the error text. The
// Summary is the sentence folded back into later prompts.
type IterationRecord struct {
	Index      int
	Capability string
	Arguments  map[string]any
	Result     []string
	ErrText    string
	Summary    string
}

// RunState is the per-run mutable state. It is created fresh at run
// start, written only by the loop, and discarded when the run ends.
type RunState struct {
	RunID      string
	Query      string
	Status     RunStatus
	Iterations int
	Records    []IterationRecord
	LastResult []string
}

// NewRunState creates the state for a single run.
func NewRunState(query string) *RunState {
	return &RunState{
		RunID:  uuid.NewString(),
		Query:  query,
		Status: StatusIdle,
	}
}

// AddCallRecord appends a successful capability invocation to history.
func (s *RunState) AddCallRecord(name string, args map[string]any, result []string) {
	rec := IterationRecord{
		Index:      s.Iterations + 1,
		Capability: name,
		Arguments:  args,
		Result:     result,
		Summary: fmt.Sprintf(
			"In the %d iteration you called %s with %v parameters, and the function returned %s.",
			s.Iterations+1, name, args, renderResult(result)),
	}
	s.Records = append(s.Records, rec)
	s.LastResult = result
}

// AddErrorRecord appends a failed iteration to history.
func (s *RunState) AddErrorRecord(err error) {
	rec := IterationRecord{
		Index:   s.Iterations + 1,
		ErrText: err.Error(),
		Summary: fmt.Sprintf("Error in iteration %d: %v", s.Iterations+1, err),
	}
	s.Records = append(s.Records, rec)
}

// IncrementIteration advances the iteration counter.
func (s *RunState) IncrementIteration() {
	s.Iterations++
}

// HasHistory reports whether any capability has been invoked yet.
func (s *RunState) HasHistory() bool {
	return len(s.Records) > 0
}

// Summaries returns the history summaries in append order.
func (s *RunState) Summaries() []string {
	summaries := make([]string, 0, len(s.Records))
	for _, rec := range s.Records {
		summaries = append(summaries, rec.Summary)
	}
	return summaries
}

// renderResult flattens a capability result payload for a summary
// line. Multi-part payloads keep list shape so the model can see the
// individual values.
func renderResult(parts []string) string {
	if len(parts) == 1 {
		return parts[0]
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
