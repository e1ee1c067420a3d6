package agent

import (
	"context"
	"fmt"
	"strings"

	"queryloop/pkg/action"
	"queryloop/pkg/capability"
	"queryloop/pkg/llm"
	"queryloop/pkg/logging"
)

// DefaultMaxIterations bounds a run when no explicit budget is set.
const DefaultMaxIterations = 5

// Session is the capability server a run talks to. A session is
// established fresh for each run and torn down afterwards, so the
// catalog it holds is current for the whole run.
type Session interface {
	Catalog() *capability.Catalog
	Invoke(ctx context.Context, name string, args map[string]any) ([]string, error)
}

// Loop drives one query through the bounded iteration loop: ask the
// completion client for the next action, execute it, fold the result
// into the run history, repeat until a final answer, an error, or the
// iteration budget.
type Loop struct {
	// Completion produces the next-action text for each iteration.
	Completion *llm.Client

	// Session is the capability server for this run.
	Session Session

	// MaxIterations bounds the number of completion calls per run.
	// Zero or negative means DefaultMaxIterations.
	MaxIterations int
}

// NewLoop creates a loop with the default iteration budget.
func NewLoop(completion *llm.Client, session Session) *Loop {
	return &Loop{
		Completion: completion,
		Session:    session,
	}
}

// Run executes one query to termination. Only a completed run returns
// a ResultRecord; failure and exhaustion return a nil record with the
// error that ended the run. Every error is terminal, nothing is
// retried mid-run. Run events go to the logger carried in ctx.
func (l *Loop) Run(ctx context.Context, query string) (*ResultRecord, error) {
	state := NewRunState(query)

	catalog := l.Session.Catalog()
	if catalog == nil {
		state.Status = StatusFailed
		return nil, fmt.Errorf("run %s: session has no capability catalog", state.RunID)
	}
	systemPrompt := SystemPrompt(catalog.Describe())

	maxIterations := l.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	runLog := logging.FromContext(ctx).StartRun(state.RunID,
		"capabilities", catalog.Count(),
		"max_iterations", maxIterations,
		"provider", l.Completion.ProviderName(),
	)
	state.Status = StatusRunning

	for state.Iterations < maxIterations {
		endIter := runLog.Iteration()

		prompt := BuildPrompt(systemPrompt, query, state.Summaries())
		responseText, err := l.Completion.Complete(ctx, prompt)
		if err != nil {
			state.Status = StatusFailed
			endIter(err)
			runLog.EndRun(err)
			return nil, runLog.WrapError("completion", err)
		}
		runLog.Debug("completion response", "text", responseText)

		act := action.Parse(responseText)
		switch act.Kind {
		case action.KindFinal:
			state.Status = StatusCompleted
			clean := action.CleanAnswer(act.Text)
			endIter(nil)
			runLog.Info("final answer", "answer", clean, "capability_calls", state.Iterations)
			runLog.EndRun(nil)
			return NewResultRecord(query, clean), nil

		case action.KindMalformed:
			state.Status = StatusFailed
			malformedErr := &action.MalformedActionError{Raw: act.Raw}
			endIter(malformedErr)
			runLog.EndRun(malformedErr)
			return nil, runLog.WrapError("action", malformedErr)

		case action.KindCall:
			err := l.executeCall(ctx, runLog, state, act)
			endIter(err)
			if err != nil {
				state.Status = StatusFailed
				runLog.EndRun(err)
				return nil, runLog.WrapError("capability", err)
			}
			state.IncrementIteration()
		}
	}

	state.Status = StatusExhausted
	runLog.EndRun(ErrExhausted)
	return nil, ErrExhausted
}

// executeCall resolves, coerces, and invokes one capability call,
// folding the outcome into the run history either way.
func (l *Loop) executeCall(ctx context.Context, runLog *logging.Logger, state *RunState, act action.Action) error {
	catalog := l.Session.Catalog()

	desc, ok := catalog.Get(act.Name)
	if !ok {
		err := &capability.UnknownCapabilityError{Name: act.Name}
		runLog.Error("capability lookup failed",
			"error", err.Error(),
			"available", strings.Join(catalog.Names(), ","),
		)
		state.AddErrorRecord(err)
		return err
	}

	args, err := capability.Coerce(desc, act.Args)
	if err != nil {
		runLog.Error("argument coercion failed", "error", err.Error())
		state.AddErrorRecord(err)
		return err
	}

	runLog.Info("invoking capability", "name", act.Name, "args", fmt.Sprintf("%v", args))
	result, err := l.Session.Invoke(ctx, act.Name, args)
	if err != nil {
		invErr := &InvocationError{Capability: act.Name, Err: err}
		runLog.Error("capability invocation failed", "error", invErr.Error())
		state.AddErrorRecord(invErr)
		return invErr
	}

	runLog.Info("capability returned", "name", act.Name, "result", renderResult(result))
	state.AddCallRecord(act.Name, args, result)
	return nil
}
