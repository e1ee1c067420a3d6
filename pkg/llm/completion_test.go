package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeProvider scripts Complete responses for testing the client.
type fakeProvider struct {
	name  string
	text  string
	err   error
	delay time.Duration
	calls int
}

func (f *fakeProvider) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

func (f *fakeProvider) Name() string {
	if f.name == "" {
		return "fake"
	}
	return f.name
}

func TestClientCompleteTrimsResponse(t *testing.T) {
	client := NewClient(&fakeProvider{text: "  FINAL_ANSWER: [5]\n"}, time.Second)

	got, err := client.Complete(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != "FINAL_ANSWER: [5]" {
		t.Errorf("expected trimmed response, got %q", got)
	}
}

func TestClientCompleteTimesOut(t *testing.T) {
	client := NewClient(&fakeProvider{text: "late", delay: time.Second}, 20*time.Millisecond)

	_, err := client.Complete(context.Background(), "prompt")
	if !errors.Is(err, ErrCompletionTimeout) {
		t.Fatalf("expected ErrCompletionTimeout, got %v", err)
	}
}

func TestClientCompleteWrapsProviderError(t *testing.T) {
	cause := errors.New("backend exploded")
	client := NewClient(&fakeProvider{name: "backend", err: cause}, time.Second)

	_, err := client.Complete(context.Background(), "prompt")
	var cerr *CompletionError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CompletionError, got %v", err)
	}
	if cerr.Provider != "backend" {
		t.Errorf("expected provider name in error, got %q", cerr.Provider)
	}
	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to be reachable with errors.Is")
	}
}

func TestClientCompleteMapsDeadlineToTimeout(t *testing.T) {
	// A provider that surfaces the context deadline itself still reports
	// as a completion timeout.
	client := NewClient(&fakeProvider{err: context.DeadlineExceeded}, time.Second)

	_, err := client.Complete(context.Background(), "prompt")
	if !errors.Is(err, ErrCompletionTimeout) {
		t.Fatalf("expected ErrCompletionTimeout, got %v", err)
	}
}

func TestNewClientDefaultTimeout(t *testing.T) {
	client := NewClient(&fakeProvider{text: "ok"}, 0)
	if client.timeout != DefaultTimeout {
		t.Errorf("expected default timeout %v, got %v", DefaultTimeout, client.timeout)
	}
}
