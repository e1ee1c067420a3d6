package llm

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
)

// Client wraps a Provider with a per-call deadline. The provider call is
// issued on its own goroutine so a stuck backend never stalls the
// caller's control flow past the timeout; the select below is the only
// suspension point.
type Client struct {
	provider Provider
	timeout  time.Duration
}

// NewClient creates a completion client. A non-positive timeout falls
// back to DefaultTimeout.
func NewClient(provider Provider, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{provider: provider, timeout: timeout}
}

// ProviderName returns the name of the wrapped provider.
func (c *Client) ProviderName() string {
	return c.provider.Name()
}

type completionResult struct {
	text string
	err  error
}

// Complete requests a completion for the prompt and returns the trimmed
// response text. It fails with ErrCompletionTimeout when the deadline
// passes, and with CompletionError on any other provider failure.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	log.Printf("[completion] requesting completion: provider=%s prompt_len=%d timeout=%v",
		c.provider.Name(), len(prompt), c.timeout)

	ch := make(chan completionResult, 1)
	go func() {
		text, err := c.provider.Complete(ctx, prompt)
		ch <- completionResult{text: text, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			if errors.Is(res.err, context.DeadlineExceeded) {
				log.Printf("[completion] ERROR: provider %s timed out", c.provider.Name())
				return "", ErrCompletionTimeout
			}
			log.Printf("[completion] ERROR: provider %s failed: %v", c.provider.Name(), res.err)
			return "", &CompletionError{Provider: c.provider.Name(), Err: res.err}
		}
		text := strings.TrimSpace(res.text)
		log.Printf("[completion] completed: response_len=%d", len(text))
		return text, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			log.Printf("[completion] ERROR: timed out after %v", c.timeout)
			return "", ErrCompletionTimeout
		}
		return "", &CompletionError{Provider: c.provider.Name(), Err: ctx.Err()}
	}
}
