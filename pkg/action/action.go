// Package action decodes one agent instruction from free-form completion
// text. Each completion yields exactly one action: a capability call, a
// final answer, or a malformed response.
package action

import (
	"fmt"
	"strings"
)

const (
	callPrefix   = "FUNCTION_CALL:"
	answerPrefix = "FINAL_ANSWER:"
)

// Kind classifies a parsed action.
type Kind int

const (
	// KindCall is a request to invoke a named capability.
	KindCall Kind = iota
	// KindFinal is a terminal answer.
	KindFinal
	// KindMalformed is a response matching neither permitted shape.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindCall:
		return "call"
	case KindFinal:
		return "final"
	default:
		return "malformed"
	}
}

// Action is the single instruction decoded from one completion response.
type Action struct {
	Kind Kind

	// Name and Args are set for KindCall. Args keeps the raw positional
	// tokens in order, empty tokens included.
	Name string
	Args []string

	// Text is the raw answer for KindFinal.
	Text string

	// Raw is the text the classification was made from.
	Raw string
}

// MalformedActionError reports a completion that matched neither
// permitted response shape.
type MalformedActionError struct {
	Raw string
}

func (e *MalformedActionError) Error() string {
	return fmt.Sprintf("response matched neither FUNCTION_CALL nor FINAL_ANSWER: %q", truncate(e.Raw, 120))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// Parse extracts one action from raw completion text. The first line
// whose trimmed text starts with FUNCTION_CALL: is the action for this
// turn and overrides everything else in the response, including any
// FINAL_ANSWER: line elsewhere. Without such a line the full trimmed
// response is classified as-is.
func Parse(raw string) Action {
	text := strings.TrimSpace(raw)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, callPrefix) {
			text = line
			break
		}
	}

	switch {
	case strings.HasPrefix(text, callPrefix):
		return parseCall(text)
	case strings.HasPrefix(text, answerPrefix):
		_, rest, _ := strings.Cut(text, ":")
		return Action{Kind: KindFinal, Text: strings.TrimSpace(rest), Raw: text}
	default:
		return Action{Kind: KindMalformed, Raw: text}
	}
}

func parseCall(line string) Action {
	_, rest, _ := strings.Cut(line, ":")
	parts := strings.Split(rest, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return Action{
		Kind: KindCall,
		Name: parts[0],
		Args: parts[1:],
		Raw:  line,
	}
}
