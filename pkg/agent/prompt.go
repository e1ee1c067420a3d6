package agent

import (
	"fmt"
	"strings"
)

// systemPromptTemplate is the fixed instruction block placed in front
// of every completion request. The capability catalog is injected
// where the %s sits. The policy rules are advisory data for the
// model; the loop enforces only the structural rules (one action per
// turn, bounded iterations, schema-checked arguments).
const systemPromptTemplate = `You are a helpful assistant that can perform tasks by calling the available capabilities.

Available tools:
%s

You must respond with EXACTLY ONE line in one of these formats (no additional text):
1. For function calls:
   FUNCTION_CALL: function_name|param1|param2|...

2. For final answers:
   FINAL_ANSWER: [your final answer here]

Important Rules:
1. ONLY perform the exact operations requested by the user.
2. Pass parameters in the order the function declares them, separated by | characters.
3. When a function returns multiple values, you need to process all of them.
4. Only give FINAL_ANSWER when you have completed all necessary operations.
5. Do not repeat function calls with the same parameters.
6. For any capability that sends or publishes a result, first compute the result with the appropriate function(s), then call the sending capability ONCE with the computed result. Never send before the result is available.

Examples:
User: What is 2 + 3?
FINAL_ANSWER: [Query: What is 2 + 3? Result: 5]

User: Add 2 and 3 and email me the result
FUNCTION_CALL: number_list_to_sum|[2,3]
FUNCTION_CALL: send_gmail|Query: Add 2 and 3 and email me the result\n\nResult: 2 + 3 = 5
FINAL_ANSWER: [Query: Add 2 and 3 and email me the result. Result: 5. The result has been sent via email.]`

// SystemPrompt renders the instruction template with the catalog block.
func SystemPrompt(catalogBlock string) string {
	return fmt.Sprintf(systemPromptTemplate, catalogBlock)
}

// BuildPrompt composes the completion request for one iteration. The
// first iteration carries the bare query; later iterations append the
// accumulated history summaries and ask for the next step.
func BuildPrompt(systemPrompt, query string, summaries []string) string {
	current := query
	if len(summaries) > 0 {
		current = query + "\n\n" + strings.Join(summaries, " ") + " What should I do next?"
	}
	return systemPrompt + "\n\nQuery: " + current
}
