package adapter

import (
	"context"
	"encoding/json"
	"fmt"
)

// FaultLocalizer is the downstream consumer whose robustness the mutations
// probe: given an instruction and buggy code, it predicts the defect line.
type FaultLocalizer interface {
	LocateBugLine(ctx context.Context, instruction, code string) (int, error)
}

var bugLineSchema = json.RawMessage(`{"type":"object","properties":{"line_no":{"type":"integer"}},"required":["line_no"]}`)

// OllamaLocalizer probes an Ollama model for the defect line.
type OllamaLocalizer struct {
	client *ollamaClient
}

// NewOllamaLocalizer constructs an OllamaLocalizer for the given endpoint
// and model.
func NewOllamaLocalizer(baseURL, model string) *OllamaLocalizer {
	return &OllamaLocalizer{client: newOllamaClient(baseURL, model)}
}

// LocateBugLine asks the model for the exact line number of the bug.
func (l *OllamaLocalizer) LocateBugLine(ctx context.Context, instruction, code string) (int, error) {
	prompt := fmt.Sprintf(`I want this code to %q but I am experiencing unexpected output.
Buggy Code:
%s
Can you give me the exact line number where the bug is?`, instruction, code)

	var reply struct {
		LineNo int `json:"line_no"`
	}

	if err := l.client.chat(ctx, prompt, bugLineSchema, &reply); err != nil {
		return 0, fmt.Errorf("locate bug line: %w", err)
	}

	return reply.LineNo, nil
}
