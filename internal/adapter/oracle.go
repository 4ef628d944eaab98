package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	m "github.com/sabaat/LLM-FL-Artifacts/internal/model"
)

// SupplyOracle provides the mutation text consumed by the engine: misleading
// comments, replacement identifier names and dead-code blocks. An oracle may
// return fewer items than requested; handling a short supply is the
// mutators' concern, not the oracle's.
type SupplyOracle interface {
	MisleadingComments(ctx context.Context, code string, max int) ([]string, error)
	MisleadingVariables(ctx context.Context, max int) ([]string, error)
	DeadCodeBlocks(ctx context.Context, code string, max int) ([]string, error)
}

// Structured-output schemas for the oracle prompts.
var (
	commentsSchema  = json.RawMessage(`{"type":"object","properties":{"misleading_comments":{"type":"array","items":{"type":"string"}}},"required":["misleading_comments"]}`)
	variablesSchema = json.RawMessage(`{"type":"object","properties":{"misleading_variables":{"type":"array","items":{"type":"string"}}},"required":["misleading_variables"]}`)
	deadCodeSchema  = json.RawMessage(`{"type":"object","properties":{"dead_code_blocks":{"type":"array","items":{"type":"string"}}},"required":["dead_code_blocks"]}`)
)

// OllamaOracle fetches mutation supply from a local Ollama model.
type OllamaOracle struct {
	client *ollamaClient
}

// NewOllamaOracle constructs an OllamaOracle for the given endpoint and model.
func NewOllamaOracle(baseURL, model string) *OllamaOracle {
	return &OllamaOracle{client: newOllamaClient(baseURL, model)}
}

// MisleadingComments asks the model for up to max single-line comments
// inspired by the sample code.
func (o *OllamaOracle) MisleadingComments(ctx context.Context, code string, max int) ([]string, error) {
	prompt := fmt.Sprintf(`Below is some code:
%s

Using the above code as inspiration, generate %d misleading single-line comments (like "// ...").
Return them in a JSON structure with a key "misleading_comments" containing a list of strings.
No extra text, no explanations, just valid JSON.`, code, max)

	var reply struct {
		MisleadingComments []string `json:"misleading_comments"`
	}

	if err := o.client.chat(ctx, prompt, commentsSchema, &reply); err != nil {
		return nil, fmt.Errorf("fetch misleading comments: %w", err)
	}

	return clamp(reply.MisleadingComments, max), nil
}

// MisleadingVariables asks the model for up to max meaningless or
// misleading identifier names.
func (o *OllamaOracle) MisleadingVariables(ctx context.Context, max int) ([]string, error) {
	prompt := fmt.Sprintf(`Generate %d meaningless or misleading variable names.
Return them in a JSON structure with a key "misleading_variables" containing a list of strings.
No extra text, no explanations.`, max)

	var reply struct {
		MisleadingVariables []string `json:"misleading_variables"`
	}

	if err := o.client.chat(ctx, prompt, variablesSchema, &reply); err != nil {
		return nil, fmt.Errorf("fetch misleading variables: %w", err)
	}

	return clamp(reply.MisleadingVariables, max), nil
}

// DeadCodeBlocks asks the model for up to max short dead-code blocks
// inspired by the sample code.
func (o *OllamaOracle) DeadCodeBlocks(ctx context.Context, code string, max int) ([]string, error) {
	prompt := fmt.Sprintf(`Below is some code:
%s

Using the above code as inspiration, generate %d dead code blocks (2-3 lines).
Return them in a JSON structure with a key "dead_code_blocks" containing a list of strings.
No extra text, no explanations, just valid JSON.`, code, max)

	var reply struct {
		DeadCodeBlocks []string `json:"dead_code_blocks"`
	}

	if err := o.client.chat(ctx, prompt, deadCodeSchema, &reply); err != nil {
		return nil, fmt.Errorf("fetch dead code blocks: %w", err)
	}

	return clamp(reply.DeadCodeBlocks, max), nil
}

func clamp(items []string, max int) []string {
	if max >= 0 && len(items) > max {
		return items[:max]
	}

	return items
}

// FileSupply serves mutation supply from a YAML file instead of a live
// model, for offline and reproducible runs.
type FileSupply struct {
	supply m.Supply
}

// NewFileSupply loads a supply file.
func NewFileSupply(path m.Path) (*FileSupply, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("read supply file %s: %w", path, err)
	}

	var supply m.Supply
	if err := yaml.Unmarshal(data, &supply); err != nil {
		return nil, fmt.Errorf("decode supply file %s: %w", path, err)
	}

	return &FileSupply{supply: supply}, nil
}

// MisleadingComments returns the file's comments, clamped to max.
func (f *FileSupply) MisleadingComments(_ context.Context, _ string, max int) ([]string, error) {
	return clamp(f.supply.Comments, max), nil
}

// MisleadingVariables returns the file's variable names, clamped to max.
func (f *FileSupply) MisleadingVariables(_ context.Context, max int) ([]string, error) {
	return clamp(f.supply.Variables, max), nil
}

// DeadCodeBlocks returns the file's dead-code blocks, clamped to max.
func (f *FileSupply) DeadCodeBlocks(_ context.Context, _ string, max int) ([]string, error) {
	return clamp(f.supply.DeadCode, max), nil
}
