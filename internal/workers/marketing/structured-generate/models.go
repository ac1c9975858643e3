package structuredgenerate

import (
	"context"

	"github.com/janhavi-28/SEO-Agent/internal/common/llm"
)

// Input is a caller-defined generation. Omitted fields fall back to the
// marketing workflow defaults.
type Input struct {
	Instruction         string        `json:"instruction"`
	BehaviorInstruction string        `json:"behavior_instruction,omitempty"`
	Template            *llm.Template `json:"template,omitempty"`
	Temperature         *float32      `json:"temperature,omitempty"`
	MaxOutputTokens     *int32        `json:"max_output_tokens,omitempty"`
}

type Output struct {
	Result *llm.Result `json:"result"`
}

type Generator interface {
	GenerateStructured(ctx context.Context, req llm.Request) (*llm.Result, error)
}
