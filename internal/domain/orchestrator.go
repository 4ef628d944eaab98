package domain

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/sabaat/LLM-FL-Artifacts/internal/engine"
	m "github.com/sabaat/LLM-FL-Artifacts/internal/model"
)

// Orchestrator coordinates the five mutation branches for one sample. Each
// branch yields a mutated sample with its defect pointer moved to the line
// the original defect now sits on. A failed branch reports a skip reason and
// never aborts its siblings, but the cumulative branches are skipped when
// the commented branch they build on failed.
type Orchestrator interface {
	MutateSample(ctx context.Context, sample m.Sample, supply m.Supply, rng *rand.Rand) []m.VariantResult
}

type orchestrator struct{}

// NewOrchestrator constructs an Orchestrator.
func NewOrchestrator() Orchestrator {
	return &orchestrator{}
}

func (o *orchestrator) MutateSample(ctx context.Context, sample m.Sample, supply m.Supply, rng *rand.Rand) []m.VariantResult {
	results := make([]m.VariantResult, 0, len(m.Variants))

	if err := ctx.Err(); err != nil {
		for _, variant := range m.Variants {
			results = append(results, m.VariantResult{Variant: variant, Err: err})
		}

		return results
	}

	count := supply.MaxInserts

	commented, commentErr := engine.InsertComments(rng, sample.BuggyCode, sample.LineNo, count, supply.Comments)
	if commentErr != nil {
		results = append(results, m.VariantResult{
			Variant: m.VariantCommented,
			Err:     fmt.Errorf("commented: %w", commentErr),
		})
	} else {
		results = append(results, variantResult(m.VariantCommented, sample, commented))
	}

	renamed := engine.RenameIdentifiers(sample.BuggyCode, sample.LineNo, count, supply.Variables)
	results = append(results, variantResult(m.VariantVariable, sample, renamed))

	dead := engine.InsertDeadCode(rng, sample.BuggyCode, sample.LineNo, count, supply.DeadCode)
	results = append(results, variantResult(m.VariantDeadCode, sample, dead))

	if commentErr != nil {
		results = append(results,
			m.VariantResult{
				Variant: m.VariantVariableCumulative,
				Err:     fmt.Errorf("requires commented output: %w", commentErr),
			},
			m.VariantResult{
				Variant: m.VariantDeadCodeCumulative,
				Err:     fmt.Errorf("requires commented output: %w", commentErr),
			},
		)

		return results
	}

	renamedCumulative := engine.RenameIdentifiers(commented.Code, commented.Line, count, supply.Variables)
	results = append(results, variantResult(m.VariantVariableCumulative, sample, renamedCumulative))

	deadCumulative := engine.InsertDeadCode(rng, renamedCumulative.Code, renamedCumulative.Line, count, supply.DeadCode)
	results = append(results, variantResult(m.VariantDeadCodeCumulative, sample, deadCumulative))

	return results
}

// variantResult copies the source sample, swaps in the mutated code and
// pointer, and refreshes the percentage field.
func variantResult(variant m.Variant, sample m.Sample, res engine.Result) m.VariantResult {
	mutated := sample
	mutated.BuggyCode = res.Code
	mutated.LineNo = res.Line
	mutated.RecomputePercent()

	return m.VariantResult{Variant: variant, Sample: mutated}
}
