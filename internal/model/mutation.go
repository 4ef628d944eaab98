package model

// Supply holds the externally sourced mutation text for one sample: candidate
// comments, replacement identifier names and dead-code blocks, plus the
// requested insert count. The engine treats every item as opaque text.
type Supply struct {
	MaxInserts int      `yaml:"max_inserts"`
	Comments   []string `yaml:"comments"`
	Variables  []string `yaml:"variables"`
	DeadCode   []string `yaml:"dead_code"`
}

// Variant identifies one of the five mutation outputs produced per sample.
type Variant string

const (
	// VariantCommented is the comment-only mutation of the pristine sample.
	VariantCommented Variant = "commented"
	// VariantVariable is the rename-only mutation of the pristine sample.
	VariantVariable Variant = "variable"
	// VariantDeadCode is the dead-code-only mutation of the pristine sample.
	VariantDeadCode Variant = "dead_code"
	// VariantVariableCumulative renames on top of the commented output.
	VariantVariableCumulative Variant = "variable_cumulative"
	// VariantDeadCodeCumulative inserts dead code on top of the cumulative
	// rename output.
	VariantDeadCodeCumulative Variant = "dead_code_cumulative"
)

// Variants lists all five variants in production order. The cumulative
// entries depend on the output of the variant before them.
var Variants = []Variant{
	VariantCommented,
	VariantVariable,
	VariantDeadCode,
	VariantVariableCumulative,
	VariantDeadCodeCumulative,
}

// Folder returns the output subfolder a variant is persisted into.
func (v Variant) Folder() string {
	return string(v)
}

// VariantResult is the outcome of one mutation branch: either a mutated
// sample or a skip reason. Branch failures never abort sibling branches.
type VariantResult struct {
	Variant Variant
	Sample  Sample
	Err     error
}

// Skipped reports whether the branch produced no output.
func (r VariantResult) Skipped() bool {
	return r.Err != nil
}
