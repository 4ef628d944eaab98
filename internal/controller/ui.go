// Package controller provides output adapters for displaying mutation and
// evaluation progress and results.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "github.com/sabaat/LLM-FL-Artifacts/internal/model"
)

// UI defines the interface for reporting pipeline progress and results.
// Implementations can use different output methods (simple text, TUI).
type UI interface {
	// Start announces a run over total samples.
	Start(ctx context.Context, title string, total int) error

	// SampleDone reports one finished sample and how many variants it
	// produced or skipped.
	SampleDone(ctx context.Context, file string, produced, skipped int)

	// Close finalizes the UI.
	Close(ctx context.Context)

	// DisplayMutationSummary renders per-variant output counts.
	DisplayMutationSummary(ctx context.Context, counts map[m.Variant]int, failures int) error

	// DisplayEvalSummary renders the outcome of one evaluation run.
	DisplayEvalSummary(ctx context.Context, summary m.EvalSummary) error

	// DisplayWindowedReport renders aggregated quartile results across
	// variant folders.
	DisplayWindowedReport(ctx context.Context, stats []m.FolderStat, total m.WindowedResults) error
}

// NewUI selects the TUI when the output is an interactive terminal and the
// simple writer otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to an interactive terminal.
func IsTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
