package controller

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/sabaat/LLM-FL-Artifacts/internal/model"
)

// SimpleUI implements UI using the cobra command's writer. Progress methods
// may be called from concurrent workers, so writes are serialized.
type SimpleUI struct {
	cmd *cobra.Command
	mu  sync.Mutex
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start announces the run.
func (s *SimpleUI) Start(ctx context.Context, title string, total int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s: %d sample(s)\n", title, total)

	return nil
}

// SampleDone prints one per-sample progress line.
func (s *SimpleUI) SampleDone(ctx context.Context, file string, produced, skipped int) {
	if err := ctx.Err(); err != nil {
		return
	}

	if skipped > 0 {
		s.printf("%s -> %d variant(s), %d skipped\n", file, produced, skipped)
		return
	}

	s.printf("%s -> %d variant(s)\n", file, produced)
}

// Close finalizes the UI (no-op for SimpleUI).
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayMutationSummary renders the per-variant output counts as a table.
func (s *SimpleUI) DisplayMutationSummary(ctx context.Context, counts map[m.Variant]int, failures int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Variant", "Samples"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	total := 0

	for _, variant := range m.Variants {
		table.Append([]string{string(variant), fmt.Sprintf("%d", counts[variant])})
		total += counts[variant]
	}

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", total)})
	table.Render()

	s.printf("\n%s", buf.String())

	if failures > 0 {
		s.printf("Skipped branches: %d (see log)\n", failures)
	}

	return nil
}

// DisplayEvalSummary renders the evaluation outcome and windowed counts.
func (s *SimpleUI) DisplayEvalSummary(ctx context.Context, summary m.EvalSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\nTested folder: %s\n", summary.Folder)
	s.printf("Total files processed: %d\n", summary.Total)
	s.printf("Success count (match): %d\n", summary.Matches)
	s.printf("Failure count (mismatch or error): %d\n", summary.Mismatches)
	s.printf("Accuracy: %.2f%%\n\n", summary.Accuracy())

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Window", "Matches", "Mismatches"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, window := range m.Windows {
		table.Append([]string{
			string(window) + "%",
			fmt.Sprintf("%d", summary.Windowed.Matches[window]),
			fmt.Sprintf("%d", summary.Windowed.Mismatches[window]),
		})
	}

	table.Render()

	s.printf("%s", buf.String())

	return nil
}

// DisplayWindowedReport renders aggregated quartile counts per folder plus
// the cumulative totals.
func (s *SimpleUI) DisplayWindowedReport(ctx context.Context, stats []m.FolderStat, total m.WindowedResults) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sorted := make([]m.FolderStat, len(stats))
	copy(sorted, stats)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Folder < sorted[j].Folder
	})

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Folder", "Matches", "Mismatches"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER})

	for _, stat := range sorted {
		table.Append([]string{string(stat.Folder), fmt.Sprintf("%d", stat.Matches), fmt.Sprintf("%d", stat.Mismatches)})
	}

	table.Render()

	s.printf("\n%s\nWindowed totals:\n", buf.String())

	for _, window := range m.Windows {
		s.printf("  Window %s%%: Matches = %d, Mismatches = %d\n",
			window, total.Matches[window], total.Mismatches[window])
	}

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
