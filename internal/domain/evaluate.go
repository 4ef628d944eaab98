package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/sabaat/LLM-FL-Artifacts/internal/adapter"
	"github.com/sabaat/LLM-FL-Artifacts/internal/controller"
	m "github.com/sabaat/LLM-FL-Artifacts/internal/model"
	"github.com/sabaat/LLM-FL-Artifacts/pkg"
)

// DefaultTolerance is the line distance a prediction may miss by and still
// count as a match.
const DefaultTolerance = 2

// EvaluateArgs configures one fault-localization evaluation run.
type EvaluateArgs struct {
	// Folder holds the mutated samples to probe.
	Folder m.Path
	// Matched, when set, receives a copy of every matched sample file.
	Matched m.Path
	// CSVPath, when set, gets one appended summary row.
	CSVPath m.Path
	// Model names the consumer under test, recorded in the artifacts.
	Model string
	// Tolerance is the allowed |predicted - labeled| distance.
	Tolerance int
}

// Evaluator probes a fault localizer against every sample in a folder and
// writes the per-window artifacts next to the samples.
type Evaluator interface {
	Evaluate(ctx context.Context, args EvaluateArgs) (m.EvalSummary, error)
}

type evaluator struct {
	store     adapter.SampleStore
	localizer adapter.FaultLocalizer
	csv       *adapter.ResultsCSV
	ui        controller.UI
}

// NewEvaluator constructs an Evaluator.
func NewEvaluator(store adapter.SampleStore, localizer adapter.FaultLocalizer, csv *adapter.ResultsCSV, ui controller.UI) Evaluator {
	return &evaluator{
		store:     store,
		localizer: localizer,
		csv:       csv,
		ui:        ui,
	}
}

func (e *evaluator) Evaluate(ctx context.Context, args EvaluateArgs) (m.EvalSummary, error) {
	if args.Tolerance <= 0 {
		args.Tolerance = DefaultTolerance
	}

	files, err := e.store.ListSamples(args.Folder)
	if err != nil {
		return m.EvalSummary{}, fmt.Errorf("list samples: %w", err)
	}

	if args.Matched != "" {
		if err := e.store.EnsureDir(args.Matched); err != nil {
			return m.EvalSummary{}, fmt.Errorf("prepare matched folder: %w", err)
		}
	}

	if err := e.ui.Start(ctx, "Evaluating "+string(args.Folder), len(files)); err != nil {
		return m.EvalSummary{}, err
	}

	spill, err := pkg.NewFileSpill[m.EvalReport]()
	if err != nil {
		return m.EvalSummary{}, fmt.Errorf("create spill: %w", err)
	}
	defer func() {
		if err := spill.Close(); err != nil {
			slog.Error("failed to close spill", "error", err)
		}
	}()

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			e.ui.Close(ctx)
			return m.EvalSummary{}, err
		}

		report, err := e.probeOne(ctx, args, file)
		if err != nil {
			e.ui.Close(ctx)
			return m.EvalSummary{}, err
		}

		if err := spill.Append(report); err != nil {
			e.ui.Close(ctx)
			return m.EvalSummary{}, err
		}

		e.ui.SampleDone(ctx, file, 1, 0)
	}

	e.ui.Close(ctx)

	summary, err := e.collect(args, spill)
	if err != nil {
		return m.EvalSummary{}, err
	}

	if err := e.writeArtifacts(args, summary); err != nil {
		return m.EvalSummary{}, err
	}

	if err := e.ui.DisplayEvalSummary(ctx, summary); err != nil {
		return m.EvalSummary{}, err
	}

	return summary, nil
}

func (e *evaluator) probeOne(ctx context.Context, args EvaluateArgs, file string) (m.EvalReport, error) {
	path := m.Path(filepath.Join(string(args.Folder), file))

	sample, err := e.store.ReadSample(path)
	if err != nil {
		return m.EvalReport{}, fmt.Errorf("read %s: %w", file, err)
	}

	percent, err := m.ParsePercent(sample.LineNoPercent)
	if err != nil {
		// Recorded percent is advisory; fall back to the labeled line.
		slog.Warn("unreadable percent, recomputing", "file", file, "value", sample.LineNoPercent)

		percent = float64(sample.LineNo) / float64(max(sample.LineCount(), 1)) * 100
	}

	report := m.EvalReport{
		File:         file,
		OriginalLine: sample.LineNo,
		Window:       m.WindowFor(percent),
	}

	predicted, err := e.localizer.LocateBugLine(ctx, sample.Instruction, sample.BuggyCode)
	if err != nil {
		slog.Warn("localization failed", "file", file, "error", err)

		report.Verdict = m.VerdictError

		return report, nil
	}

	report.PredictedLine = predicted

	distance := predicted - sample.LineNo
	if distance < 0 {
		distance = -distance
	}

	if distance <= args.Tolerance {
		report.Verdict = m.VerdictMatch

		if args.Matched != "" {
			dst := m.Path(filepath.Join(string(args.Matched), file))
			if err := e.store.CopyFile(path, dst); err != nil {
				return m.EvalReport{}, fmt.Errorf("copy matched %s: %w", file, err)
			}
		}
	} else {
		report.Verdict = m.VerdictMismatch
	}

	return report, nil
}

func (e *evaluator) collect(args EvaluateArgs, spill pkg.FileSpill[m.EvalReport]) (m.EvalSummary, error) {
	summary := m.EvalSummary{
		Folder:   args.Folder,
		Model:    args.Model,
		Windowed: m.NewWindowedResults(),
	}

	err := spill.Range(func(_ uint64, report m.EvalReport) error {
		summary.Total++

		if report.Verdict == m.VerdictMatch {
			summary.Matches++
			summary.MatchFiles = append(summary.MatchFiles, report.File)
			summary.Windowed.Matches[report.Window]++

			return nil
		}

		summary.Mismatches++
		summary.MismatchFiles = append(summary.MismatchFiles, report.File)
		summary.Windowed.Mismatches[report.Window]++

		return nil
	})
	if err != nil {
		return m.EvalSummary{}, fmt.Errorf("collect reports: %w", err)
	}

	return summary, nil
}

func (e *evaluator) writeArtifacts(args EvaluateArgs, summary m.EvalSummary) error {
	folder := string(args.Folder)

	if err := e.store.WriteLines(m.Path(filepath.Join(folder, "success.txt")), summary.MatchFiles); err != nil {
		return fmt.Errorf("write success.txt: %w", err)
	}

	if err := e.store.WriteLines(m.Path(filepath.Join(folder, "fail.txt")), summary.MismatchFiles); err != nil {
		return fmt.Errorf("write fail.txt: %w", err)
	}

	if err := e.store.WriteJSON(m.Path(filepath.Join(folder, "windowed_results.json")), summary.Windowed); err != nil {
		return fmt.Errorf("write windowed_results.json: %w", err)
	}

	if args.CSVPath != "" {
		meta := adapter.ParseRunMeta(args.Folder)
		if err := e.csv.Append(args.CSVPath, summary, meta); err != nil {
			return fmt.Errorf("append results csv: %w", err)
		}
	}

	return nil
}
