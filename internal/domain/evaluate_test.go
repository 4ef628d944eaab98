package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sabaat/LLM-FL-Artifacts/internal/adapter"
	m "github.com/sabaat/LLM-FL-Artifacts/internal/model"
)

// stubLocalizer answers from a fixed table keyed by instruction.
type stubLocalizer struct {
	predictions map[string]int
	failFor     string
}

func (l *stubLocalizer) LocateBugLine(_ context.Context, instruction, _ string) (int, error) {
	if instruction == l.failFor {
		return 0, errors.New("no usable prediction")
	}

	return l.predictions[instruction], nil
}

func evalSample(instruction, code string, line int) m.Sample {
	s := m.Sample{Instruction: instruction, BuggyCode: code, LineNo: line}
	s.RecomputePercent()

	return s
}

func TestEvaluatorWritesArtifacts(t *testing.T) {
	store := adapter.NewLocalSampleStore()
	folder := filepath.Join(t.TempDir(), "mutated_go_commented_3")
	matched := filepath.Join(t.TempDir(), "matched")

	code := "a := 1\nb := 2\nc := 3\nd := 4\ne := 5\nf := 6\ng := 7\nh := 8\n"

	writeDataset(t, store, folder, map[string]m.Sample{
		"1.json": evalSample("one", code, 1),   // predicted 3, within tolerance
		"2.json": evalSample("two", code, 7),   // predicted 1, miss
		"3.json": evalSample("three", code, 5), // localizer error
	})

	localizer := &stubLocalizer{
		predictions: map[string]int{"one": 3, "two": 1},
		failFor:     "three",
	}

	ui, out := uiForTest()
	ev := NewEvaluator(store, localizer, adapter.NewResultsCSV(), ui)

	csvPath := filepath.Join(t.TempDir(), "results.csv")

	summary, err := ev.Evaluate(context.Background(), EvaluateArgs{
		Folder:  m.Path(folder),
		Matched: m.Path(matched),
		CSVPath: m.Path(csvPath),
		Model:   "qwen2.5-coder",
	})
	require.NoError(t, err)

	require.Equal(t, 3, summary.Total)
	require.Equal(t, 1, summary.Matches)
	require.Equal(t, 2, summary.Mismatches)
	require.Equal(t, []string{"1.json"}, summary.MatchFiles)
	require.Equal(t, []string{"2.json", "3.json"}, summary.MismatchFiles)

	// line 1 of 8 is in the 0-25 window, line 7 in 75-100, line 5 in 50-75
	require.Equal(t, 1, summary.Windowed.Matches[m.Window0to25])
	require.Equal(t, 1, summary.Windowed.Mismatches[m.Window75to100])
	require.Equal(t, 1, summary.Windowed.Mismatches[m.Window50to75])

	success, err := store.ReadLines(m.Path(filepath.Join(folder, "success.txt")))
	require.NoError(t, err)
	require.Equal(t, []string{"1.json"}, success)

	fail, err := store.ReadLines(m.Path(filepath.Join(folder, "fail.txt")))
	require.NoError(t, err)
	require.Equal(t, []string{"2.json", "3.json"}, fail)

	var windowed m.WindowedResults
	require.NoError(t, store.ReadJSON(m.Path(filepath.Join(folder, "windowed_results.json")), &windowed))
	require.Equal(t, summary.Windowed, windowed)

	// Matched samples are copied out for later selection.
	_, statErr := os.Stat(filepath.Join(matched, "1.json"))
	require.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(matched, "2.json"))
	require.True(t, os.IsNotExist(statErr))

	raw, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	require.Contains(t, string(raw), "mutated_go_commented_3")

	require.Contains(t, out.String(), "Accuracy: 33.33%")
}

func TestEvaluatorToleranceBoundary(t *testing.T) {
	store := adapter.NewLocalSampleStore()
	folder := filepath.Join(t.TempDir(), "samples")

	code := "a := 1\nb := 2\nc := 3\nd := 4\ne := 5\n"

	writeDataset(t, store, folder, map[string]m.Sample{
		"1.json": evalSample("exact", code, 3),  // predicted 5, distance 2
		"2.json": evalSample("beyond", code, 1), // predicted 4, distance 3
	})

	localizer := &stubLocalizer{predictions: map[string]int{"exact": 5, "beyond": 4}}

	ui, _ := uiForTest()
	ev := NewEvaluator(store, localizer, adapter.NewResultsCSV(), ui)

	summary, err := ev.Evaluate(context.Background(), EvaluateArgs{Folder: m.Path(folder)})
	require.NoError(t, err)

	require.Equal(t, 1, summary.Matches)
	require.Equal(t, 1, summary.Mismatches)
	require.Equal(t, []string{"1.json"}, summary.MatchFiles)
}

func TestEvaluatorCustomTolerance(t *testing.T) {
	store := adapter.NewLocalSampleStore()
	folder := filepath.Join(t.TempDir(), "samples")

	code := "a := 1\nb := 2\nc := 3\nd := 4\ne := 5\n"

	writeDataset(t, store, folder, map[string]m.Sample{
		"1.json": evalSample("wide", code, 1), // predicted 5, distance 4
	})

	localizer := &stubLocalizer{predictions: map[string]int{"wide": 5}}

	ui, _ := uiForTest()
	ev := NewEvaluator(store, localizer, adapter.NewResultsCSV(), ui)

	summary, err := ev.Evaluate(context.Background(), EvaluateArgs{
		Folder:    m.Path(folder),
		Tolerance: 4,
	})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Matches)
}

func TestSelectFirstN(t *testing.T) {
	store := adapter.NewLocalSampleStore()
	src := filepath.Join(t.TempDir(), "matched")
	dst := filepath.Join(t.TempDir(), "selected")

	writeDataset(t, store, src, map[string]m.Sample{
		"3.json":  testSample(),
		"1.json":  testSample(),
		"10.json": testSample(),
	})

	sel := NewSelector(store)

	n, err := sel.SelectFirstN(context.Background(), m.Path(src), m.Path(dst), 2)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	files, err := store.ListSamples(m.Path(dst))
	require.NoError(t, err)
	// lexicographic filename order, so "10.json" sorts before "3.json"
	require.Equal(t, []string{"1.json", "10.json"}, files)
}

func TestSelectFirstNShortSource(t *testing.T) {
	store := adapter.NewLocalSampleStore()
	src := filepath.Join(t.TempDir(), "matched")
	dst := filepath.Join(t.TempDir(), "selected")

	writeDataset(t, store, src, map[string]m.Sample{"1.json": testSample()})

	sel := NewSelector(store)

	n, err := sel.SelectFirstN(context.Background(), m.Path(src), m.Path(dst), 5)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	_, err = sel.SelectFirstN(context.Background(), m.Path(src), m.Path(dst), 0)
	require.Error(t, err)
}

func TestReporterAggregatesFolders(t *testing.T) {
	store := adapter.NewLocalSampleStore()

	makeFolder := func(name string, matches, mismatches []string, windowed m.WindowedResults) m.Path {
		dir := filepath.Join(t.TempDir(), name)
		require.NoError(t, store.EnsureDir(m.Path(dir)))
		require.NoError(t, store.WriteLines(m.Path(filepath.Join(dir, "success.txt")), matches))
		require.NoError(t, store.WriteLines(m.Path(filepath.Join(dir, "fail.txt")), mismatches))
		require.NoError(t, store.WriteJSON(m.Path(filepath.Join(dir, "windowed_results.json")), windowed))

		return m.Path(dir)
	}

	wa := m.NewWindowedResults()
	wa.Matches[m.Window0to25] = 2
	wa.Mismatches[m.Window50to75] = 1

	wb := m.NewWindowedResults()
	wb.Matches[m.Window0to25] = 1
	wb.Matches[m.Window75to100] = 3

	folderA := makeFolder("commented", []string{"1.json", "2.json"}, []string{"3.json"}, wa)
	folderB := makeFolder("variable", []string{"1.json", "2.json", "4.json", "5.json"}, nil, wb)

	ui, out := uiForTest()
	rep := NewReporter(store, ui)

	stats, total, err := rep.Report(context.Background(), []m.Path{folderA, folderB})
	require.NoError(t, err)
	require.Len(t, stats, 2)

	require.Equal(t, 2, stats[0].Matches)
	require.Equal(t, 1, stats[0].Mismatches)
	require.Equal(t, 4, stats[1].Matches)

	require.Equal(t, 3, total.Matches[m.Window0to25])
	require.Equal(t, 3, total.Matches[m.Window75to100])
	require.Equal(t, 1, total.Mismatches[m.Window50to75])

	require.True(t, strings.Contains(out.String(), "Window 0-25%: Matches = 3"), "output:\n%s", out.String())
}

func TestReporterMissingArtifacts(t *testing.T) {
	store := adapter.NewLocalSampleStore()
	dir := filepath.Join(t.TempDir(), "never_evaluated")
	require.NoError(t, store.EnsureDir(m.Path(dir)))

	ui, _ := uiForTest()
	rep := NewReporter(store, ui)

	_, _, err := rep.Report(context.Background(), []m.Path{m.Path(dir)})
	require.Error(t, err)
}
