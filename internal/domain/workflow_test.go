package domain

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/sabaat/LLM-FL-Artifacts/internal/adapter"
	"github.com/sabaat/LLM-FL-Artifacts/internal/controller"
	m "github.com/sabaat/LLM-FL-Artifacts/internal/model"
)

// stubOracle serves a fixed supply regardless of the sample.
type stubOracle struct {
	comments  []string
	variables []string
	deadCode  []string
}

func (o *stubOracle) MisleadingComments(_ context.Context, _ string, max int) ([]string, error) {
	return clampStrings(o.comments, max), nil
}

func (o *stubOracle) MisleadingVariables(_ context.Context, max int) ([]string, error) {
	return clampStrings(o.variables, max), nil
}

func (o *stubOracle) DeadCodeBlocks(_ context.Context, _ string, max int) ([]string, error) {
	return clampStrings(o.deadCode, max), nil
}

func clampStrings(items []string, max int) []string {
	if len(items) > max {
		return items[:max]
	}

	return items
}

func fullStubOracle() *stubOracle {
	return &stubOracle{
		comments:  []string{"// check bounds first", "// fallthrough on error", "// result is cached"},
		variables: []string{"total", "flag", "buf"},
		deadCode:  []string{"unused := 0\n_ = unused", "for range 0 {\n}"},
	}
}

func writeDataset(t *testing.T, store adapter.SampleStore, dir string, files map[string]m.Sample) {
	t.Helper()

	require.NoError(t, store.EnsureDir(m.Path(dir)))

	for name, sample := range files {
		require.NoError(t, store.WriteSample(m.Path(filepath.Join(dir, name)), sample))
	}
}

func uiForTest() (controller.UI, *bytes.Buffer) {
	cmd := &cobra.Command{}
	out := &bytes.Buffer{}
	cmd.SetOut(out)

	return controller.NewSimpleUI(cmd), out
}

func TestWorkflowMutateWritesAllVariantFolders(t *testing.T) {
	store := adapter.NewLocalSampleStore()
	dataset := filepath.Join(t.TempDir(), "dataset")
	output := filepath.Join(t.TempDir(), "out")

	first := testSample()
	second := m.Sample{
		Instruction: "Find the defect.",
		BuggyCode:   "func g(values []int) int {\n\tsum := 0\n\tfor _, v := range values {\n\t\tsum += v\n\t}\n\treturn sum\n}",
		LineNo:      4,
	}
	second.RecomputePercent()

	writeDataset(t, store, dataset, map[string]m.Sample{
		"1.json": first,
		"2.json": second,
	})

	ui, out := uiForTest()
	wf := NewWorkflow(store, fullStubOracle(), NewOrchestrator(), ui)

	err := wf.Mutate(context.Background(), MutateArgs{
		Dataset:    m.Path(dataset),
		Output:     m.Path(output),
		MaxInserts: 2,
		Threads:    2,
		Seed:       "seedlab-vt",
	})
	require.NoError(t, err)

	for _, variant := range m.Variants {
		files, err := store.ListSamples(m.Path(filepath.Join(output, variant.Folder())))
		require.NoError(t, err)
		require.Equal(t, []string{"1.json", "2.json"}, files, "variant %s", variant)
	}

	mutated, err := store.ReadSample(m.Path(filepath.Join(output, "commented", "1.json")))
	require.NoError(t, err)
	require.Equal(t, first.Instruction, mutated.Instruction)
	require.NotEqual(t, first.BuggyCode, mutated.BuggyCode)
	require.Equal(t, m.FormatPercent(mutated.LineNo, mutated.LineCount()), mutated.LineNoPercent)

	require.Contains(t, out.String(), "2 sample(s)")
}

func TestWorkflowMutateIsReproducible(t *testing.T) {
	store := adapter.NewLocalSampleStore()
	dataset := filepath.Join(t.TempDir(), "dataset")

	writeDataset(t, store, dataset, map[string]m.Sample{"1.json": testSample()})

	run := func(output string) map[string]string {
		ui, _ := uiForTest()
		wf := NewWorkflow(store, fullStubOracle(), NewOrchestrator(), ui)

		err := wf.Mutate(context.Background(), reproArgs(output, dataset))
		require.NoError(t, err)

		contents := make(map[string]string)

		for _, variant := range m.Variants {
			raw, err := os.ReadFile(filepath.Join(output, variant.Folder(), "1.json"))
			require.NoError(t, err)

			contents[variant.Folder()] = string(raw)
		}

		return contents
	}

	first := run(filepath.Join(t.TempDir(), "a"))
	second := run(filepath.Join(t.TempDir(), "b"))

	require.Equal(t, first, second)
}

func reproArgs(output, dataset string) MutateArgs {
	return MutateArgs{
		Dataset:    m.Path(dataset),
		Output:     m.Path(output),
		MaxInserts: 2,
		Threads:    1,
		Seed:       "seedlab-vt",
	}
}

func TestWorkflowMutateSkipsBranchesOnShortSupply(t *testing.T) {
	store := adapter.NewLocalSampleStore()
	dataset := filepath.Join(t.TempDir(), "dataset")
	output := filepath.Join(t.TempDir(), "out")

	writeDataset(t, store, dataset, map[string]m.Sample{"1.json": testSample()})

	oracle := fullStubOracle()
	oracle.comments = nil

	ui, out := uiForTest()
	wf := NewWorkflow(store, oracle, NewOrchestrator(), ui)

	err := wf.Mutate(context.Background(), MutateArgs{
		Dataset:    m.Path(dataset),
		Output:     m.Path(output),
		MaxInserts: 2,
		Threads:    1,
		Seed:       "seedlab-vt",
	})
	require.NoError(t, err)

	// The comment branch and both cumulative branches are skipped.
	for _, variant := range []m.Variant{m.VariantCommented, m.VariantVariableCumulative, m.VariantDeadCodeCumulative} {
		_, statErr := os.Stat(filepath.Join(output, variant.Folder(), "1.json"))
		require.True(t, os.IsNotExist(statErr), "variant %s should not be written", variant)
	}

	for _, variant := range []m.Variant{m.VariantVariable, m.VariantDeadCode} {
		_, statErr := os.Stat(filepath.Join(output, variant.Folder(), "1.json"))
		require.NoError(t, statErr, "variant %s should be written", variant)
	}

	require.True(t, strings.Contains(out.String(), "3 skipped"), "output:\n%s", out.String())
}

func TestWorkflowMutateEmptyDataset(t *testing.T) {
	store := adapter.NewLocalSampleStore()
	dataset := filepath.Join(t.TempDir(), "dataset")
	require.NoError(t, store.EnsureDir(m.Path(dataset)))

	ui, _ := uiForTest()
	wf := NewWorkflow(store, fullStubOracle(), NewOrchestrator(), ui)

	err := wf.Mutate(context.Background(), MutateArgs{
		Dataset:    m.Path(dataset),
		Output:     m.Path(t.TempDir()),
		MaxInserts: 2,
		Threads:    1,
		Seed:       "seedlab-vt",
	})
	require.NoError(t, err)
}
