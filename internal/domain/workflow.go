package domain

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"math/rand"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sabaat/LLM-FL-Artifacts/internal/adapter"
	"github.com/sabaat/LLM-FL-Artifacts/internal/controller"
	m "github.com/sabaat/LLM-FL-Artifacts/internal/model"
)

// MutateArgs configures one mutation run over a dataset folder.
type MutateArgs struct {
	Dataset    m.Path
	Output     m.Path
	MaxInserts int
	Threads    int
	Seed       string
}

// Workflow drives the mutation pipeline: list samples, fetch mutation supply
// per sample, run the five branches, and persist every produced variant into
// its own output subfolder.
type Workflow interface {
	Mutate(ctx context.Context, args MutateArgs) error
}

type workflow struct {
	store        adapter.SampleStore
	oracle       adapter.SupplyOracle
	orchestrator Orchestrator
	ui           controller.UI
}

// NewWorkflow constructs a Workflow backed by the provided sample store,
// supply oracle and orchestrator.
func NewWorkflow(store adapter.SampleStore, oracle adapter.SupplyOracle, orchestrator Orchestrator, ui controller.UI) Workflow {
	return &workflow{
		store:        store,
		oracle:       oracle,
		orchestrator: orchestrator,
		ui:           ui,
	}
}

func (w *workflow) Mutate(ctx context.Context, args MutateArgs) error {
	files, err := w.store.ListSamples(args.Dataset)
	if err != nil {
		return fmt.Errorf("list samples: %w", err)
	}

	for _, variant := range m.Variants {
		dir := m.Path(filepath.Join(string(args.Output), variant.Folder()))
		if err := w.store.EnsureDir(dir); err != nil {
			return fmt.Errorf("prepare output: %w", err)
		}
	}

	if err := w.ui.Start(ctx, "Mutating "+string(args.Dataset), len(files)); err != nil {
		return err
	}

	threads := args.Threads
	if threads < 1 {
		threads = 1
	}

	var (
		mu       sync.Mutex
		counts   = make(map[m.Variant]int, len(m.Variants))
		failures int
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for _, file := range files {
		group.Go(func() error {
			produced, skipped, err := w.mutateOne(groupCtx, args, file)
			if err != nil {
				return err
			}

			mu.Lock()
			for variant, n := range produced {
				counts[variant] += n
			}
			failures += skipped
			mu.Unlock()

			total := 0
			for _, n := range produced {
				total += n
			}

			w.ui.SampleDone(groupCtx, file, total, skipped)

			return nil
		})
	}

	err = group.Wait()

	w.ui.Close(ctx)

	if err != nil {
		return err
	}

	return w.ui.DisplayMutationSummary(ctx, counts, failures)
}

func (w *workflow) mutateOne(ctx context.Context, args MutateArgs, file string) (map[m.Variant]int, int, error) {
	sample, err := w.store.ReadSample(m.Path(filepath.Join(string(args.Dataset), file)))
	if err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", file, err)
	}

	supply, err := w.fetchSupply(ctx, sample, args.MaxInserts)
	if err != nil {
		return nil, 0, fmt.Errorf("supply for %s: %w", file, err)
	}

	rng := rand.New(rand.NewSource(sampleSeed(args.Seed, file)))

	produced := make(map[m.Variant]int, len(m.Variants))
	skipped := 0

	for _, result := range w.orchestrator.MutateSample(ctx, sample, supply, rng) {
		if result.Skipped() {
			skipped++

			slog.Warn("variant skipped",
				"file", file,
				"variant", string(result.Variant),
				"reason", result.Err)

			continue
		}

		path := m.Path(filepath.Join(string(args.Output), result.Variant.Folder(), file))
		if err := w.store.WriteSample(path, result.Sample); err != nil {
			return nil, 0, fmt.Errorf("write %s: %w", path, err)
		}

		produced[result.Variant]++
	}

	return produced, skipped, nil
}

func (w *workflow) fetchSupply(ctx context.Context, sample m.Sample, maxInserts int) (m.Supply, error) {
	comments, err := w.oracle.MisleadingComments(ctx, sample.BuggyCode, maxInserts)
	if err != nil {
		return m.Supply{}, fmt.Errorf("comments: %w", err)
	}

	variables, err := w.oracle.MisleadingVariables(ctx, maxInserts)
	if err != nil {
		return m.Supply{}, fmt.Errorf("variables: %w", err)
	}

	deadCode, err := w.oracle.DeadCodeBlocks(ctx, sample.BuggyCode, maxInserts)
	if err != nil {
		return m.Supply{}, fmt.Errorf("dead code: %w", err)
	}

	return m.Supply{
		MaxInserts: maxInserts,
		Comments:   comments,
		Variables:  variables,
		DeadCode:   deadCode,
	}, nil
}

// sampleSeed derives a per-file seed so parallel runs stay reproducible
// regardless of scheduling order.
func sampleSeed(seed, file string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(seed))
	_, _ = h.Write([]byte{'/'})
	_, _ = h.Write([]byte(file))

	return int64(h.Sum64())
}
