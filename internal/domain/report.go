package domain

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sabaat/LLM-FL-Artifacts/internal/adapter"
	"github.com/sabaat/LLM-FL-Artifacts/internal/controller"
	m "github.com/sabaat/LLM-FL-Artifacts/internal/model"
)

// Reporter sums evaluation artifacts across variant folders into one
// windowed overview.
type Reporter interface {
	Report(ctx context.Context, folders []m.Path) ([]m.FolderStat, m.WindowedResults, error)
}

type reporter struct {
	store adapter.SampleStore
	ui    controller.UI
}

// NewReporter constructs a Reporter.
func NewReporter(store adapter.SampleStore, ui controller.UI) Reporter {
	return &reporter{store: store, ui: ui}
}

// Report reads windowed_results.json plus the success and fail lists of every
// folder, renders the aggregate, and returns it. Folders that have not been
// evaluated yet are an error.
func (r *reporter) Report(ctx context.Context, folders []m.Path) ([]m.FolderStat, m.WindowedResults, error) {
	if err := ctx.Err(); err != nil {
		return nil, m.WindowedResults{}, err
	}

	stats := make([]m.FolderStat, 0, len(folders))
	total := m.NewWindowedResults()

	for _, folder := range folders {
		stat, windowed, err := r.readFolder(folder)
		if err != nil {
			return nil, m.WindowedResults{}, err
		}

		stats = append(stats, stat)
		total.Add(windowed)
	}

	if err := r.ui.DisplayWindowedReport(ctx, stats, total); err != nil {
		return nil, m.WindowedResults{}, err
	}

	return stats, total, nil
}

func (r *reporter) readFolder(folder m.Path) (m.FolderStat, m.WindowedResults, error) {
	windowed := m.NewWindowedResults()

	path := m.Path(filepath.Join(string(folder), "windowed_results.json"))
	if err := r.store.ReadJSON(path, &windowed); err != nil {
		return m.FolderStat{}, m.WindowedResults{}, fmt.Errorf("read %s: %w", path, err)
	}

	matches, err := r.store.ReadLines(m.Path(filepath.Join(string(folder), "success.txt")))
	if err != nil {
		return m.FolderStat{}, m.WindowedResults{}, fmt.Errorf("read success list: %w", err)
	}

	mismatches, err := r.store.ReadLines(m.Path(filepath.Join(string(folder), "fail.txt")))
	if err != nil {
		return m.FolderStat{}, m.WindowedResults{}, fmt.Errorf("read fail list: %w", err)
	}

	stat := m.FolderStat{
		Folder:     folder,
		Matches:    len(matches),
		Mismatches: len(mismatches),
	}

	return stat, windowed, nil
}
