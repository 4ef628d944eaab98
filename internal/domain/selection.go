package domain

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sabaat/LLM-FL-Artifacts/internal/adapter"
	m "github.com/sabaat/LLM-FL-Artifacts/internal/model"
)

// Selector copies a fixed-size prefix of a matched-samples folder, so runs
// against different mutation variants can be compared on equally sized sets.
type Selector interface {
	SelectFirstN(ctx context.Context, src, dst m.Path, n int) (int, error)
}

type selector struct {
	store adapter.SampleStore
}

// NewSelector constructs a Selector.
func NewSelector(store adapter.SampleStore) Selector {
	return &selector{store: store}
}

// SelectFirstN copies the first n sample files of src, in filename order,
// into dst. It returns the number of files copied, which is less than n when
// src holds fewer samples.
func (s *selector) SelectFirstN(ctx context.Context, src, dst m.Path, n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("selection size must be positive, got %d", n)
	}

	files, err := s.store.ListSamples(src)
	if err != nil {
		return 0, fmt.Errorf("list samples: %w", err)
	}

	if err := s.store.EnsureDir(dst); err != nil {
		return 0, fmt.Errorf("prepare output: %w", err)
	}

	if n > len(files) {
		n = len(files)
	}

	for i, file := range files[:n] {
		if err := ctx.Err(); err != nil {
			return i, err
		}

		srcPath := m.Path(filepath.Join(string(src), file))
		dstPath := m.Path(filepath.Join(string(dst), file))

		if err := s.store.CopyFile(srcPath, dstPath); err != nil {
			return i, fmt.Errorf("copy %s: %w", file, err)
		}
	}

	return n, nil
}
