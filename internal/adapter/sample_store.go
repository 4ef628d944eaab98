// Package adapter contains infrastructure adapters for the spm CLI: sample
// persistence, the mutation-supply oracle, the fault-localization consumer
// and the results CSV.
package adapter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	m "github.com/sabaat/LLM-FL-Artifacts/internal/model"
)

// SampleStore abstracts sample-record persistence so the domain layer can be
// tested without touching the disk.
type SampleStore interface {
	// ListSamples returns the JSON sample filenames in dir, sorted.
	ListSamples(dir m.Path) ([]string, error)

	// ReadSample loads one sample record.
	ReadSample(path m.Path) (m.Sample, error)

	// WriteSample persists one sample record.
	WriteSample(path m.Path, sample m.Sample) error

	// CopyFile duplicates a sample file byte for byte.
	CopyFile(src, dst m.Path) error

	// EnsureDir creates a directory and its parents.
	EnsureDir(dir m.Path) error

	// WriteLines writes one string per line.
	WriteLines(path m.Path, lines []string) error

	// ReadLines reads non-empty lines from a file; a missing file is an
	// empty result, not an error.
	ReadLines(path m.Path) ([]string, error)

	// WriteJSON persists v as indented JSON.
	WriteJSON(path m.Path, v any) error

	// ReadJSON loads JSON into v.
	ReadJSON(path m.Path, v any) error
}

// LocalSampleStore is the disk-backed SampleStore.
type LocalSampleStore struct{}

// NewLocalSampleStore constructs a LocalSampleStore.
func NewLocalSampleStore() *LocalSampleStore {
	return &LocalSampleStore{}
}

// ListSamples returns the .json filenames in dir in ascending name order.
func (s *LocalSampleStore) ListSamples(dir m.Path) ([]string, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return nil, fmt.Errorf("list samples in %s: %w", dir, err)
	}

	var names []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)

	return names, nil
}

// ReadSample loads and decodes a sample record.
func (s *LocalSampleStore) ReadSample(path m.Path) (m.Sample, error) {
	var sample m.Sample

	if err := s.ReadJSON(path, &sample); err != nil {
		return m.Sample{}, err
	}

	return sample, nil
}

// WriteSample persists a sample record as indented JSON.
func (s *LocalSampleStore) WriteSample(path m.Path, sample m.Sample) error {
	return s.WriteJSON(path, sample)
}

// CopyFile duplicates src into dst.
func (s *LocalSampleStore) CopyFile(src, dst m.Path) error {
	in, err := os.Open(string(src))
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(string(dst))
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}

	return nil
}

// EnsureDir creates dir and any missing parents.
func (s *LocalSampleStore) EnsureDir(dir m.Path) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	return nil
}

// WriteLines writes one entry per line, newline terminated.
func (s *LocalSampleStore) WriteLines(path m.Path, lines []string) error {
	var b strings.Builder

	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if err := os.WriteFile(string(path), []byte(b.String()), 0o640); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// ReadLines returns the non-empty lines of path, or nothing when the file
// does not exist.
func (s *LocalSampleStore) ReadLines(path m.Path) ([]string, error) {
	content, err := os.ReadFile(string(path))
	if os.IsNotExist(err) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var lines []string

	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	return lines, nil
}

// WriteJSON persists v as two-space indented JSON.
func (s *LocalSampleStore) WriteJSON(path m.Path, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if err := os.WriteFile(string(path), data, 0o640); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// ReadJSON loads JSON from path into v.
func (s *LocalSampleStore) ReadJSON(path m.Path, v any) error {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	return nil
}
