package adapter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	m "github.com/sabaat/LLM-FL-Artifacts/internal/model"
)

// resultsHeader is the column set of the accumulated evaluation CSV.
var resultsHeader = []string{
	"Mutation Type",
	"Total Programs",
	"Success",
	"Failure",
	"Accuracy %",
	"Tested LLM",
	"Bug Type",
	"Mutation Strength",
	"LLM - Type",
	"Language",
	"0-25 Success",
	"25-50 Success",
	"50-75 Success",
	"75-100 Success",
	"0-25 Failures",
	"25-50 Failures",
	"50-75 Failures",
	"75-100 Failures",
}

// RunMeta is metadata recovered from the evaluated folder's location. The
// convention is .../mutated_<language>_<bugtype>_<strength>/<mutation type>.
type RunMeta struct {
	MutationType string
	Language     string
	BugType      string
	Strength     string
}

// ParseRunMeta derives run metadata from a variant folder path.
func ParseRunMeta(folder m.Path) RunMeta {
	meta := RunMeta{MutationType: filepath.Base(string(folder))}

	parent := filepath.Base(filepath.Dir(string(folder)))
	if idx := strings.Index(parent, "mutated_"); idx >= 0 {
		parts := strings.Split(parent[idx+len("mutated_"):], "_")
		if len(parts) >= 3 {
			meta.Language = parts[0]
			meta.BugType = parts[1]
			meta.Strength = parts[2]
		}
	}

	return meta
}

// ResultsCSV appends evaluation summaries to an accumulating CSV file,
// writing the header only when the file is first created.
type ResultsCSV struct{}

// NewResultsCSV constructs a ResultsCSV.
func NewResultsCSV() *ResultsCSV {
	return &ResultsCSV{}
}

// Append adds one summary row to the CSV at path.
func (r *ResultsCSV) Append(path m.Path, summary m.EvalSummary, meta RunMeta) error {
	_, statErr := os.Stat(string(path))
	writeHeader := os.IsNotExist(statErr)

	file, err := os.OpenFile(string(path), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640)
	if err != nil {
		return fmt.Errorf("open results csv %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)

	if writeHeader {
		if err := w.Write(resultsHeader); err != nil {
			return fmt.Errorf("write csv header: %w", err)
		}
	}

	llmType := summary.Model
	if idx := strings.LastIndex(summary.Model, "-"); idx >= 0 {
		llmType = summary.Model[idx+1:]
	}

	row := []string{
		meta.MutationType,
		strconv.Itoa(summary.Total),
		strconv.Itoa(summary.Matches),
		strconv.Itoa(summary.Mismatches),
		strconv.FormatFloat(summary.Accuracy(), 'f', -1, 64),
		summary.Model,
		meta.BugType,
		meta.Strength,
		llmType,
		meta.Language,
		strconv.Itoa(summary.Windowed.Matches[m.Window0to25]),
		strconv.Itoa(summary.Windowed.Matches[m.Window25to50]),
		strconv.Itoa(summary.Windowed.Matches[m.Window50to75]),
		strconv.Itoa(summary.Windowed.Matches[m.Window75to100]),
		strconv.Itoa(summary.Windowed.Mismatches[m.Window0to25]),
		strconv.Itoa(summary.Windowed.Mismatches[m.Window25to50]),
		strconv.Itoa(summary.Windowed.Mismatches[m.Window50to75]),
		strconv.Itoa(summary.Windowed.Mismatches[m.Window75to100]),
	}

	if err := w.Write(row); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}

	w.Flush()

	return w.Error()
}
