package model

// Window buckets a defect position percentage into quartiles.
type Window string

// Quartile windows used by the evaluation reports.
const (
	Window0to25   Window = "0-25"
	Window25to50  Window = "25-50"
	Window50to75  Window = "50-75"
	Window75to100 Window = "75-100"
)

// Windows lists the quartile windows in ascending order.
var Windows = []Window{Window0to25, Window25to50, Window50to75, Window75to100}

// WindowFor returns the quartile window a percentage falls into.
func WindowFor(percent float64) Window {
	switch {
	case percent < 25:
		return Window0to25
	case percent < 50:
		return Window25to50
	case percent < 75:
		return Window50to75
	default:
		return Window75to100
	}
}

// EvalVerdict is the per-sample outcome of a fault-localization probe.
type EvalVerdict int

const (
	// VerdictMatch means the predicted line was within tolerance of the label.
	VerdictMatch EvalVerdict = iota
	// VerdictMismatch means the prediction missed.
	VerdictMismatch
	// VerdictError means the consumer returned no usable prediction.
	VerdictError
)

// EvalReport records one probed sample.
type EvalReport struct {
	File          string
	OriginalLine  int
	PredictedLine int
	Window        Window
	Verdict       EvalVerdict
}

// WindowedResults aggregates match/mismatch counts per quartile window. It
// is serialized as windowed_results.json next to the evaluated samples so
// downstream reporting can sum it across variant folders.
type WindowedResults struct {
	Matches    map[Window]int `json:"matches"`
	Mismatches map[Window]int `json:"mismatches"`
}

// NewWindowedResults returns zeroed counts for every window.
func NewWindowedResults() WindowedResults {
	w := WindowedResults{
		Matches:    make(map[Window]int, len(Windows)),
		Mismatches: make(map[Window]int, len(Windows)),
	}
	for _, win := range Windows {
		w.Matches[win] = 0
		w.Mismatches[win] = 0
	}

	return w
}

// Add merges other's counts into w.
func (w WindowedResults) Add(other WindowedResults) {
	for _, win := range Windows {
		w.Matches[win] += other.Matches[win]
		w.Mismatches[win] += other.Mismatches[win]
	}
}

// FolderStat summarizes one evaluated variant folder for reporting.
type FolderStat struct {
	Folder     Path
	Matches    int
	Mismatches int
}

// EvalSummary is the aggregate of one evaluation run over a variant folder.
type EvalSummary struct {
	Folder        Path
	Model         string
	Total         int
	Matches       int
	Mismatches    int
	Windowed      WindowedResults
	MatchFiles    []string
	MismatchFiles []string
}

// Accuracy returns the match rate in percent, rounded to two decimals.
func (s EvalSummary) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}

	return float64(int(float64(s.Matches)/float64(s.Total)*10000+0.5)) / 100
}
