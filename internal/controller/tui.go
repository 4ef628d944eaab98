package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	m "github.com/sabaat/LLM-FL-Artifacts/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	fileStyle  = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI with a live Bubble Tea progress display. Summary tables
// are printed after the program exits so they stay in the scrollback.
type TUI struct {
	cmd     *cobra.Command
	simple  *SimpleUI
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{
		cmd:    cmd,
		simple: NewSimpleUI(cmd),
	}
}

// Start launches the progress display.
func (t *TUI) Start(ctx context.Context, title string, total int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newProgressModel(title, total)
	t.program = tea.NewProgram(model, tea.WithOutput(t.cmd.OutOrStdout()), tea.WithContext(ctx))
	t.done = make(chan struct{})

	go func() {
		defer close(t.done)

		_, _ = t.program.Run()
	}()

	return nil
}

// SampleDone advances the progress bar by one sample.
func (t *TUI) SampleDone(ctx context.Context, file string, produced, skipped int) {
	if err := ctx.Err(); err != nil {
		return
	}

	if t.program == nil {
		return
	}

	t.program.Send(sampleDoneMsg{file: file, produced: produced, skipped: skipped})
}

// Close stops the progress display and waits for it to finish.
func (t *TUI) Close(ctx context.Context) {
	if t.program == nil {
		return
	}

	t.program.Send(finishedMsg{})
	<-t.done
	t.program = nil
}

// DisplayMutationSummary renders per-variant output counts.
func (t *TUI) DisplayMutationSummary(ctx context.Context, counts map[m.Variant]int, failures int) error {
	return t.simple.DisplayMutationSummary(ctx, counts, failures)
}

// DisplayEvalSummary renders the outcome of one evaluation run.
func (t *TUI) DisplayEvalSummary(ctx context.Context, summary m.EvalSummary) error {
	return t.simple.DisplayEvalSummary(ctx, summary)
}

// DisplayWindowedReport renders aggregated quartile results across folders.
func (t *TUI) DisplayWindowedReport(ctx context.Context, stats []m.FolderStat, total m.WindowedResults) error {
	return t.simple.DisplayWindowedReport(ctx, stats, total)
}

type sampleDoneMsg struct {
	file     string
	produced int
	skipped  int
}

type finishedMsg struct{}

// progressModel is the Bubble Tea model behind the live progress bar.
type progressModel struct {
	title    string
	total    int
	done     int
	skipped  int
	lastFile string
	bar      progress.Model
	quitting bool
}

func newProgressModel(title string, total int) progressModel {
	return progressModel{
		title: title,
		total: total,
		bar:   progress.New(progress.WithDefaultGradient()),
	}
}

func (pm progressModel) Init() tea.Cmd {
	return nil
}

func (pm progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.bar.Width = msg.Width - 4
		return pm, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			pm.quitting = true
			return pm, tea.Quit
		}

		return pm, nil

	case sampleDoneMsg:
		pm.done++
		pm.skipped += msg.skipped
		pm.lastFile = msg.file

		return pm, nil

	case finishedMsg:
		pm.quitting = true
		return pm, tea.Quit
	}

	return pm, nil
}

func (pm progressModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(pm.title))
	b.WriteString("\n\n")

	ratio := 0.0
	if pm.total > 0 {
		ratio = float64(pm.done) / float64(pm.total)
	}

	b.WriteString("  " + pm.bar.ViewAs(ratio) + "\n")
	fmt.Fprintf(&b, "  %d/%d sample(s)", pm.done, pm.total)

	if pm.skipped > 0 {
		fmt.Fprintf(&b, ", %d branch(es) skipped", pm.skipped)
	}

	b.WriteString("\n")

	if pm.lastFile != "" && !pm.quitting {
		b.WriteString(fileStyle.Render("  "+pm.lastFile) + "\n")
	}

	return b.String()
}
