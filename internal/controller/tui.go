package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/eigerco/move-spec-testing-old/internal/model"
)

const tuiTitle = "move-spec-test - Mutation Testing"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 2)
	faintStyle    = lipgloss.NewStyle().Faint(true)
	killedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	survivedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C"))
)

// TUI implements UI using a Bubble Tea program running next to the workflow.
type TUI struct {
	output io.Writer

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the Bubble Tea program in the background.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.program != nil {
		return fmt.Errorf("ui already started")
	}

	cfg := newStartConfig(options...)
	t.program = tea.NewProgram(newTUIModel(cfg.mode), tea.WithOutput(t.output), tea.WithContext(ctx))
	t.done = make(chan struct{})

	program, done := t.program, t.done

	go func() {
		defer close(done)

		if _, err := program.Run(); err != nil {
			slog.Debug("TUI program stopped", "error", err)
		}
	}()

	return nil
}

// Close stops the program and restores the terminal.
func (t *TUI) Close(ctx context.Context) {
	t.mu.Lock()
	program, done := t.program, t.done
	t.program, t.done = nil, nil
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Quit()

	select {
	case <-done:
	case <-ctx.Done():
	}
}

// Wait blocks until the user quits the program.
func (t *TUI) Wait(ctx context.Context) {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done == nil {
		return
	}

	t.send(finishedMsg{})

	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (t *TUI) send(msg tea.Msg) {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program != nil {
		program.Send(msg)
	}
}

// DisplayEstimation shows per-file mutant counts.
func (t *TUI) DisplayEstimation(ctx context.Context, estimations []FileEstimation, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	t.send(estimationMsg{estimations: estimations, err: err})

	return err
}

// DisplayMutantWritten records a stored mutant.
func (t *TUI) DisplayMutantWritten(ctx context.Context, entry m.MutationReport) {
	if ctx.Err() != nil {
		return
	}

	t.send(mutantWrittenMsg{entry: entry})
}

// DisplayReport shows the entries of a saved report.
func (t *TUI) DisplayReport(ctx context.Context, report *m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.send(reportMsg{report: report})

	return nil
}

// DisplayConcurrencyInfo shows concurrency settings.
func (t *TUI) DisplayConcurrencyInfo(ctx context.Context, threads int, shardIndex int, shardCount int) {
	if ctx.Err() != nil {
		return
	}

	t.send(concurrencyMsg{threads: threads, shardIndex: shardIndex, shardCount: shardCount})
}

// DisplayUpcomingTestsInfo sets the size of the progress bar.
func (t *TUI) DisplayUpcomingTestsInfo(ctx context.Context, count int) {
	if ctx.Err() != nil {
		return
	}

	t.send(upcomingMsg{count: count})
}

// DisplayStartingTestInfo marks a mutant as in flight.
func (t *TUI) DisplayStartingTestInfo(ctx context.Context, index int, entry m.MutationReport, threadID int) {
	if ctx.Err() != nil {
		return
	}

	t.send(startingMsg{index: index, entry: entry, threadID: threadID})
}

// DisplayCompletedTestInfo records the outcome of a mutant.
func (t *TUI) DisplayCompletedTestInfo(ctx context.Context, result m.Result) {
	if ctx.Err() != nil {
		return
	}

	t.send(completedMsg{result: result})
}

// DisplaySummary shows the final counters and surviving mutants.
func (t *TUI) DisplaySummary(ctx context.Context, summary m.Summary, survived []m.Result) {
	if ctx.Err() != nil {
		return
	}

	t.send(summaryMsg{summary: summary, survived: survived})
}

type (
	estimationMsg struct {
		estimations []FileEstimation
		err         error
	}
	mutantWrittenMsg struct{ entry m.MutationReport }
	reportMsg        struct{ report *m.Report }
	concurrencyMsg   struct{ threads, shardIndex, shardCount int }
	upcomingMsg      struct{ count int }
	startingMsg      struct {
		index    int
		entry    m.MutationReport
		threadID int
	}
	completedMsg struct{ result m.Result }
	summaryMsg   struct {
		summary  m.Summary
		survived []m.Result
	}
	finishedMsg struct{}
)

// tuiModel is the Bubble Tea model shared by every mode.
type tuiModel struct {
	mode     StartMode
	progress progress.Model

	info      string
	lines     []string
	running   map[int]string
	total     int
	completed int
	summary   *m.Summary
	err       error

	height   int
	width    int
	offset   int
	finished bool
	quitting bool
}

func newTUIModel(mode StartMode) tuiModel {
	return tuiModel{
		mode:     mode,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		running:  make(map[int]string),
	}
}

func (tm tuiModel) Init() tea.Cmd {
	return nil
}

//nolint:cyclop // One case per workflow event.
func (tm tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		tm.height = msg.Height
		tm.width = msg.Width

		return tm, nil

	case tea.KeyMsg:
		return tm.handleKeyPress(msg)

	case estimationMsg:
		tm.err = msg.err
		tm.lines = append(tm.lines, estimationLines(msg.estimations)...)

	case mutantWrittenMsg:
		tm.lines = append(tm.lines, fmt.Sprintf("  %s written to %s", describeEntry(msg.entry), msg.entry.File))

	case reportMsg:
		tm.lines = append(tm.lines, reportLines(msg.report)...)

	case concurrencyMsg:
		tm.info = fmt.Sprintf("Running with %d worker(s) (Shard %d/%d)", msg.threads, msg.shardIndex, msg.shardCount)

	case upcomingMsg:
		tm.total = msg.count

	case startingMsg:
		tm.running[msg.index] = fmt.Sprintf("[%d] #%d %s", msg.threadID, msg.index, msg.entry.File)

	case completedMsg:
		delete(tm.running, msg.result.Index)
		tm.completed++
		tm.lines = append(tm.lines, resultLine(msg.result))

	case summaryMsg:
		tm.summary = &msg.summary
		tm.lines = append(tm.lines, survivedLines(msg.survived)...)

	case finishedMsg:
		tm.finished = true
	}

	return tm, nil
}

//nolint:exhaustive // Key handling only covers navigation keys.
func (tm tuiModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		tm.quitting = true
		return tm, tea.Quit
	default:
	}

	switch msg.String() {
	case "q":
		tm.quitting = true
		return tm, tea.Quit
	case "down", "j":
		tm.offset = min(tm.offset+1, tm.maxOffset())
	case "up", "k":
		tm.offset = max(tm.offset-1, 0)
	case "g":
		tm.offset = 0
	case "G":
		tm.offset = tm.maxOffset()
	}

	return tm, nil
}

// itemsPerPage calculates how many content lines fit on screen.
func (tm tuiModel) itemsPerPage() int {
	if tm.height == 0 {
		return len(tm.lines)
	}

	// header, info, progress, running workers, summary and footer
	reserved := 12 + len(tm.running)

	return max(tm.height-reserved, 1)
}

func (tm tuiModel) maxOffset() int {
	return max(len(tm.lines)-tm.itemsPerPage(), 0)
}

func (tm tuiModel) View() string {
	if tm.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(tuiTitle))
	b.WriteString("\n\n")

	if tm.info != "" {
		fmt.Fprintf(&b, "  %s\n", faintStyle.Render(tm.info))
	}

	if tm.mode == ModeTest {
		tm.renderProgress(&b)
	}

	if tm.err != nil {
		fmt.Fprintf(&b, "  %s\n", survivedStyle.Render("error: "+tm.err.Error()))
	}

	tm.renderLines(&b)
	tm.renderSummary(&b)

	if tm.finished {
		b.WriteString("\n  " + faintStyle.Render("↑/k: up | ↓/j: down | g: top | G: bottom | q: quit") + "\n")
	}

	return b.String()
}

func (tm tuiModel) renderProgress(b *strings.Builder) {
	percent := 0.0
	if tm.total > 0 {
		percent = float64(tm.completed) / float64(tm.total)
	}

	fmt.Fprintf(b, "  %s %d/%d\n", tm.progress.ViewAs(percent), tm.completed, tm.total)

	indices := make([]int, 0, len(tm.running))
	for index := range tm.running {
		indices = append(indices, index)
	}

	sort.Ints(indices)

	for _, index := range indices {
		fmt.Fprintf(b, "  %s\n", faintStyle.Render(tm.running[index]))
	}

	b.WriteString("\n")
}

func (tm tuiModel) renderLines(b *strings.Builder) {
	start := min(tm.offset, len(tm.lines))
	end := min(start+tm.itemsPerPage(), len(tm.lines))

	for _, line := range tm.lines[start:end] {
		fmt.Fprintf(b, "%s\n", line)
	}

	if end-start < len(tm.lines) {
		fmt.Fprintf(b, "\n  Lines %d-%d of %d\n", start+1, end, len(tm.lines))
	}
}

func (tm tuiModel) renderSummary(b *strings.Builder) {
	if tm.summary == nil {
		return
	}

	s := tm.summary

	b.WriteString("\n")
	fmt.Fprintf(b, "  Total mutants: %d\n", s.Total)
	fmt.Fprintf(b, "  Killed mutants: %s\n", killedStyle.Render(fmt.Sprintf("%d", s.Killed)))

	if s.Inconclusive > 0 {
		fmt.Fprintf(b, "  Inconclusive mutants: %s\n", warnStyle.Render(fmt.Sprintf("%d", s.Inconclusive)))
	}

	fmt.Fprintf(b, "  Kill ratio: %.2f%%\n", s.KillRatio()*100)
}

func estimationLines(estimations []FileEstimation) []string {
	if len(estimations) == 0 {
		return []string{"  No source files found"}
	}

	lines := make([]string, 0, len(estimations)+2)
	total := 0

	for _, estimation := range estimations {
		counts := make([]string, 0, len(estimation.Operators))
		for _, oc := range estimation.Operators {
			text := fmt.Sprintf("%d %s", oc.Count, oc.Operator)
			if oc.Count == 0 {
				text = faintStyle.Render(text)
			}

			counts = append(counts, text)
		}

		lines = append(lines, fmt.Sprintf("  %s: %d (%s)", estimation.File, estimation.Total(), strings.Join(counts, ", ")))
		total += estimation.Total()
	}

	lines = append(lines, "", fmt.Sprintf("  Total: %d mutants across %d file(s)", total, len(estimations)))

	return lines
}

func reportLines(report *m.Report) []string {
	if report == nil || report.Len() == 0 {
		return []string{"  No mutants in report"}
	}

	var lines []string

	for _, entry := range report.Mutants {
		lines = append(lines, fmt.Sprintf("  %s <- %s", entry.File, entry.OriginalFile))
		for _, mutation := range entry.Mutations {
			lines = append(lines, fmt.Sprintf("    %s at %s: %q -> %q",
				mutation.OperatorName, mutation.ChangedPlace, mutation.OldValue, mutation.NewValue))
		}
	}

	return append(lines, "", fmt.Sprintf("  Total: %d mutants", report.Len()))
}

func resultLine(result m.Result) string {
	status := result.Status.String()

	switch result.Status {
	case m.Killed:
		status = killedStyle.Render("✓ " + status)
	case m.Survived:
		status = survivedStyle.Render("✗ " + status)
	case m.Inconclusive:
		status = warnStyle.Render("? " + status)
	}

	return fmt.Sprintf("  #%d %s %s", result.Index, result.Entry.File, status)
}

func survivedLines(survived []m.Result) []string {
	var lines []string

	for _, result := range survived {
		lines = append(lines, "", survivedStyle.Render("  Survived: "+result.Entry.File))
		lines = append(lines, strings.Split(strings.TrimRight(result.Entry.Diff, "\n"), "\n")...)
	}

	return lines
}
