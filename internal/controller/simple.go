package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/eigerco/move-spec-testing-old/internal/model"
)

// SimpleUI implements UI using cobra Command's output writer. Writes are
// serialised because test workers report concurrently.
type SimpleUI struct {
	cmd *cobra.Command
	mu  sync.Mutex
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayEstimation prints per-file and per-operator mutant counts.
func (s *SimpleUI) DisplayEstimation(ctx context.Context, estimations []FileEstimation, err error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err != nil {
		s.printf("estimation error: %v\n", err)
		return err
	}

	s.printf("\n%s", renderEstimationTable(estimations))

	if totals := operatorTotals(estimations); len(totals) > 0 {
		s.printf("\n%s", renderOperatorTable(totals))
	}

	return nil
}

func renderEstimationTable(estimations []FileEstimation) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Mutants"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	total := 0

	for _, estimation := range estimations {
		table.Append([]string{string(estimation.File), fmt.Sprintf("%d", estimation.Total())})
		total += estimation.Total()
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(estimations)),
		fmt.Sprintf("%d", total),
	})

	table.Render()

	return tableBuffer.String()
}

// operatorTotals sums counts per operator, keeping first-seen order.
func operatorTotals(estimations []FileEstimation) []OperatorCount {
	var totals []OperatorCount

	index := make(map[m.OperatorName]int)

	for _, estimation := range estimations {
		for _, oc := range estimation.Operators {
			i, ok := index[oc.Operator]
			if !ok {
				index[oc.Operator] = len(totals)
				totals = append(totals, OperatorCount{Operator: oc.Operator})
				i = len(totals) - 1
			}

			totals[i].Count += oc.Count
		}
	}

	return totals
}

func renderOperatorTable(totals []OperatorCount) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Operator", "Mutants"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, oc := range totals {
		table.Append([]string{string(oc.Operator), fmt.Sprintf("%d", oc.Count)})
	}

	table.Render()

	return tableBuffer.String()
}

// DisplayMutantWritten reports a mutant file stored in the output directory.
func (s *SimpleUI) DisplayMutantWritten(ctx context.Context, entry m.MutationReport) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s written to %s\n", describeEntry(entry), entry.File)
}

// DisplayReport prints the entries of a saved report as a table.
func (s *SimpleUI) DisplayReport(ctx context.Context, report *m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if report == nil || report.Len() == 0 {
		s.printf("No mutants in report\n")
		return nil
	}

	s.printf("\n%s", renderReportTable(report))

	return nil
}

func renderReportTable(report *m.Report) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Mutant", "Original", "Operator", "Place", "Change"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for _, entry := range report.Mutants {
		for _, mutation := range entry.Mutations {
			table.Append([]string{
				entry.File,
				entry.OriginalFile,
				mutation.OperatorName,
				mutation.ChangedPlace.String(),
				fmt.Sprintf("%q -> %q", mutation.OldValue, mutation.NewValue),
			})
		}
	}

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", report.Len()), "", "", ""})
	table.Render()

	return tableBuffer.String()
}

// DisplayConcurrencyInfo shows concurrency settings.
func (s *SimpleUI) DisplayConcurrencyInfo(ctx context.Context, threads int, shardIndex int, shardCount int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Running with %d worker(s) (Shard %d/%d)\n", threads, shardIndex, shardCount)
}

// DisplayUpcomingTestsInfo shows the number of mutants about to be verified.
func (s *SimpleUI) DisplayUpcomingTestsInfo(ctx context.Context, count int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Upcoming mutants: %d\n", count)
}

// DisplayStartingTestInfo shows info about the mutant being verified.
func (s *SimpleUI) DisplayStartingTestInfo(ctx context.Context, index int, entry m.MutationReport, threadID int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("[%d] Verifying mutant #%d %s\n", threadID, index, entry.File)
}

// DisplayCompletedTestInfo shows the outcome of a single mutant.
func (s *SimpleUI) DisplayCompletedTestInfo(ctx context.Context, result m.Result) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Completed mutant #%d %s -> %s\n", result.Index, result.Entry.File, result.Status)
}

// DisplaySummary prints the counters and the diffs of surviving mutants.
func (s *SimpleUI) DisplaySummary(ctx context.Context, summary m.Summary, survived []m.Result) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Total mutants: %d\n", summary.Total)
	s.printf("Killed mutants: %d\n", summary.Killed)

	if summary.Inconclusive > 0 {
		s.printf("Inconclusive mutants: %d (counted as killed)\n", summary.Inconclusive)
	}

	s.printf("Kill ratio: %.2f%%\n", summary.KillRatio()*100)

	for _, result := range survived {
		s.printf("\nSurvived: %s (%s)\n", result.Entry.File, describeEntry(result.Entry))
		s.printf("%s\n", strings.TrimRight(result.Entry.Diff, "\n"))
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

// describeEntry renders the mutations of an entry on a single line.
func describeEntry(entry m.MutationReport) string {
	parts := make([]string, 0, len(entry.Mutations))
	for _, mutation := range entry.Mutations {
		parts = append(parts, fmt.Sprintf("%s at %s: %q -> %q",
			mutation.OperatorName, mutation.ChangedPlace, mutation.OldValue, mutation.NewValue))
	}

	if len(parts) == 0 {
		return "Mutant"
	}

	return "Mutant " + strings.Join(parts, ", ")
}
