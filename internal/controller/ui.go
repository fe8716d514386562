// Package controller provides output adapters for displaying mutation testing results.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "github.com/eigerco/move-spec-testing-old/internal/model"
)

// OperatorCount is the number of mutants one operator proposes for a file.
type OperatorCount struct {
	Operator m.OperatorName
	Count    int
}

// FileEstimation holds the mutant counts of a single source file.
type FileEstimation struct {
	File      m.Path
	Operators []OperatorCount
}

// Total returns the number of mutants over all operators.
func (e FileEstimation) Total() int {
	total := 0
	for _, oc := range e.Operators {
		total += oc.Count
	}

	return total
}

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeEstimate StartMode = iota
	ModeMutate
	ModeTest
	ModeView
	ModeMerge
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithEstimateMode sets the UI to estimation mode.
func WithEstimateMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeEstimate
	}
}

// WithMutateMode sets the UI to mutant generation mode.
func WithMutateMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeMutate
	}
}

// WithTestMode sets the UI to test execution mode.
func WithTestMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeTest
	}
}

// WithViewMode sets the UI to report viewing mode.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

// WithMergeMode sets the UI to display combined shard results.
func WithMergeMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeMerge
	}
}

func newStartConfig(options ...StartOption) StartConfig {
	cfg := StartConfig{mode: ModeEstimate}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI defines the interface for reporting progress and results of a run.
// Implementations can use different output methods (simple text, TUI, etc).
//
//nolint:interfacebloat // One method per workflow event.
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayEstimation(ctx context.Context, estimations []FileEstimation, err error) error
	DisplayMutantWritten(ctx context.Context, entry m.MutationReport)
	DisplayReport(ctx context.Context, report *m.Report) error
	DisplayConcurrencyInfo(ctx context.Context, threads int, shardIndex int, shardCount int)
	DisplayUpcomingTestsInfo(ctx context.Context, count int)
	DisplayStartingTestInfo(ctx context.Context, index int, entry m.MutationReport, threadID int)
	DisplayCompletedTestInfo(ctx context.Context, result m.Result)
	DisplaySummary(ctx context.Context, summary m.Summary, survived []m.Result)
}

// NewUI picks the interactive TUI for terminals and SimpleUI otherwise.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	if isTTY {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
