package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	m "github.com/eigerco/move-spec-testing-old/internal/model"
)

const (
	// ReportJSONName is the structured report written next to the mutants.
	ReportJSONName = "report.json"
	// ReportTextName is the human readable rendering of the same report.
	ReportTextName = "report.txt"
	// ResultsJSONName holds the test outcomes of one shard.
	ResultsJSONName = "results.json"
)

// ReportStore persists mutation reports.
type ReportStore interface {
	// SaveReport writes report.json and report.txt into dir.
	SaveReport(ctx context.Context, dir m.Path, report *m.Report) error
	// LoadReport reads a structured report. path may name the file itself or
	// the directory holding report.json.
	LoadReport(ctx context.Context, path m.Path) (*m.Report, error)
	// SaveResults writes results.json into dir, creating dir when needed.
	SaveResults(ctx context.Context, dir m.Path, results []m.Result) error
	// LoadResults reads results.json from dir or from the file path names.
	LoadResults(ctx context.Context, path m.Path) ([]m.Result, error)
}

// LocalReportStore stores reports on the local filesystem.
type LocalReportStore struct{}

// NewLocalReportStore constructs a LocalReportStore.
func NewLocalReportStore() *LocalReportStore {
	return &LocalReportStore{}
}

// SaveReport writes both report forms. The JSON form is indented with two spaces.
func (s *LocalReportStore) SaveReport(ctx context.Context, dir m.Path, report *m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	jsonPath := filepath.Join(string(dir), ReportJSONName)
	if err := os.WriteFile(jsonPath, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", jsonPath, err)
	}

	var text bytes.Buffer
	if err := report.WriteText(&text); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	textPath := filepath.Join(string(dir), ReportTextName)
	if err := os.WriteFile(textPath, text.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", textPath, err)
	}

	return nil
}

// LoadReport decodes a report.json file.
func (s *LocalReportStore) LoadReport(ctx context.Context, path m.Path) (*m.Report, error) {
	report := m.NewReport()
	if err := loadJSON(ctx, path, ReportJSONName, report); err != nil {
		return nil, err
	}

	return report, nil
}

// SaveResults writes the results as an indented JSON array.
func (s *LocalReportStore) SaveResults(ctx context.Context, dir m.Path, results []m.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if results == nil {
		results = []m.Result{}
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	path := filepath.Join(string(dir), ResultsJSONName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// LoadResults decodes a results.json file.
func (s *LocalReportStore) LoadResults(ctx context.Context, path m.Path) ([]m.Result, error) {
	var results []m.Result
	if err := loadJSON(ctx, path, ResultsJSONName, &results); err != nil {
		return nil, err
	}

	return results, nil
}

// loadJSON decodes path into v. A directory is resolved to name inside it.
func loadJSON(ctx context.Context, path m.Path, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := string(path)
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		target = filepath.Join(target, name)
	}

	// #nosec G304 - path points at a file chosen by the user
	data, err := os.ReadFile(target)
	if err != nil {
		return fmt.Errorf("read %s: %w", target, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", target, err)
	}

	return nil
}
