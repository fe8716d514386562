package domain

import (
	"sort"

	m "github.com/eigerco/move-spec-testing-old/internal/model"
	pkg "github.com/eigerco/move-spec-testing-old/pkg"
)

// orderedResults drains the spill into report order.
func orderedResults(results pkg.FileSpill[m.Result]) ([]m.Result, error) {
	var ordered []m.Result

	err := results.Range(func(_ uint64, result m.Result) error {
		ordered = append(ordered, result)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortResults(ordered)

	return ordered, nil
}

func sortResults(results []m.Result) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})
}

// summarize aggregates the counters of results already in report order.
// Survived results are returned separately for display.
func summarize(results []m.Result) (m.Summary, []m.Result) {
	var (
		summary  m.Summary
		survived []m.Result
	)

	for _, result := range results {
		summary.Add(result.Status)

		if result.Status == m.Survived {
			survived = append(survived, result)
		}
	}

	return summary, survived
}
