package model

import "fmt"

// TestStatus represents the outcome of verifying a single mutant.
type TestStatus int

const (
	// Killed indicates the verifier rejected the mutant.
	Killed TestStatus = iota
	// Survived indicates the verifier still accepted the mutant.
	Survived
	// Inconclusive indicates the verifier crashed, could not start or timed out.
	Inconclusive
)

func (s TestStatus) String() string {
	switch s {
	case Killed:
		return "killed"
	case Survived:
		return "survived"
	case Inconclusive:
		return "inconclusive"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name so stored results stay readable.
func (s TestStatus) MarshalText() ([]byte, error) {
	switch s {
	case Killed, Survived, Inconclusive:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("unknown test status %d", int(s))
	}
}

// UnmarshalText is the inverse of MarshalText.
func (s *TestStatus) UnmarshalText(text []byte) error {
	for _, status := range []TestStatus{Killed, Survived, Inconclusive} {
		if status.String() == string(text) {
			*s = status
			return nil
		}
	}

	return fmt.Errorf("unknown test status %q", text)
}

// Detected reports whether the status counts as killed for the kill ratio.
// Inconclusive runs are counted conservatively.
func (s TestStatus) Detected() bool {
	return s == Killed || s == Inconclusive
}

// Result is the outcome of verifying one report entry.
type Result struct {
	Index   int            `json:"index"`
	Entry   MutationReport `json:"entry"`
	Status  TestStatus     `json:"status"`
	Message string         `json:"message,omitempty"`
}

// Summary aggregates the results of a mutation testing run.
type Summary struct {
	Total        int
	Killed       int
	Survived     int
	Inconclusive int
}

// Add accounts for one result.
func (s *Summary) Add(status TestStatus) {
	s.Total++

	switch status {
	case Killed:
		s.Killed++
	case Survived:
		s.Survived++
	case Inconclusive:
		s.Killed++
		s.Inconclusive++
	}
}

// KillRatio returns killed/total, or 0 when nothing was tested.
func (s Summary) KillRatio() float64 {
	if s.Total == 0 {
		return 0
	}

	return float64(s.Killed) / float64(s.Total)
}
