package domain

import "errors"

// Sentinel errors classifying fatal run failures. They are wrapped with %w so
// callers can test for them with errors.Is.
var (
	// ErrConfiguration reports invalid filters, operators or CLI settings.
	ErrConfiguration = errors.New("configuration error")
	// ErrFrontend reports sources that could not be read or parsed.
	ErrFrontend = errors.New("frontend error")
	// ErrFilesystem reports failures preparing the output directory or
	// writing mutants, reports and workspaces.
	ErrFilesystem = errors.New("filesystem error")
	// ErrVerifierBaseline reports that the unmodified package does not verify.
	ErrVerifierBaseline = errors.New("original code verification failed")
)
