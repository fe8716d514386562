package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	m "github.com/eigerco/move-spec-testing-old/internal/model"
)

// PackagePlaceholder is replaced with the package directory in verifier commands.
const PackagePlaceholder = "{package}"

// DefaultVerifierCommand runs the Move prover of the Aptos CLI.
const DefaultVerifierCommand = "aptos move prove --package-dir " + PackagePlaceholder

// VerificationError reports that the verifier ran to completion and rejected
// the package.
type VerificationError struct {
	ExitCode int
	Output   string
}

func (e *VerificationError) Error() string {
	msg := strings.TrimSpace(e.Output)
	if msg == "" {
		return fmt.Sprintf("verification failed with exit code %d", e.ExitCode)
	}

	return fmt.Sprintf("verification failed with exit code %d: %s", e.ExitCode, msg)
}

// VerifierAdapter abstracts the formal verifier used to check a Move package
// against its specifications.
type VerifierAdapter interface {
	// Verify checks the package at packageDir. It returns a *VerificationError
	// when the verifier rejects the package and a plain error when the verifier
	// could not complete (missing binary, crash, deadline).
	Verify(ctx context.Context, packageDir m.Path) (output string, err error)
}

// LocalVerifierAdapter runs the verifier as a child process.
type LocalVerifierAdapter struct {
	command []string
}

// NewLocalVerifierAdapter constructs a LocalVerifierAdapter for a
// whitespace-separated command line. Every argument equal to or containing
// {package} gets the package directory substituted.
func NewLocalVerifierAdapter(command string) (*LocalVerifierAdapter, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("verifier command is empty")
	}

	return &LocalVerifierAdapter{command: fields}, nil
}

// Command returns the argv that would run against packageDir.
func (a *LocalVerifierAdapter) Command(packageDir m.Path) []string {
	args := make([]string, len(a.command))
	for i, arg := range a.command {
		args[i] = strings.ReplaceAll(arg, PackagePlaceholder, string(packageDir))
	}

	return args
}

// Verify runs the verifier in packageDir and classifies its outcome.
// The package directory is made absolute first: it is both the working
// directory of the verifier and the value substituted for {package}.
func (a *LocalVerifierAdapter) Verify(ctx context.Context, packageDir m.Path) (string, error) {
	dir, err := filepath.Abs(string(packageDir))
	if err != nil {
		return "", fmt.Errorf("resolve package dir %s: %w", packageDir, err)
	}

	args := a.Command(m.Path(dir))

	// #nosec G204 - the verifier command is configured by the user
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir

	var output bytes.Buffer

	cmd.Stdout = &output
	cmd.Stderr = &output

	err = cmd.Run()
	out := output.String()

	if err == nil {
		return out, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return out, fmt.Errorf("verifier interrupted: %w", ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return out, &VerificationError{ExitCode: exitErr.ExitCode(), Output: out}
	}

	return out, fmt.Errorf("run verifier %s: %w", args[0], err)
}
