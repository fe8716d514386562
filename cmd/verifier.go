package cmd

import (
	"context"
	"fmt"

	"github.com/eigerco/move-spec-testing-old/internal/adapter"
	"github.com/eigerco/move-spec-testing-old/internal/domain"
	m "github.com/eigerco/move-spec-testing-old/internal/model"
)

// configuredVerifier resolves the verifier command when it is used, so the
// value of --verifier is honoured although dependencies are wired in init.
type configuredVerifier struct {
	command func() string
}

func newConfiguredVerifier(command func() string) adapter.VerifierAdapter {
	return &configuredVerifier{command: command}
}

func (v *configuredVerifier) Verify(ctx context.Context, packageDir m.Path) (string, error) {
	local, err := adapter.NewLocalVerifierAdapter(v.command())
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}

	return local.Verify(ctx, packageDir)
}
