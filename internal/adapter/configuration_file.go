package adapter

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	m "github.com/eigerco/move-spec-testing-old/internal/model"
)

// LoadConfigurationFile decodes a mutator configuration file. YAML and JSON
// documents are both accepted.
func LoadConfigurationFile(ctx context.Context, path m.Path) (m.Configuration, error) {
	if err := ctx.Err(); err != nil {
		return m.Configuration{}, err
	}

	// #nosec G304 - the configuration file is chosen by the user
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.Configuration{}, fmt.Errorf("read configuration file: %w", err)
	}

	var cfg m.Configuration
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return m.Configuration{}, fmt.Errorf("decode configuration file %s: %w", path, err)
	}

	return cfg, nil
}
