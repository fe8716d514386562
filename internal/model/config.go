package model

import (
	"errors"
	"fmt"
	"path/filepath"
)

// DefaultOutputDir is used when no output directory is configured.
const DefaultOutputDir Path = "mutants_output"

// ErrInvalidConfiguration is returned by Configuration.Validate.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Configuration holds the read-only settings of a mutation run.
type Configuration struct {
	PackagePath      Path           `yaml:"package_path" json:"package_path"`
	IncludeOnlyFiles []Path         `yaml:"include_only_files" json:"include_only_files"`
	ExcludeFiles     []Path         `yaml:"exclude_files" json:"exclude_files"`
	OutputDir        Path           `yaml:"output_dir" json:"output_dir"`
	NoOverwrite      bool           `yaml:"no_overwrite" json:"no_overwrite"`
	Operators        []OperatorName `yaml:"operators" json:"operators"`
}

// Output returns the configured output directory or the default one.
func (c Configuration) Output() Path {
	if c.OutputDir == "" {
		return DefaultOutputDir
	}

	return c.OutputDir
}

// Validate checks the include/exclude filters.
func (c Configuration) Validate() error {
	for _, p := range c.IncludeOnlyFiles {
		if p == "" {
			return fmt.Errorf("%w: empty path in include-only files", ErrInvalidConfiguration)
		}
	}

	for _, p := range c.ExcludeFiles {
		if p == "" {
			return fmt.Errorf("%w: empty path in exclude files", ErrInvalidConfiguration)
		}
	}

	if len(c.IncludeOnlyFiles) == 0 {
		return nil
	}

	for _, p := range c.IncludeOnlyFiles {
		if !containsPath(c.ExcludeFiles, p) {
			return nil
		}
	}

	return fmt.Errorf("%w: every include-only file is also excluded", ErrInvalidConfiguration)
}

// Allows reports whether mutants may be generated for a file known under the
// given names, e.g. its walked path and its path relative to the package.
// Exclusion always wins over the include-only list.
func (c Configuration) Allows(names ...Path) bool {
	for _, name := range names {
		if containsPath(c.ExcludeFiles, name) {
			return false
		}
	}

	if len(c.IncludeOnlyFiles) == 0 {
		return true
	}

	for _, name := range names {
		if containsPath(c.IncludeOnlyFiles, name) {
			return true
		}
	}

	return false
}

func containsPath(list []Path, target Path) bool {
	cleanTarget := filepath.Clean(string(target))

	for _, p := range list {
		if filepath.Clean(string(p)) == cleanTarget {
			return true
		}
	}

	return false
}
