package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/gitflow/internal/configs"
)

// ConfigInitOptions configures the config init workflow.
type ConfigInitOptions struct {
	Options

	// Force overwrites an existing .gitflow.toml.
	Force bool
}

// ConfigInitResult contains the outcome of a config init operation.
type ConfigInitResult struct {
	Path        string
	Config      *configs.Config
	Overwritten bool
}

// ConfigInit writes .gitflow.toml at the repository root from the defaults
// and the given overrides.
func ConfigInit(_ context.Context, opts ConfigInitOptions) (*ConfigInitResult, error) {
	s, err := openSession(opts.Options, false)
	if err != nil {
		return nil, err
	}

	_, statErr := os.Stat(s.settings.ConfigPath)
	exists := statErr == nil
	if exists && !opts.Force {
		return nil, fmt.Errorf("%s already exists (use --force to overwrite)", s.settings.ConfigPath)
	}

	if err := configs.Save(s.settings.ConfigPath, s.cfg); err != nil {
		return nil, fmt.Errorf("writing %s: %w", s.settings.ConfigPath, err)
	}
	return &ConfigInitResult{Path: s.settings.ConfigPath, Config: s.cfg, Overwritten: exists}, nil
}

// ConfigShowResult contains the effective configuration.
type ConfigShowResult struct {
	Path   string          `json:"path"`
	Exists bool            `json:"exists"`
	Config *configs.Config `json:"config"`
}

// ConfigShow returns the configuration a flow would run with, flags applied.
func ConfigShow(_ context.Context, opts Options) (*ConfigShowResult, error) {
	s, err := openSession(opts, false)
	if err != nil {
		return nil, err
	}
	_, statErr := os.Stat(s.settings.ConfigPath)
	return &ConfigShowResult{
		Path:   s.settings.ConfigPath,
		Exists: statErr == nil,
		Config: s.cfg,
	}, nil
}
