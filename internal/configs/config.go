package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/gitflow/internal/errors"
	"github.com/PolarWolf314/gitflow/internal/gitrepo"
	"github.com/PolarWolf314/gitflow/internal/project"
)

// FileName is the project configuration file at the repository root.
const FileName = ".gitflow.toml"

// Config is the contents of .gitflow.toml.
type Config struct {
	Project ProjectConfig `toml:"project"`
	Git     GitConfig     `toml:"git"`
}

// ProjectConfig selects and configures the project adapter.
type ProjectConfig struct {
	// Type is "maven" or "webpack". Empty means ask interactively.
	Type         string `toml:"type"`
	Manifest     string `toml:"manifest,omitempty"`
	MavenCommand string `toml:"maven_command,omitempty"`
}

// GitConfig configures the repository driver and publishing.
type GitConfig struct {
	Command      string `toml:"command,omitempty"`
	Remote       string `toml:"remote"`
	PushBranches bool   `toml:"push_branches"`
	PushTags     bool   `toml:"push_tags"`

	// NetworkRetries is how often fetch, pull and push are retried after a
	// network failure.
	NetworkRetries int `toml:"network_retries"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Project: ProjectConfig{
			Manifest:     project.DefaultManifest,
			MavenCommand: "mvn",
		},
		Git: GitConfig{
			Command:        "git",
			Remote:         "origin",
			NetworkRetries: gitrepo.DefaultNetworkRetries,
		},
	}
}

// Load reads the config at path on top of the defaults. A missing file yields
// the defaults. Unknown keys are returned so the caller can warn about them.
func Load(path string) (*Config, []string, error) {
	cfg := Default()
	unknown, err := LoadTOML(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil, nil
		}
		return nil, nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, unknown, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, unknown, nil
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return SaveTOML(path, cfg)
}

// Validate checks values that would otherwise fail deep inside a flow.
func (c *Config) Validate() error {
	if c.Project.Type != "" {
		if _, err := project.ParseType(c.Project.Type); err != nil {
			return err
		}
	}
	if c.Project.Manifest != "" && filepath.IsAbs(c.Project.Manifest) {
		return fmt.Errorf("manifest %q must be relative to the repository root", c.Project.Manifest)
	}
	if c.Git.Remote == "" {
		return fmt.Errorf("git remote must not be empty")
	}
	if c.Git.NetworkRetries < 0 {
		return fmt.Errorf("network_retries must not be negative, got %d", c.Git.NetworkRetries)
	}
	return nil
}

// ProjectType returns the configured project type, or "" when unset.
func (c *Config) ProjectType() (project.Type, error) {
	if c.Project.Type == "" {
		return "", nil
	}
	return project.ParseType(c.Project.Type)
}

// RequireProjectType is ProjectType but fails when the type is unset.
func (c *Config) RequireProjectType() (project.Type, error) {
	t, err := c.ProjectType()
	if err != nil {
		return "", err
	}
	if t == "" {
		return "", fmt.Errorf("no project type configured (set [project] type in %s or pass --project): %w", FileName, kerrors.ErrUnknownProjectType)
	}
	return t, nil
}
