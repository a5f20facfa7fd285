// Package project reads and writes the version metadata of a build ecosystem.
//
// An Adapter is selected once per run from the configured Type. Maven projects
// are driven through the mvn binary; Webpack projects have their manifest
// edited in place.
package project

import (
	"context"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/gitflow/internal/errors"
	logger "github.com/PolarWolf314/gitflow/internal/logging"
	"github.com/PolarWolf314/gitflow/internal/shell"
)

// Type names a supported build ecosystem.
type Type string

const (
	Maven   Type = "maven"
	Webpack Type = "webpack"
)

// DefaultManifest is the manifest a Webpack project keeps its version in.
const DefaultManifest = "package.json"

// Types lists every supported project type in display order.
func Types() []Type {
	return []Type{Maven, Webpack}
}

// Label returns the display name of t.
func (t Type) Label() string {
	switch t {
	case Maven:
		return "Maven"
	case Webpack:
		return "Webpack"
	default:
		return string(t)
	}
}

// ParseType converts a case-insensitive name into a Type.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case Maven:
		return Maven, nil
	case Webpack:
		return Webpack, nil
	}
	return "", fmt.Errorf("%q (want maven or webpack): %w", s, kerrors.ErrUnknownProjectType)
}

// Adapter exposes the version metadata of one project.
type Adapter interface {
	Type() Type

	// Verify fails when the project descriptor is missing or the build is broken.
	Verify(ctx context.Context) error

	// CurrentVersion returns the raw version string. The second result is
	// false when the project does not declare one.
	CurrentVersion(ctx context.Context) (string, bool, error)

	SetVersion(ctx context.Context, v string) error
}

// Config carries what the adapters need from the environment.
type Config struct {
	// Dir is the project working directory.
	Dir string

	// Manifest is the Webpack manifest path, relative to Dir.
	Manifest string

	// MavenCommand is the mvn executable.
	MavenCommand string

	Runner shell.Runner
	Logger logger.Logger
}

// New returns the adapter for t.
func New(t Type, cfg Config) (Adapter, error) {
	switch t {
	case Maven:
		return NewMaven(cfg), nil
	case Webpack:
		return NewWebpack(cfg), nil
	}
	return nil, fmt.Errorf("%q: %w", t, kerrors.ErrUnknownProjectType)
}
