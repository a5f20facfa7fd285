package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/gitflow/internal/errors"
	logger "github.com/PolarWolf314/gitflow/internal/logging"
)

const versionKey = `"version":`

// WebpackProject keeps its version in the "version" field of a JSON manifest.
//
// The manifest is edited line by line rather than re-encoded so that key
// order, indentation and formatting of every other line survive untouched.
type WebpackProject struct {
	path string
	log  logger.Logger
}

// NewWebpack returns a Webpack adapter for the manifest in cfg.Dir.
func NewWebpack(cfg Config) *WebpackProject {
	manifest := cfg.Manifest
	if manifest == "" {
		manifest = DefaultManifest
	}
	if !filepath.IsAbs(manifest) {
		manifest = filepath.Join(cfg.Dir, manifest)
	}
	return &WebpackProject{path: manifest, log: cfg.Logger}
}

func (w *WebpackProject) Type() Type {
	return Webpack
}

// Path returns the manifest location.
func (w *WebpackProject) Path() string {
	return w.path
}

func (w *WebpackProject) Verify(_ context.Context) error {
	w.log.Infof("verifying webpack project manifest %s", w.path)
	info, err := os.Stat(w.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", w.path, kerrors.ErrManifestNotFound)
		}
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory: %w", w.path, kerrors.ErrManifestNotFound)
	}
	return nil
}

// CurrentVersion returns the value of the first "version" line. A missing
// manifest or a manifest without a version line is reported as absent.
func (w *WebpackProject) CurrentVersion(_ context.Context) (string, bool, error) {
	w.log.Infof("reading version from %s", w.path)
	data, err := os.ReadFile(w.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}

	lines := strings.Split(string(data), "\n")
	i := findVersionLine(lines)
	if i < 0 {
		return "", false, nil
	}
	v, ok := versionValue(lines[i])
	if !ok || v == "" {
		return "", false, nil
	}
	return v, true, nil
}

// SetVersion replaces the quoted value on the first "version" line. The rest
// of that line, including any closing brace or comma after the value, is kept.
func (w *WebpackProject) SetVersion(_ context.Context, v string) error {
	w.log.Infof("updating webpack project version to %s", v)
	info, err := os.Stat(w.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", w.path, kerrors.ErrManifestNotFound)
		}
		return err
	}
	data, err := os.ReadFile(w.path)
	if err != nil {
		return err
	}

	lines := strings.Split(string(data), "\n")
	i := findVersionLine(lines)
	if i < 0 {
		return fmt.Errorf("no %s line in %s: %w", versionKey, w.path, kerrors.ErrVersionNotFound)
	}
	lines[i] = rewriteVersionLine(lines[i], v)

	if err := os.WriteFile(w.path, []byte(strings.Join(lines, "\n")), info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", w.path, err)
	}
	return nil
}

func findVersionLine(lines []string) int {
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), versionKey) {
			return i
		}
	}
	return -1
}

// valueSpan locates the quoted value on a line such as `  "version": "1.2.3",`.
// start and end bound the text between the quotes.
func valueSpan(line string) (start, end int, ok bool) {
	key := strings.Index(line, versionKey)
	if key < 0 {
		return 0, 0, false
	}
	start = key + len(versionKey)
	for start < len(line) && (line[start] == ' ' || line[start] == '\t') {
		start++
	}
	if start >= len(line) || line[start] != '"' {
		return 0, 0, false
	}
	start++
	n := strings.IndexByte(line[start:], '"')
	if n < 0 {
		return 0, 0, false
	}
	return start, start + n, true
}

func versionValue(line string) (string, bool) {
	start, end, ok := valueSpan(line)
	if !ok {
		return "", false
	}
	return line[start:end], true
}

// rewriteVersionLine swaps the quoted value and leaves every other byte of the
// line alone. A line without a quoted value is rebuilt from its indentation.
func rewriteVersionLine(line, v string) string {
	if start, end, ok := valueSpan(line); ok {
		return line[:start] + v + line[end:]
	}

	indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	body := strings.TrimRight(line, " \t\r")
	var tail string
	if strings.HasSuffix(body, ",") {
		tail = ","
	}
	if strings.HasSuffix(line, "\r") {
		tail += "\r"
	}
	return indent + versionKey + ` "` + v + `"` + tail
}
