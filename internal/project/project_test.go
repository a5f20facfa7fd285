package project

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	kerrors "github.com/PolarWolf314/gitflow/internal/errors"
	"github.com/PolarWolf314/gitflow/internal/shell"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		input   string
		want    Type
		wantErr bool
	}{
		{"maven", Maven, false},
		{"Maven", Maven, false},
		{" WEBPACK ", Webpack, false},
		{"gradle", "", true},
		{"", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseType(tc.input)
			if tc.wantErr {
				if !errors.Is(err, kerrors.ErrUnknownProjectType) {
					t.Errorf("ParseType(%q) error = %v, expected ErrUnknownProjectType", tc.input, err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Errorf("ParseType(%q) = %q, %v; expected %q", tc.input, got, err, tc.want)
			}
		})
	}
}

func TestNewSelectsAdapter(t *testing.T) {
	for _, typ := range Types() {
		a, err := New(typ, Config{Dir: t.TempDir(), Runner: shell.NewMockRunner()})
		if err != nil {
			t.Fatalf("New(%s) returned error: %v", typ, err)
		}
		if a.Type() != typ {
			t.Errorf("New(%s).Type() = %s", typ, a.Type())
		}
	}

	if _, err := New("ant", Config{}); !errors.Is(err, kerrors.ErrUnknownProjectType) {
		t.Errorf("New(ant) error = %v, expected ErrUnknownProjectType", err)
	}
}

func newMaven(t *testing.T) (*MavenProject, *shell.MockRunner, string) {
	t.Helper()
	dir := t.TempDir()
	runner := shell.NewMockRunner()
	return NewMaven(Config{Dir: dir, Runner: runner}), runner, dir
}

func TestMavenCurrentVersion(t *testing.T) {
	ctx := context.Background()
	evalArgs := []string{"-q", "-Dexec.executable=echo", "-Dexec.args=${project.version}", "--non-recursive", "exec:exec"}

	t.Run("Found", func(t *testing.T) {
		m, runner, _ := newMaven(t)
		runner.OnCommand("mvn", evalArgs...).Return("Downloading plugin...\n1.4.0-SNAPSHOT", nil)

		v, ok, err := m.CurrentVersion(ctx)
		if err != nil || !ok || v != "1.4.0-SNAPSHOT" {
			t.Errorf("CurrentVersion = %q, %v, %v", v, ok, err)
		}
	})

	t.Run("EvaluationFails", func(t *testing.T) {
		m, runner, _ := newMaven(t)
		runner.OnCommand("mvn", evalArgs...).Return("", &shell.CommandError{Command: "mvn", ExitCode: 1})

		_, ok, err := m.CurrentVersion(ctx)
		if err != nil || ok {
			t.Errorf("CurrentVersion ok = %v, err = %v; expected absent", ok, err)
		}
	})
}

func TestMavenSetVersionAndProperty(t *testing.T) {
	ctx := context.Background()
	m, runner, dir := newMaven(t)

	if err := m.SetVersion(ctx, "2.0.0.RELEASE"); err != nil {
		t.Fatalf("SetVersion returned error: %v", err)
	}
	if err := m.SetProperty(ctx, "spring.version", "6.1.0"); err != nil {
		t.Fatalf("SetProperty returned error: %v", err)
	}

	want := []string{
		"mvn versions:set -DnewVersion=2.0.0.RELEASE -DgenerateBackupPoms=false",
		"mvn versions:set-property -Dproperty=spring.version -DnewVersion=6.1.0 -DgenerateBackupPoms=false",
	}
	if got := runner.Lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("commands = %v, expected %v", got, want)
	}
	for _, c := range runner.Calls {
		if c.WorkDir != dir {
			t.Errorf("mvn ran in %q, expected %q", c.WorkDir, dir)
		}
	}
}

func TestMavenVerify(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingPom", func(t *testing.T) {
		m, runner, _ := newMaven(t)
		if err := m.Verify(ctx); !errors.Is(err, kerrors.ErrManifestNotFound) {
			t.Errorf("Verify error = %v, expected ErrManifestNotFound", err)
		}
		if len(runner.Calls) != 0 {
			t.Errorf("mvn should not run without a pom, got %v", runner.Lines())
		}
	})

	t.Run("BuildsAndCleans", func(t *testing.T) {
		m, runner, dir := newMaven(t)
		if err := os.WriteFile(filepath.Join(dir, Descriptor), []byte("<project/>"), 0644); err != nil {
			t.Fatal(err)
		}

		if err := m.Verify(ctx); err != nil {
			t.Fatalf("Verify returned error: %v", err)
		}
		want := []string{"mvn --version", "mvn clean package -DskipTests -U", "mvn clean"}
		if got := runner.Lines(); !reflect.DeepEqual(got, want) {
			t.Errorf("commands = %v, expected %v", got, want)
		}
	})

	t.Run("BuildFails", func(t *testing.T) {
		m, runner, dir := newMaven(t)
		if err := os.WriteFile(filepath.Join(dir, Descriptor), []byte("<project/>"), 0644); err != nil {
			t.Fatal(err)
		}
		runner.OnCommand("mvn", "clean", "package", "-DskipTests", "-U").Return("", &shell.CommandError{Command: "mvn", ExitCode: 1})

		err := m.Verify(ctx)
		if !kerrors.IsDriverFailure(err) {
			t.Errorf("Verify error = %v, expected driver failure", err)
		}
		if runner.CallCount("mvn") != 2 {
			t.Error("clean should not run after a failed build")
		}
	})
}

const manifest = `{
  "name": "dashboard",
  "version": "1.2.0-SNAPSHOT",
  "private": true,
  "scripts": {
    "build": "webpack --mode production"
  }
}
`

func writeManifest(t *testing.T, content string) (*WebpackProject, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultManifest)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return NewWebpack(Config{Dir: dir}), path
}

func TestWebpackCurrentVersion(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		w, _ := writeManifest(t, manifest)
		v, ok, err := w.CurrentVersion(ctx)
		if err != nil || !ok || v != "1.2.0-SNAPSHOT" {
			t.Errorf("CurrentVersion = %q, %v, %v", v, ok, err)
		}
	})

	t.Run("LastField", func(t *testing.T) {
		w, _ := writeManifest(t, "{\n\t\"name\": \"x\",\n\t\"version\": \"0.1.0\"\n}\n")
		v, ok, err := w.CurrentVersion(ctx)
		if err != nil || !ok || v != "0.1.0" {
			t.Errorf("CurrentVersion = %q, %v, %v", v, ok, err)
		}
	})

	t.Run("NoVersionLine", func(t *testing.T) {
		w, _ := writeManifest(t, "{\n  \"name\": \"x\"\n}\n")
		_, ok, err := w.CurrentVersion(ctx)
		if err != nil || ok {
			t.Errorf("CurrentVersion ok = %v, err = %v; expected absent", ok, err)
		}
	})

	t.Run("NoManifest", func(t *testing.T) {
		w := NewWebpack(Config{Dir: t.TempDir()})
		_, ok, err := w.CurrentVersion(ctx)
		if err != nil || ok {
			t.Errorf("CurrentVersion ok = %v, err = %v; expected absent", ok, err)
		}
	})
}

func TestWebpackSetVersionPreservesOtherLines(t *testing.T) {
	w, path := writeManifest(t, manifest)

	if err := w.SetVersion(context.Background(), "1.2.0.RELEASE"); err != nil {
		t.Fatalf("SetVersion returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := `{
  "name": "dashboard",
  "version": "1.2.0.RELEASE",
  "private": true,
  "scripts": {
    "build": "webpack --mode production"
  }
}
`
	if string(data) != want {
		t.Errorf("manifest after SetVersion:\n%s\nexpected:\n%s", data, want)
	}
}

func TestWebpackSetVersionWithoutTrailingComma(t *testing.T) {
	w, path := writeManifest(t, "{\n\t\"name\": \"x\",\n\t\"version\": \"0.1.0\"\n}")

	if err := w.SetVersion(context.Background(), "0.2.0-SNAPSHOT"); err != nil {
		t.Fatalf("SetVersion returned error: %v", err)
	}

	data, _ := os.ReadFile(path)
	want := "{\n\t\"name\": \"x\",\n\t\"version\": \"0.2.0-SNAPSHOT\"\n}"
	if string(data) != want {
		t.Errorf("manifest = %q, expected %q", data, want)
	}
}

func TestWebpackSetVersionKeepsTextAfterValue(t *testing.T) {
	w, path := writeManifest(t, "{ \"name\": \"x\",\n  \"version\": \"1.0.0-SNAPSHOT\" }\n")

	if err := w.SetVersion(context.Background(), "1.0.0.RELEASE"); err != nil {
		t.Fatalf("SetVersion returned error: %v", err)
	}

	data, _ := os.ReadFile(path)
	want := "{ \"name\": \"x\",\n  \"version\": \"1.0.0.RELEASE\" }\n"
	if string(data) != want {
		t.Errorf("manifest = %q, expected %q", data, want)
	}
}

func TestWebpackSetVersionErrors(t *testing.T) {
	ctx := context.Background()

	w := NewWebpack(Config{Dir: t.TempDir()})
	if err := w.SetVersion(ctx, "1.0.0"); !errors.Is(err, kerrors.ErrManifestNotFound) {
		t.Errorf("SetVersion without manifest error = %v, expected ErrManifestNotFound", err)
	}

	w, _ = writeManifest(t, "{\n  \"name\": \"x\"\n}\n")
	if err := w.SetVersion(ctx, "1.0.0"); !errors.Is(err, kerrors.ErrVersionNotFound) {
		t.Errorf("SetVersion without version line error = %v, expected ErrVersionNotFound", err)
	}
}

func TestWebpackVerify(t *testing.T) {
	w, _ := writeManifest(t, manifest)
	if err := w.Verify(context.Background()); err != nil {
		t.Errorf("Verify returned error: %v", err)
	}

	missing := NewWebpack(Config{Dir: t.TempDir(), Manifest: "app/package.json"})
	if err := missing.Verify(context.Background()); !errors.Is(err, kerrors.ErrManifestNotFound) {
		t.Errorf("Verify error = %v, expected ErrManifestNotFound", err)
	}
}
