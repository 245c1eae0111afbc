package pandoc_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/pinemd/pandoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records command invocations instead of executing them.
type fakeRunner struct {
	tools map[string]string // installed tool name -> resolved path
	runs  [][]string
	runFn func(name string, args []string) (string, error)
}

func (r *fakeRunner) LookPath(name string) (string, error) {
	if path, ok := r.tools[name]; ok {
		return path, nil
	}
	return "", errors.New("executable file not found in $PATH")
}

func (r *fakeRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	r.runs = append(r.runs, append([]string{name}, args...))
	if r.runFn != nil {
		return r.runFn(name, args)
	}
	return "", nil
}

func TestExporter_Export_PandocMissing(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	e := pandoc.NewExporterWithRunner(runner, nil)

	require.NoError(t, e.Export(context.Background(), "manual.md"))
	assert.Empty(t, runner.runs)
}

func TestExporter_Export_RunsPandocWithExpectedArgs(t *testing.T) {
	t.Parallel()

	mdPath := filepath.Join(t.TempDir(), "manual.md")
	runner := &fakeRunner{tools: map[string]string{"pandoc": "/usr/bin/pandoc"}}
	e := pandoc.NewExporterWithRunner(runner, nil)

	require.NoError(t, e.Export(context.Background(), mdPath))

	require.Len(t, runner.runs, 1)
	pdfPath := strings.TrimSuffix(mdPath, ".md") + ".pdf"
	assert.Equal(t, []string{
		"/usr/bin/pandoc",
		mdPath,
		"--standalone",
		"--toc",
		"--pdf-engine=xelatex",
		"-V", "geometry:margin=1in",
		"-o", pdfPath,
	}, runner.runs[0])
}

func TestExporter_Export_PandocFailure(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{
		tools: map[string]string{"pandoc": "/usr/bin/pandoc"},
		runFn: func(string, []string) (string, error) {
			return "xelatex not found\n", errors.New("exit status 1")
		},
	}
	e := pandoc.NewExporterWithRunner(runner, nil)

	err := e.Export(context.Background(), "manual.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pandoc: xelatex not found")
}

func TestExporter_Export_Recompresses(t *testing.T) {
	t.Parallel()

	mdPath := filepath.Join(t.TempDir(), "manual.md")
	pdfPath := strings.TrimSuffix(mdPath, ".md") + ".pdf"

	runner := &fakeRunner{tools: map[string]string{
		"pandoc": "/usr/bin/pandoc",
		"gs":     "/usr/bin/gs",
	}}
	runner.runFn = func(name string, args []string) (string, error) {
		if name != "/usr/bin/gs" {
			return "", nil
		}
		for _, arg := range args {
			if out, ok := strings.CutPrefix(arg, "-sOutputFile="); ok {
				return "", os.WriteFile(out, []byte("compressed"), 0644)
			}
		}
		return "", errors.New("missing -sOutputFile argument")
	}
	e := pandoc.NewExporterWithRunner(runner, nil)

	require.NoError(t, e.Export(context.Background(), mdPath))
	require.Len(t, runner.runs, 2)

	// The compressed temporary replaces the PDF in place.
	raw, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.Equal(t, "compressed", string(raw))
	assert.NoFileExists(t, pdfPath+".tmp")
}

func TestExporter_Export_GhostscriptFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{tools: map[string]string{
		"pandoc": "/usr/bin/pandoc",
		"gs":     "/usr/bin/gs",
	}}
	runner.runFn = func(name string, _ []string) (string, error) {
		if name == "/usr/bin/gs" {
			return "gs crashed", errors.New("exit status 1")
		}
		return "", nil
	}
	e := pandoc.NewExporterWithRunner(runner, nil)

	require.NoError(t, e.Export(context.Background(), filepath.Join(t.TempDir(), "manual.md")))
}
