package steps

import (
	"os"
	"path/filepath"
	"testing"

	render_ctx "github.com/projgen/projgen/cli/render/context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareOutputDir(t *testing.T) {
	tmpDir := t.TempDir()
	outputDir := filepath.Join(tmpDir, "output")
	require.NoError(t, os.MkdirAll(filepath.Join(outputDir, "stale"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(outputDir, "stale.txt"), []byte("x"), 0644))

	renderCtx := render_ctx.RenderCtx{
		ProjectPath: filepath.Join(tmpDir, "projects", "app"),
		OutputDir:   outputDir,
	}
	renderState := NewRenderState()
	require.NoError(t, PrepareOutputDir{}.Run(&renderCtx, &renderState))

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPrepareOutputDirRefuses(t *testing.T) {
	tmpDir := t.TempDir()
	outputDir := filepath.Join(tmpDir, "output")
	require.NoError(t, os.MkdirAll(outputDir, 0755))
	keptFile := filepath.Join(outputDir, "kept.txt")
	require.NoError(t, os.WriteFile(keptFile, []byte("x"), 0644))

	renderState := NewRenderState()

	renderCtx := render_ctx.RenderCtx{
		ProjectPath: filepath.Join(outputDir, "app"),
		OutputDir:   outputDir,
	}
	assert.ErrorContains(t, PrepareOutputDir{}.Run(&renderCtx, &renderState),
		"is located in the output directory")

	renderCtx = render_ctx.RenderCtx{
		ProjectPath: tmpDir,
		OutputDir:   outputDir,
	}
	assert.ErrorContains(t, PrepareOutputDir{}.Run(&renderCtx, &renderState),
		"is located in the project")

	assert.FileExists(t, keptFile)
}
