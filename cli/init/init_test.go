package init

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/projgen/projgen/cli/config"
	"github.com/projgen/projgen/cli/configure"
	"github.com/projgen/projgen/cli/project"
	"github.com/projgen/projgen/cli/render"
	render_ctx "github.com/projgen/projgen/cli/render/context"
	"github.com/projgen/projgen/cli/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkDefaultEnv(t *testing.T, workDir string) {
	t.Helper()
	cliOpts, configPath, err := configure.GetCliOpts(configure.ConfigName)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(workDir, configure.ConfigName), configPath)

	assert.Equal(t, config.FieldStringArrayType{filepath.Join(workDir, configure.ProjectsPath)},
		cliOpts.Projects)
	assert.Equal(t, filepath.Join(workDir, configure.OutputPath), cliOpts.Output)
	assert.Equal(t, configure.DefaultTemplateSuffix, cliOpts.TemplateSuffix)
	assert.Equal(t, configure.DefaultContextFile, cliOpts.ContextFile)
	assert.Equal(t, 100, cliOpts.Log.MaxSize)
	assert.Equal(t, 8, cliOpts.Log.MaxAge)
	assert.Equal(t, 10, cliOpts.Log.MaxBackups)

	assert.DirExists(t, configure.ProjectsPath)
	assert.DirExists(t, configure.OutputPath)
}

func TestInitDefault(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	require.NoError(t, Run(&InitCtx{}))
	require.FileExists(t, configure.ConfigName)
	checkDefaultEnv(t, tmpDir)
	assert.NoDirExists(t, filepath.Join(configure.ProjectsPath, ExampleProjectName))
}

func TestInitExistingConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	const customConfig = "projgen:\n  output: custom\n"
	require.NoError(t, os.WriteFile(configure.ConfigName, []byte(customConfig), 0644))

	// Declined.
	initCtx := InitCtx{reader: strings.NewReader("n\n")}
	require.NoError(t, Run(&initCtx))
	content, err := os.ReadFile(configure.ConfigName)
	require.NoError(t, err)
	assert.Equal(t, customConfig, string(content))

	// Confirmed.
	initCtx = InitCtx{reader: strings.NewReader("y\n")}
	require.NoError(t, Run(&initCtx))
	checkDefaultEnv(t, tmpDir)

	// Forced.
	require.NoError(t, os.WriteFile(configure.ConfigName, []byte(customConfig), 0644))
	initCtx = InitCtx{ForceMode: true, reader: strings.NewReader("")}
	require.NoError(t, Run(&initCtx))
	checkDefaultEnv(t, tmpDir)
}

func TestInitAborted(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	require.NoError(t, os.WriteFile(configure.ConfigName, []byte("projgen:\n"), 0644))
	err := Run(&InitCtx{reader: strings.NewReader("")})
	require.ErrorIs(t, err, util.ErrCmdAbort)
	assert.FileExists(t, configure.ConfigName)
	assert.NoDirExists(t, configure.ProjectsPath)
}

func TestInitExistingYml(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	require.NoError(t, os.WriteFile("projgen.yml", []byte("projgen:\n"), 0644))
	require.NoError(t, Run(&InitCtx{ForceMode: true}))
	assert.FileExists(t, "projgen.yml")
	assert.NoFileExists(t, configure.ConfigName)
}

func TestInitExampleRenders(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	require.NoError(t, Run(&InitCtx{WithExample: true}))
	exampleDir := filepath.Join(tmpDir, configure.ProjectsPath, ExampleProjectName)
	require.DirExists(t, exampleDir)

	contexts, err := project.LoadContexts(filepath.Join(exampleDir, configure.DefaultContextFile))
	require.NoError(t, err)
	require.Len(t, contexts, 2)

	cliOpts, _, err := configure.GetCliOpts(configure.ConfigName)
	require.NoError(t, err)
	renderCtx := render_ctx.RenderCtx{}
	require.NoError(t, render.FillCtx(cliOpts, &renderCtx, []string{ExampleProjectName}, nil))
	require.NoError(t, render.Run(&renderCtx))

	outputDir := filepath.Join(tmpDir, configure.OutputPath)
	readme, err := os.ReadFile(filepath.Join(outputDir, "backend", "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(readme), "# OrderService\n")
	assert.Contains(t, string(readme), "Listens on port 8080.")

	settings, err := os.ReadFile(filepath.Join(outputDir, "backend", "order_service",
		"settings.ini"))
	require.NoError(t, err)
	assert.Equal(t, "[order.service]\nport = 8080\n", string(settings))

	// Unknown port is kept as is.
	settings, err = os.ReadFile(filepath.Join(outputDir, "frontend", "order_ui",
		"settings.ini"))
	require.NoError(t, err)
	assert.Equal(t, "[order.ui]\nport = {{ .port }}\n", string(settings))
	assert.FileExists(t, filepath.Join(outputDir, "frontend", "order_ui", ".keep"))
	assert.NoFileExists(t, filepath.Join(outputDir, "frontend", configure.DefaultContextFile))

	// The example is not overwritten.
	require.NoError(t, os.WriteFile(filepath.Join(exampleDir, "README.md.j2"), []byte("x"), 0644))
	require.NoError(t, Run(&InitCtx{ForceMode: true, WithExample: true}))
	content, err := os.ReadFile(filepath.Join(exampleDir, "README.md.j2"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(content))
}
