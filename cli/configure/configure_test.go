package configure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/projgen/projgen/cli/cmdcontext"
	"github.com/projgen/projgen/cli/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	configPath := filepath.Join(dir, ConfigName)
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	return configPath
}

func TestConfigureCliExplicitPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeConfig(t, tmpDir, "projgen:\n")

	cmdCtx := cmdcontext.CmdCtx{}
	cmdCtx.Cli.ConfigPath = configPath
	require.NoError(t, Cli(&cmdCtx))
	assert.Equal(t, configPath, cmdCtx.Cli.ConfigPath)

	cmdCtx.Cli.ConfigPath = filepath.Join(tmpDir, "missing.yaml")
	assert.ErrorContains(t, Cli(&cmdCtx), "specified path to the configuration file is invalid")
}

func TestConfigureCliEnv(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeConfig(t, tmpDir, "projgen:\n")
	t.Setenv(configPathEnvName, configPath)

	cmdCtx := cmdcontext.CmdCtx{}
	require.NoError(t, Cli(&cmdCtx))
	assert.Equal(t, configPath, cmdCtx.Cli.ConfigPath)

	// Command line path takes precedence over the environment.
	otherDir := t.TempDir()
	otherPath := writeConfig(t, otherDir, "projgen:\n")
	cmdCtx.Cli.ConfigPath = otherPath
	require.NoError(t, Cli(&cmdCtx))
	assert.Equal(t, otherPath, cmdCtx.Cli.ConfigPath)
}

func TestConfigureCliSearch(t *testing.T) {
	t.Setenv(configPathEnvName, "")
	tmpDir := t.TempDir()
	configPath := writeConfig(t, tmpDir, "projgen:\n")
	nestedDir := filepath.Join(tmpDir, "a", "b")
	require.NoError(t, os.MkdirAll(nestedDir, 0755))
	t.Chdir(nestedDir)

	cmdCtx := cmdcontext.CmdCtx{}
	require.NoError(t, Cli(&cmdCtx))
	assert.Equal(t, configPath, cmdCtx.Cli.ConfigPath)

	// Both extensions in the same directory are ambiguous.
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "projgen.yml"), []byte{}, 0644))
	cmdCtx.Cli.ConfigPath = ""
	assert.ErrorContains(t, Cli(&cmdCtx), "more than one YAML files are found")
}

func TestAdjustPathWithConfigLocation(t *testing.T) {
	configDir := t.TempDir()

	testCases := []struct {
		filePath       string
		defaultDirName string
		expected       string
	}{
		{"", "projects", filepath.Join(configDir, "projects")},
		{"", "", ""},
		{"/abs/path", "projects", "/abs/path"},
		{"rel/path", "projects", filepath.Join(configDir, "rel", "path")},
		{"../up", "projects", filepath.Join(filepath.Dir(configDir), "up")},
	}

	for _, tc := range testCases {
		actual, err := adjustPathWithConfigLocation(tc.filePath, configDir, tc.defaultDirName)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, actual, "path %q", tc.filePath)
	}
}

func TestGetCliOptsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	cliOpts, configPath, err := GetCliOpts(filepath.Join(tmpDir, ConfigName))
	require.NoError(t, err)
	assert.Empty(t, configPath)

	assert.Equal(t, config.FieldStringArrayType{filepath.Join(tmpDir, ProjectsPath)},
		cliOpts.Projects)
	assert.Equal(t, filepath.Join(tmpDir, OutputPath), cliOpts.Output)
	assert.Equal(t, DefaultTemplateSuffix, cliOpts.TemplateSuffix)
	assert.Equal(t, DefaultContextFile, cliOpts.ContextFile)
	assert.False(t, cliOpts.CleanModels)
	require.NotNil(t, cliOpts.Log)
	assert.Empty(t, cliOpts.Log.File)
	assert.Equal(t, defaultLogMaxSize, cliOpts.Log.MaxSize)
}

func TestGetCliOptsFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeConfig(t, tmpDir, `projgen:
  projects: templates
  output: /srv/generated
  template_suffix: .tmpl
  clean_models: true
  log:
    file: logs/projgen.log
    maxsize: 5
`)

	cliOpts, actualPath, err := GetCliOpts(configPath)
	require.NoError(t, err)
	assert.Equal(t, configPath, actualPath)

	assert.Equal(t, config.FieldStringArrayType{filepath.Join(tmpDir, "templates")},
		cliOpts.Projects)
	assert.Equal(t, "/srv/generated", cliOpts.Output)
	assert.Equal(t, ".tmpl", cliOpts.TemplateSuffix)
	assert.Equal(t, DefaultContextFile, cliOpts.ContextFile)
	assert.True(t, cliOpts.CleanModels)
	assert.Equal(t, filepath.Join(tmpDir, "logs", "projgen.log"), cliOpts.Log.File)
	assert.Equal(t, 5, cliOpts.Log.MaxSize)
}

func TestGetCliOptsProjectsList(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeConfig(t, tmpDir, `projgen:
  projects:
    - first
    - /abs/second
`)

	cliOpts, _, err := GetCliOpts(configPath)
	require.NoError(t, err)
	assert.Equal(t, config.FieldStringArrayType{
		filepath.Join(tmpDir, "first"),
		"/abs/second",
	}, cliOpts.Projects)
	assert.Equal(t, filepath.Join(tmpDir, OutputPath), cliOpts.Output)
}

func TestGetCliOptsErrors(t *testing.T) {
	tmpDir := t.TempDir()

	configPath := writeConfig(t, tmpDir, "projgen: [\n")
	_, _, err := GetCliOpts(configPath)
	assert.ErrorContains(t, err, "failed to parse projgen configuration")

	configPath = writeConfig(t, tmpDir, "projgen:\n  clean_models: [1, 2]\n")
	_, _, err = GetCliOpts(configPath)
	assert.ErrorContains(t, err, "failed to parse projgen configuration")

	configPath = writeConfig(t, tmpDir, "projgen:\n  projects: same\n  output: same\n")
	_, _, err = GetCliOpts(configPath)
	assert.ErrorContains(t, err, "is also a projects directory")
}

func TestValidateCliOpts(t *testing.T) {
	valid := func() *config.CliOpts {
		cliOpts := GetDefaultCliOpts()
		cliOpts.Projects = config.FieldStringArrayType{"/p"}
		cliOpts.Output = "/o"
		return cliOpts
	}

	require.NoError(t, ValidateCliOpts(valid()))

	cliOpts := valid()
	cliOpts.ContextFile = filepath.Join("dir", "template.yaml")
	assert.ErrorContains(t, ValidateCliOpts(cliOpts), "context_file must be a file name")

	cliOpts = valid()
	cliOpts.TemplateSuffix = filepath.Join("a", ".j2")
	assert.ErrorContains(t, ValidateCliOpts(cliOpts), "template_suffix must not contain")

	cliOpts = valid()
	cliOpts.Output = "/p"
	assert.ErrorContains(t, ValidateCliOpts(cliOpts), "is also a projects directory")
}
