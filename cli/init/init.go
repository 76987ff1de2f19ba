package init

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/projgen/projgen/cli/config"
	"github.com/projgen/projgen/cli/configure"
	"github.com/projgen/projgen/cli/util"
)

const (
	defaultDirPermissions  = os.FileMode(0750)
	defaultFilePermissions = os.FileMode(0640)

	// ExampleProjectName is the name of the project created with WithExample option.
	ExampleProjectName = "example"
)

// InitCtx contains information for projgen config creation.
type InitCtx struct {
	// ForceMode, if set, projgen config is re-written without a question.
	ForceMode bool
	// WithExample, if set, an example project is created in the projects directory.
	WithExample bool
	// reader to use for reading user input.
	reader io.Reader
}

// exampleFiles is the content of the example project. Keys are slash separated
// paths relative to the project directory.
var exampleFiles = map[string]string{
	configure.DefaultContextFile: `- model: backend
  name: order service
  port: 8080
- model: frontend
  name: order ui
`,
	"README.md" + configure.DefaultTemplateSuffix: `# {{ .name | upper_camel_case }}

Generated for the "{{ .model }}" model.
{{ if .port }}
Listens on port {{ .port }}.
{{ end }}`,
	"{{ .name | underscore }}/settings*ini" + configure.DefaultTemplateSuffix: `[{{ .name | dots }}]
port = {{ .port }}
`,
	"{{ .name | underscore }}/.keep": "",
}

// createDirectories creates directories specified in dirList.
func createDirectories(dirList []string) error {
	for _, dirName := range dirList {
		if dirName == "" {
			continue
		}
		if err := util.CreateDirectory(dirName, defaultDirPermissions); err != nil {
			return err
		}
		log.Debugf("'%s' directory is created.", dirName)
	}
	return nil
}

// generateExampleProject writes the example project into projectsDir.
func generateExampleProject(projectsDir string) error {
	projectDir := filepath.Join(projectsDir, ExampleProjectName)
	if util.IsDir(projectDir) {
		log.Warnf("Project %q already exists, skipping the example.", projectDir)
		return nil
	}

	for relPath, content := range exampleFiles {
		fileName := filepath.Join(projectDir, filepath.FromSlash(relPath))
		if err := createDirectories([]string{filepath.Dir(fileName)}); err != nil {
			return err
		}
		if err := os.WriteFile(fileName, []byte(content), defaultFilePermissions); err != nil {
			return fmt.Errorf("failed to write %q: %w", fileName, err)
		}
	}
	log.Infof("Example project is created in '%s'", projectDir)
	return nil
}

// generateEnv generates environment config in configPath and creates the
// directories it refers to.
func generateEnv(configPath string, withExample bool) error {
	cfg := config.Config{CliConfig: configure.GetDefaultCliOpts()}
	if err := util.WriteYaml(configPath, cfg); err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	directoriesToCreate := []string{filepath.Join(configDir, cfg.CliConfig.Output)}
	for _, projectsDir := range cfg.CliConfig.Projects {
		directoriesToCreate = append(directoriesToCreate, filepath.Join(configDir, projectsDir))
	}
	if err := createDirectories(directoriesToCreate); err != nil {
		return err
	}

	if withExample {
		return generateExampleProject(filepath.Join(configDir, cfg.CliConfig.Projects[0]))
	}
	return nil
}

// FillCtx initializes init context.
func FillCtx(initCtx *InitCtx) {
	initCtx.reader = os.Stdin
}

// checkExistingConfig checks projgen config for existence and asks for confirmation to
// overwrite. Returns file name if init process can continue, and empty string otherwise.
// In case of error, non-nil error returned as second returned value.
func checkExistingConfig(initCtx *InitCtx) (string, error) {
	configName, err := util.GetYamlFileName(configure.ConfigName, false)
	if err != nil {
		return "", err
	}
	if configName == "" {
		return configure.ConfigName, nil
	}

	if !initCtx.ForceMode {
		confirmed, err := util.AskConfirm(initCtx.reader,
			fmt.Sprintf("%s already exists. Overwrite?", configName))
		if errors.Is(err, io.EOF) {
			return "", util.ErrCmdAbort
		}
		if err != nil {
			return "", err
		}
		if !confirmed {
			log.Info("Init is cancelled by user.")
			return "", nil
		}
	}
	if err = os.Remove(configName); err != nil {
		return "", err
	}
	return configName, nil
}

// Run creates projgen environment config in the current directory.
func Run(initCtx *InitCtx) error {
	if initCtx.reader == nil {
		initCtx.reader = os.Stdin
	}

	configName, err := checkExistingConfig(initCtx)
	if configName == "" {
		return err
	}

	if err := generateEnv(configName, initCtx.WithExample); err != nil {
		return err
	}

	log.Infof("Environment config is written to '%s'", configName)

	return nil
}
