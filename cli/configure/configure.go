package configure

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/apex/log"
	"github.com/mitchellh/mapstructure"
	"github.com/projgen/projgen/cli/cmdcontext"
	"github.com/projgen/projgen/cli/config"
	"github.com/projgen/projgen/cli/util"
)

const (
	ConfigName = "projgen.yaml"
	// configPathEnvName is an environment variable that contains a path to
	// the configuration file.
	configPathEnvName = "PROJGEN_CFG"
)

const (
	ProjectsPath          = "projects"
	OutputPath            = "output"
	DefaultTemplateSuffix = ".j2"
	DefaultContextFile    = "template.yaml"

	defaultLogMaxSize    = 100
	defaultLogMaxAge     = 8
	defaultLogMaxBackups = 10
)

// GetDefaultCliOpts returns `CliOpts` filled with default values.
func GetDefaultCliOpts() *config.CliOpts {
	return &config.CliOpts{
		Projects:       config.NewSingleOrArray(ProjectsPath),
		Output:         OutputPath,
		TemplateSuffix: DefaultTemplateSuffix,
		ContextFile:    DefaultContextFile,
		CleanModels:    false,
		Log: &config.LogOpts{
			MaxSize:    defaultLogMaxSize,
			MaxAge:     defaultLogMaxAge,
			MaxBackups: defaultLogMaxBackups,
		},
	}
}

// adjustPathWithConfigLocation adjust provided filePath with configDir.
// Absolute filePath is returned as is. Relative filePath is calculated relative to configDir.
// If filePath is empty, defaultDirName is appended to configDir.
func adjustPathWithConfigLocation(filePath, configDir string,
	defaultDirName string,
) (string, error) {
	if filePath == "" {
		if defaultDirName == "" {
			return "", nil
		}
		return filepath.Abs(filepath.Join(configDir, defaultDirName))
	}
	if filepath.IsAbs(filePath) {
		return filePath, nil
	}
	return filepath.Abs(filepath.Join(configDir, filePath))
}

func adjustListPathWithConfigLocation(listPaths []string, configDir string,
	defaultDirName string,
) ([]string, error) {
	if len(listPaths) == 0 {
		listPaths = append(listPaths, defaultDirName)
	}

	result := make([]string, 0, len(listPaths))
	for _, path := range listPaths {
		path, err := adjustPathWithConfigLocation(path, configDir, defaultDirName)
		if err != nil {
			return result, err
		}
		result = append(result, path)
	}
	return result, nil
}

// updateCliOpts resolves all paths in config relative to specified location, and
// sets uninitialized values to defaults.
func updateCliOpts(cliOpts *config.CliOpts, configDir string) error {
	var err error

	if cliOpts.Projects, err = adjustListPathWithConfigLocation(cliOpts.Projects,
		configDir, ProjectsPath); err != nil {
		return err
	}
	if cliOpts.Output, err = adjustPathWithConfigLocation(cliOpts.Output, configDir,
		OutputPath); err != nil {
		return err
	}

	if cliOpts.TemplateSuffix == "" {
		cliOpts.TemplateSuffix = DefaultTemplateSuffix
	}
	if cliOpts.ContextFile == "" {
		cliOpts.ContextFile = DefaultContextFile
	}

	if cliOpts.Log == nil {
		cliOpts.Log = GetDefaultCliOpts().Log
	}
	if cliOpts.Log.File, err = adjustPathWithConfigLocation(cliOpts.Log.File, configDir,
		""); err != nil {
		return err
	}

	return nil
}

// ValidateCliOpts checks the options that can not be fixed with defaults.
func ValidateCliOpts(cliOpts *config.CliOpts) error {
	if strings.ContainsRune(cliOpts.ContextFile, filepath.Separator) {
		return fmt.Errorf("context_file must be a file name, got %q", cliOpts.ContextFile)
	}
	if strings.ContainsRune(cliOpts.TemplateSuffix, filepath.Separator) {
		return fmt.Errorf("template_suffix must not contain path separators, got %q",
			cliOpts.TemplateSuffix)
	}
	for _, projectsDir := range cliOpts.Projects {
		if projectsDir == cliOpts.Output {
			return fmt.Errorf("output directory %q is also a projects directory", projectsDir)
		}
	}
	return nil
}

func decodeStringAsArrayField(from, to reflect.Type, value interface{}) (
	interface{}, error,
) {
	if to != reflect.TypeOf(config.FieldStringArrayType{}) || from.Kind() != reflect.String {
		return value, nil
	}
	return []string{value.(string)}, nil
}

func decodeConfig(input map[string]any, cfg *config.Config) error {
	decoderConfig := mapstructure.DecoderConfig{
		Result:     cfg,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(decodeStringAsArrayField),
	}
	decoder, err := mapstructure.NewDecoder(&decoderConfig)
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// GetCliOpts returns projgen options from the config file
// located at path configurePath. Defaults are used if there is no config file.
func GetCliOpts(configurePath string) (*config.CliOpts, string, error) {
	cfg := config.Config{CliConfig: GetDefaultCliOpts()}
	configPath, err := util.GetYamlFileName(configurePath, true)
	if err == nil {
		if configPath, err = filepath.Abs(configPath); err != nil {
			return nil, "", fmt.Errorf("cannot determine config file path: %s", err)
		}
		rawConfigOpts, err := util.ParseYAML(configPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to parse projgen configuration: %s", err)
		}

		if err := decodeConfig(rawConfigOpts, &cfg); err != nil {
			return nil, "", fmt.Errorf("failed to parse projgen configuration: %s", err)
		}

		if cfg.CliConfig == nil {
			return nil, "",
				fmt.Errorf("failed to parse projgen configuration: missing projgen section")
		}
	} else if !os.IsNotExist(err) {
		return nil, "", fmt.Errorf("failed to get access to configuration file: %s", err)
	} else {
		configPath = ""
	}

	configDir := ""
	if configPath == "" {
		if configDir, err = os.Getwd(); err != nil {
			return cfg.CliConfig, configPath, err
		}
	} else {
		configDir = filepath.Dir(configPath)
	}

	if err = updateCliOpts(cfg.CliConfig, configDir); err != nil {
		return cfg.CliConfig, "", err
	}
	if err = ValidateCliOpts(cfg.CliConfig); err != nil {
		return cfg.CliConfig, "", fmt.Errorf("invalid projgen configuration: %s", err)
	}

	return cfg.CliConfig, configPath, nil
}

// Cli performs initial CLI configuration.
func Cli(cmdCtx *cmdcontext.CmdCtx) error {
	if cmdCtx.Cli.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	if cmdCtx.Cli.ConfigPath == "" {
		cmdCtx.Cli.ConfigPath = os.Getenv(configPathEnvName)
	}

	if cmdCtx.Cli.ConfigPath != "" {
		if _, err := os.Stat(cmdCtx.Cli.ConfigPath); err != nil {
			return fmt.Errorf("specified path to the configuration file is invalid: %s", err)
		}
		return nil
	}

	var err error
	if cmdCtx.Cli.ConfigPath, err = getConfigPath(ConfigName); err != nil {
		return fmt.Errorf("failed to get projgen config: %s", err)
	}
	return nil
}

// getConfigPath looks for the path to the projgen.yaml configuration file,
// looking through all directories from the current one to the root.
// Empty string is returned if there is no config file.
func getConfigPath(configName string) (string, error) {
	curDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to detect current directory: %s", err)
	}

	for {
		configPath, err := util.GetYamlFileName(filepath.Join(curDir, configName), true)
		if err == nil {
			return configPath, nil
		} else if !os.IsNotExist(err) {
			return "", err
		}

		parentDir := filepath.Dir(curDir)
		if parentDir == curDir {
			break
		}
		curDir = parentDir
	}

	return "", nil
}
