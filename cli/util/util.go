package util

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/apex/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// ArgError represents command line arguments error.
type ArgError struct {
	msg string
}

// Error returns error message.
func (e ArgError) Error() string {
	return e.msg
}

// NewArgError creates and returns new argument error.
func NewArgError(text string) error {
	return &ArgError{text}
}

// VersionFunc is a type of function that return
// string with current projgen version.
type VersionFunc func(bool, bool) string

// InternalError shows error information, version of projgen and call stack.
func InternalError(format string, f VersionFunc, err ...interface{}) error {
	errorFmt := `whoops! It looks like something is wrong with this version of projgen.
Error: %s
Version: %s
Stacktrace:
%s`
	version := f(false, false)

	return fmt.Errorf(errorFmt, fmt.Sprintf(format, err...), version, debug.Stack())
}

// ParseYAML parse yaml file at specified path.
func ParseYAML(path string) (map[string]interface{}, error) {
	fileContent, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(`failed to read "%s" file: %s`, path, err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(fileContent, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %s", err)
	}

	return raw, nil
}

// WriteYaml writes o to fileName as a YAML document.
func WriteYaml(fileName string, o interface{}) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Warnf("Failed to close a file '%s': %s", file.Name(), err)
		}
	}()

	if err = yaml.NewEncoder(file).Encode(o); err != nil {
		return err
	}
	return nil
}

// AskConfirm asks the question until the user answers yes or no.
func AskConfirm(ioReader io.Reader, question string) (bool, error) {
	reader := bufio.NewReader(ioReader)

	for {
		fmt.Printf("%s [y/n]: ", question)

		resp, err := reader.ReadString('\n')
		resp = strings.ToLower(strings.TrimSpace(resp))
		if err != nil {
			return false, err
		}

		if resp == "y" || resp == "yes" {
			return true, nil
		}

		if resp == "n" || resp == "no" {
			return false, nil
		}
	}
}

// IsDir checks if filePath is a directory. Returns true if the directory exists.
func IsDir(filePath string) bool {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return false
	}

	return fileInfo.IsDir()
}

// IsSubPath reports whether path is equal to parent or is located inside it.
// Both paths must be absolute and clean.
func IsSubPath(parent, path string) bool {
	rel, err := filepath.Rel(parent, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// CreateDirectory create a directory with existence and error checks.
func CreateDirectory(dirName string, fileMode os.FileMode) error {
	stat, err := os.Stat(dirName)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	} else {
		if !stat.IsDir() {
			return fmt.Errorf("'%s' already exists and is not a directory", dirName)
		}
		return nil
	}
	if err = os.MkdirAll(dirName, fileMode); err != nil {
		return err
	}
	return nil
}

// ReplaceDirectory removes dirName with all its content and creates it again empty.
// File system root and directories containing the current working directory
// are never removed.
func ReplaceDirectory(dirName string, fileMode os.FileMode) error {
	absDir, err := filepath.Abs(dirName)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %s", err)
	}
	if filepath.Dir(absDir) == absDir {
		return fmt.Errorf("refusing to remove the root directory %q", absDir)
	}
	if cwd, err := os.Getwd(); err == nil && IsSubPath(absDir, cwd) {
		return fmt.Errorf("refusing to remove %q: it contains the current working directory",
			absDir)
	}

	stat, err := os.Lstat(absDir)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		return os.MkdirAll(absDir, fileMode)
	}
	if !stat.IsDir() {
		return fmt.Errorf("'%s' already exists and is not a directory", absDir)
	}

	log.Debugf("Removing %s", absDir)
	if err = os.RemoveAll(absDir); err != nil {
		return fmt.Errorf("failed to remove %q: %s", absDir, err)
	}
	return os.MkdirAll(absDir, fileMode)
}

// GetYamlFileName searches for file with .yaml or .yml extension, based on the file name provided.
// If mustExist flag is set and no yaml files are found, ErrNotExists error is returned,
// passed fileName is returned otherwise.
func GetYamlFileName(fileName string, mustExist bool) (string, error) {
	fileBaseName := fileName
	switch filepath.Ext(fileName) {
	case ".yaml":
		fileBaseName = strings.TrimSuffix(fileName, ".yaml")
	case ".yml":
		fileBaseName = strings.TrimSuffix(fileName, ".yml")
	case ".":
		fileBaseName = strings.TrimSuffix(fileName, ".")
	case "":
		fileBaseName = fileName
	default:
		return "", fmt.Errorf("provided file '%s' has no .yaml/.yml extension", fileName)
	}
	foundYamlFiles := []string{}
	if foundFiles, err := filepath.Glob(fmt.Sprintf("%s.y*ml", fileBaseName)); err == nil {
		for _, fileName := range foundFiles {
			switch filepath.Ext(fileName) {
			case ".yaml", ".yml":
				foundYamlFiles = append(foundYamlFiles, fileName)
			}
		}
	} else {
		return "", err
	}
	yamlFilesCount := len(foundYamlFiles)
	if yamlFilesCount > 1 {
		return "", fmt.Errorf("more than one YAML files are found:\n%s\nAmbiguous selection",
			strings.Join(foundYamlFiles, ", "))
	} else if yamlFilesCount == 1 {
		return foundYamlFiles[0], nil
	} else if !mustExist {
		return "", nil
	}

	return "", os.ErrNotExist
}

// RelativeToCurrentWorkingDir returns a path relative to current working dir.
// In case of error, fullpath is returned.
func RelativeToCurrentWorkingDir(fullpath string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return fullpath
	}
	relPath, err := filepath.Rel(cwd, fullpath)
	if err != nil {
		return fullpath
	}
	return relPath
}

// HandleCmdErr handles an error returned by command implementation.
// If received error is of an ArgError type, usage help is printed.
func HandleCmdErr(cmd *cobra.Command, err error) {
	if err != nil {
		var argError *ArgError
		if errors.As(err, &argError) {
			log.Error(argError.Error())
			cmd.Usage()
			os.Exit(1)
		}
		if errors.Is(err, ErrCmdAbort) {
			os.Exit(1)
		}
		log.Fatalf(err.Error())
	}
}
