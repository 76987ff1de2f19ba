//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	goPackageName = "github.com/projgen/projgen/cli"

	asmflags = "all=-trimpath=${PWD}"
	gcflags  = "all=-trimpath=${PWD}"

	packagePath = "./cli"
)

var (
	ldflags = []string{
		"-X ${PACKAGE}/version.gitTag=${GIT_TAG}",
		"-X ${PACKAGE}/version.gitCommit=${GIT_COMMIT}",
		"-X ${PACKAGE}/version.versionLabel=${VERSION_LABEL}",
	}
	goExecutableName      = "go"
	projgenExecutableName = "projgen"

	Aliases = map[string]any{
		"build": Build.Release,
		"unit":  Unit.Default,
	}
)

func init() {
	var err error

	if specifiedGoExe := os.Getenv("GOEXE"); specifiedGoExe != "" {
		goExecutableName = specifiedGoExe
	}

	if specifiedExe := os.Getenv("PROJGENEXE"); specifiedExe != "" {
		projgenExecutableName = specifiedExe
	} else {
		if projgenExecutableName, err = filepath.Abs(projgenExecutableName); err != nil {
			panic(err)
		}
	}
}

type optsUpdater func([]string) ([]string, error)

// appendFlags appends flags passed in args.
func appendFlags(flags ...string) optsUpdater {
	return func(args []string) ([]string, error) {
		return append(args, flags...), nil
	}
}

// appendLdFlags appends linker flags.
func appendLdFlags(flags ...string) optsUpdater {
	return func(args []string) ([]string, error) {
		buildLdflags := make([]string, len(ldflags))
		copy(buildLdflags, ldflags)
		buildLdflags = append(buildLdflags, flags...)
		return append(append(args, "-ldflags"), strings.Join(buildLdflags, " ")), nil
	}
}

// Building projgen executable.
func buildProjgen(argUpdaters ...optsUpdater) error {
	args := []string{"build", "-o", projgenExecutableName}
	var err error
	for _, updateArguments := range argUpdaters {
		if args, err = updateArguments(args); err != nil {
			return err
		}
	}
	args = append(args,
		"-asmflags", asmflags,
		"-gcflags", gcflags,
		packagePath)
	err = sh.RunWith(getBuildEnvironment(), goExecutableName, args...)
	if err != nil {
		return fmt.Errorf("Failed to build projgen executable: %s", err)
	}

	return nil
}

type Build mg.Namespace

// Building release projgen executable without debug info.
func (Build) Release() error {
	fmt.Println("Building release projgen...")

	return buildProjgen(appendLdFlags("-s", "-w"))
}

// Building debug projgen executable.
func (Build) Debug() error {
	fmt.Println("Building debug projgen...")

	return buildProjgen(appendLdFlags())
}

// Building projgen executable with coverage.
func (Build) Coverage() error {
	fmt.Println("Building release projgen with coverage...")

	err := buildProjgen(appendFlags("-cover"), appendLdFlags("-s", "-w"))
	if err != nil {
		return err
	}
	fmt.Println(`Set coverage data destination directory (must exist) and run projgen:
	GOCOVERDIR=./<coverage_dest_dir> projgen <opts>`)
	return nil
}

type Lint mg.Namespace

// Run golang linters.
func (Lint) Golang() error {
	fmt.Println("Running go vet...")

	if err := sh.RunV(goExecutableName, "vet", "./..."); err != nil {
		return err
	}

	fmt.Println("Running golangci-lint...")

	return sh.RunV("golangci-lint", "run", "--config=golangci-lint.yml")
}

type Unit mg.Namespace

func runUnitTests(flags []string) error {
	args := []string{"test"}
	if mg.Verbose() {
		args = append(args, "-v")
	}
	args = append(args, "./...")
	args = append(args, flags...)

	return sh.RunV(goExecutableName, args...)
}

// Run unit tests.
func (Unit) Default() error {
	fmt.Println("Running unit tests...")

	return runUnitTests([]string{})
}

// Run unit tests with the race detector.
func (Unit) Race() error {
	fmt.Println("Running unit tests with the race detector...")

	return runUnitTests([]string{"-race"})
}

// Run unit tests with code coverage.
func (Unit) Coverage() error {
	fmt.Println("Running unit tests with code coverage...")

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	coverDir := filepath.Join(cwd, "coverage", "unit")
	if err := os.MkdirAll(coverDir, 0o750); err != nil {
		return err
	}

	err = runUnitTests([]string{
		"-cover",
		"-args", fmt.Sprintf(`-test.gocoverdir=%s`, coverDir),
	})
	if err != nil {
		return err
	}
	relCoverDir, err := filepath.Rel(cwd, coverDir)
	if err != nil {
		relCoverDir = coverDir
	}
	fmt.Printf("Coverage data is saved to %q\n", relCoverDir)
	fmt.Printf(`Example command for analysis:
	go tool covdata func -i %q
`, relCoverDir)

	return nil
}

// Run linters and unit tests.
func Test() {
	mg.SerialDeps(Lint.Golang, Unit.Default)
}

// Cleanup directory.
func Clean() {
	fmt.Println("Cleaning directory...")

	os.Remove(projgenExecutableName)
	os.RemoveAll("coverage")
}

// getBuildEnvironment return map with build environment variables.
func getBuildEnvironment() map[string]string {
	var err error

	var currentDir string
	var gitTag string
	var gitCommit string

	if currentDir, err = os.Getwd(); err != nil {
		log.Warnf("Failed to get current directory: %s", err)
	}

	if _, err := exec.LookPath("git"); err == nil {
		gitTag, _ = sh.Output("git", "describe", "--tags")
		gitCommit, _ = sh.Output("git", "rev-parse", "--short", "HEAD")
	}

	return map[string]string{
		"PACKAGE":       goPackageName,
		"GIT_TAG":       gitTag,
		"GIT_COMMIT":    gitCommit,
		"VERSION_LABEL": os.Getenv("VERSION_LABEL"),
		"PWD":           currentDir,
	}
}
