// Package project finds template projects and loads their rendering contexts.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/manifoldco/promptui"
	"github.com/projgen/projgen/cli/util"
)

const defaultDirPermissions = 0755

var (
	// ErrNoProjects is reported when there are no projects to choose from.
	ErrNoProjects = errors.New("no projects found")
	// ErrNoSelection is reported when the user does not choose a project.
	ErrNoSelection = errors.New("no project selected")
)

// Project is a directory with a template tree and a context file.
type Project struct {
	// Name is the project directory name.
	Name string
	// Path is the absolute path to the project directory.
	Path string
}

// EnsureDirs creates the directories that do not exist yet.
func EnsureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if util.IsDir(dir) {
			continue
		}
		log.Warnf("Directory %s does not exist, creating it.",
			util.RelativeToCurrentWorkingDir(dir))
		if err := util.CreateDirectory(dir, defaultDirPermissions); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	}
	return nil
}

// List returns the projects found in projectsDirs: every non-hidden subdirectory is a
// project. If the same name is found in several directories, the first one wins.
// Missing directories are skipped. The result is sorted by name.
func List(projectsDirs []string) ([]Project, error) {
	projects := make([]Project, 0)
	seen := make(map[string]bool)
	for _, projectsDir := range projectsDirs {
		entries, err := os.ReadDir(projectsDir)
		if err != nil {
			if os.IsNotExist(err) {
				log.Debugf("Projects directory %s does not exist.", projectsDir)
				continue
			}
			return nil, fmt.Errorf("failed to read projects directory %q: %w",
				projectsDir, err)
		}

		for _, entry := range entries {
			if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			if seen[entry.Name()] {
				log.Debugf("Project %s from %s is shadowed.", entry.Name(), projectsDir)
				continue
			}
			seen[entry.Name()] = true
			projectPath, err := filepath.Abs(filepath.Join(projectsDir, entry.Name()))
			if err != nil {
				return nil, err
			}
			projects = append(projects, Project{Name: entry.Name(), Path: projectPath})
		}
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].Name < projects[j].Name
	})
	return projects, nil
}

// Find returns the project with the name.
func Find(projects []Project, name string) (Project, bool) {
	for _, project := range projects {
		if project.Name == name {
			return project, true
		}
	}
	return Project{}, false
}

// Names returns names of the projects.
func Names(projects []Project) []string {
	names := make([]string, 0, len(projects))
	for _, project := range projects {
		names = append(names, project.Name)
	}
	return names
}

// Choose shows a menu in terminal to choose a project.
func Choose(projects []Project) (Project, error) {
	if len(projects) == 0 {
		return Project{}, ErrNoProjects
	}

	projectSelect := promptui.Select{
		Label:        "Select project",
		Items:        Names(projects),
		HideSelected: true,
	}
	index, _, err := projectSelect.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) ||
			errors.Is(err, promptui.ErrAbort) {
			return Project{}, ErrNoSelection
		}
		return Project{}, err
	}

	return projects[index], nil
}
