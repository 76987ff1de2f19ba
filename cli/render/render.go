package render

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/projgen/projgen/cli/config"
	"github.com/projgen/projgen/cli/project"
	render_ctx "github.com/projgen/projgen/cli/render/context"
	"github.com/projgen/projgen/cli/render/internal/steps"
	"github.com/projgen/projgen/cli/util"
	"github.com/projgen/projgen/cli/version"
)

// Chooser picks one of the projects.
type Chooser func(projects []project.Project) (project.Project, error)

// absPaths makes paths absolute.
func absPaths(paths []string) ([]string, error) {
	result := make([]string, 0, len(paths))
	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		result = append(result, absPath)
	}
	return result, nil
}

// FillCtx fills render context. Options already set in renderCtx from command line
// take precedence over the configuration. The project is taken from args, or is
// picked with chooser if there are no args. Nil chooser means there is no way to ask
// the user.
func FillCtx(cliOpts *config.CliOpts, renderCtx *render_ctx.RenderCtx, args []string,
	chooser Chooser,
) error {
	var err error
	renderCtx.CliOpts = cliOpts
	if len(renderCtx.ProjectsDirs) == 0 {
		renderCtx.ProjectsDirs = cliOpts.Projects
	} else if renderCtx.ProjectsDirs, err = absPaths(renderCtx.ProjectsDirs); err != nil {
		return err
	}
	if renderCtx.OutputDir == "" {
		renderCtx.OutputDir = cliOpts.Output
	} else if renderCtx.OutputDir, err = filepath.Abs(renderCtx.OutputDir); err != nil {
		return err
	}
	renderCtx.ContextFile = cliOpts.ContextFile
	renderCtx.TemplateSuffix = cliOpts.TemplateSuffix
	renderCtx.CleanModels = renderCtx.CleanModels || cliOpts.CleanModels

	dirs := append([]string{}, renderCtx.ProjectsDirs...)
	if err = project.EnsureDirs(append(dirs, renderCtx.OutputDir)...); err != nil {
		return err
	}

	projects, err := project.List(renderCtx.ProjectsDirs)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		return fmt.Errorf("%w in %s", project.ErrNoProjects,
			strings.Join(renderCtx.ProjectsDirs, ", "))
	}

	var selected project.Project
	if len(args) >= 1 {
		var found bool
		if selected, found = project.Find(projects, args[0]); !found {
			return util.NewArgError(fmt.Sprintf("project %q is not found, available projects: %s",
				args[0], strings.Join(project.Names(projects), ", ")))
		}
	} else if chooser == nil {
		return util.NewArgError("missing project name argument. " +
			"Try `projgen render --help` for more information.")
	} else if selected, err = chooser(projects); err != nil {
		return err
	}

	renderCtx.ProjectName = selected.Name
	renderCtx.ProjectPath = selected.Path
	return nil
}

// IsNotice returns true for errors which only stop the render with a notice.
func IsNotice(err error) bool {
	return errors.Is(err, project.ErrNoProjects) || errors.Is(err, project.ErrNoSelection)
}

// Run renders the project: one output directory per project context.
func Run(renderCtx *render_ctx.RenderCtx) error {
	if err := checkCtx(renderCtx); err != nil {
		return util.InternalError("Render context check failed: %s", version.GetVersion, err)
	}

	stepsChain := []steps.Step{
		steps.FillVarsFromCli{},
		steps.LoadContexts{},
		steps.PrepareOutputDir{},
		steps.RenderModels{},
	}

	log.Infof("Rendering project %s", util.Bold(renderCtx.ProjectName))
	renderState := steps.NewRenderState()
	for _, step := range stepsChain {
		if err := step.Run(renderCtx, &renderState); err != nil {
			if errors.Is(err, steps.ErrNoContexts) {
				log.Warnf("%s", err)
				return nil
			}
			return err
		}
	}

	log.Infof("Rendered %d model(s) to %s", len(renderState.Rendered),
		util.RelativeToCurrentWorkingDir(renderCtx.OutputDir))
	return nil
}

// checkCtx checks render context for validity.
func checkCtx(ctx *render_ctx.RenderCtx) error {
	if ctx.ProjectPath == "" {
		return fmt.Errorf("project path is missing")
	}
	if ctx.OutputDir == "" {
		return fmt.Errorf("output directory is missing")
	}
	if ctx.ContextFile == "" {
		return fmt.Errorf("context file name is missing")
	}
	return nil
}
