package render_ctx

import "github.com/projgen/projgen/cli/config"

// RenderCtx contains information for rendering a project.
type RenderCtx struct {
	// ProjectName is the name of the project to render.
	ProjectName string
	// ProjectPath is the path to the project directory.
	ProjectPath string
	// ProjectsDirs is a set of directories to search for projects in.
	ProjectsDirs []string
	// OutputDir is the output root. It is replaced on every run.
	OutputDir string
	// ContextFile is the name of the context file in the project.
	ContextFile string
	// TemplateSuffix marks template files in the project.
	TemplateSuffix string
	// VarsFromCli template variables definitions provided in command line.
	VarsFromCli []string
	// CleanModels - if flag is set, each model directory is replaced before rendering.
	CleanModels bool
	// CliOpts is loaded projgen environment config.
	CliOpts *config.CliOpts
}
