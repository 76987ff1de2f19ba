package cmd

import (
	"os"

	"github.com/apex/log"
	"github.com/mattn/go-isatty"
	"github.com/projgen/projgen/cli/cmdcontext"
	"github.com/projgen/projgen/cli/project"
	"github.com/projgen/projgen/cli/render"
	render_ctx "github.com/projgen/projgen/cli/render/context"
	"github.com/spf13/cobra"
)

var (
	outputDir    string
	projectsDirs []string
	cleanModels  bool
	varsFromCli  *[]string
)

// NewRenderCmd creates a new render command.
func NewRenderCmd() *cobra.Command {
	var renderCmd = &cobra.Command{
		Use:   "render [PROJECT] [flags]",
		Short: "Render a project into the output directory",
		Long: `Render a project into the output directory.

The project directory contains a context file (template.yaml by default) with a
single mapping or a list of mappings. The project tree is rendered once per mapping
into the output subdirectory named after the "model" value of the mapping.
Files with the template suffix (.j2 by default) are rendered as templates and the
suffix is stripped, other files are copied as is. File and directory names are
rendered too, '*' in a rendered file name is replaced with '.'.

The output directory is removed with all its content before rendering.

If the project is not specified, it is chosen interactively.`,
		Run:               RunModuleFunc(internalRenderModule),
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: renderValidArgsFunction,
		Example: `
# Choose a project and render it into the configured output directory.

    $ projgen render

# Render my_project into ./build and override "version" value of all contexts.

    $ projgen render my_project -o ./build --var version=1.2.0`,
	}

	renderCmd.Flags().StringVarP(&outputDir, "output", "o", "",
		"Output directory. It is removed and created again")
	renderCmd.Flags().StringArrayVarP(&projectsDirs, "projects", "p", []string{},
		"Directory to search projects in. Can be specified multiple times")
	renderCmd.Flags().BoolVar(&cleanModels, "clean-models", false,
		"Remove each model directory before rendering it")
	varsFromCli = renderCmd.Flags().StringArray("var", []string{},
		"Variable definition, overrides the value of all contexts. Usage: --var var_name=value")

	return renderCmd
}

// renderValidArgsFunction returns available projects for `render` command.
func renderValidArgsFunction(
	_ *cobra.Command,
	args []string,
	toComplete string,
) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 || cliOpts == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	projects, err := project.List(cliOpts.Projects)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return project.Names(projects), cobra.ShellCompDirectiveNoFileComp
}

// isInteractive returns true if the user can be asked to choose a project.
func isInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// internalRenderModule is a default render module.
func internalRenderModule(cmdCtx *cmdcontext.CmdCtx, args []string) error {
	renderCtx := render_ctx.RenderCtx{
		ProjectsDirs: projectsDirs,
		OutputDir:    outputDir,
		VarsFromCli:  *varsFromCli,
		CleanModels:  cleanModels,
	}

	var chooser render.Chooser
	if isInteractive() {
		chooser = project.Choose
	}
	if err := render.FillCtx(cliOpts, &renderCtx, args, chooser); err != nil {
		if render.IsNotice(err) {
			log.Warnf("%s", err)
			return nil
		}
		return err
	}

	return render.Run(&renderCtx)
}
