package cmd

import (
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/projgen/projgen/cli/cmdcontext"
	"github.com/projgen/projgen/cli/list"
	"github.com/projgen/projgen/cli/project"
	"github.com/spf13/cobra"
)

var prettyList bool

// NewListCmd creates a new list command.
func NewListCmd() *cobra.Command {
	var listCmd = &cobra.Command{
		Use:   "list",
		Short: "Show available projects and their models",
		Run:   RunModuleFunc(internalListModule),
		Args:  cobra.NoArgs,
	}

	listCmd.Flags().BoolVar(&prettyList, "pretty", false, "Print table with borders")

	return listCmd
}

// internalListModule is a default list module.
func internalListModule(cmdCtx *cmdcontext.CmdCtx, args []string) error {
	projects, err := project.List(cliOpts.Projects)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		log.Warnf("%s in %s", project.ErrNoProjects, strings.Join(cliOpts.Projects, ", "))
		return nil
	}

	list.ListProjects(os.Stdout, projects, list.ListOpts{
		ContextFile: cliOpts.ContextFile,
		Pretty:      prettyList,
	})
	return nil
}
