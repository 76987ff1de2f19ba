package cmd

import (
	"fmt"

	"github.com/projgen/projgen/cli/cmdcontext"
	"github.com/projgen/projgen/cli/configure"
	init_pkg "github.com/projgen/projgen/cli/init"
	"github.com/spf13/cobra"
)

var initCtx init_pkg.InitCtx

// NewInitCmd generates projgen.yaml with default options in the current working
// directory and creates the directories it refers to.
func NewInitCmd() *cobra.Command {
	var initCmd = &cobra.Command{
		Use:   "init [flags]",
		Short: "Create projgen environment config in current directory",
		Run:   RunModuleFunc(internalInitModule),
		Args:  cobra.NoArgs,
	}

	initCmd.Flags().BoolVarP(&initCtx.ForceMode, "force", "f", false,
		fmt.Sprintf(`Force re-write existing %s`, configure.ConfigName))
	initCmd.Flags().BoolVar(&initCtx.WithExample, "example", false,
		fmt.Sprintf("Create %q project in the projects directory", init_pkg.ExampleProjectName))

	return initCmd
}

// internalInitModule is a default init module.
func internalInitModule(cmdCtx *cmdcontext.CmdCtx, args []string) error {
	init_pkg.FillCtx(&initCtx)
	return init_pkg.Run(&initCtx)
}
