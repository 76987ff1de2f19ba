package cmd

import (
	"github.com/projgen/projgen/cli/cmdcontext"
	"github.com/projgen/projgen/cli/util"
	"github.com/spf13/cobra"
)

// internalModule is a command implementation.
type internalModule func(cmdCtx *cmdcontext.CmdCtx, args []string) error

// RunModuleFunc returns a cobra Run function calling the internal module and
// handling its error.
func RunModuleFunc(module internalModule) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		cmdCtx.CommandName = cmd.Name()
		err := module(&cmdCtx, args)
		util.HandleCmdErr(cmd, err)
	}
}
