package cmd

import (
	"github.com/projgen/projgen/cli/cmdcontext"
	"github.com/projgen/projgen/cli/util"
	"github.com/spf13/cobra"
)

// configureHelpCommand installs the bold usage template and a help command
// completing subcommand names.
func configureHelpCommand(rootCmd *cobra.Command) {
	rootCmd.SetUsageTemplate(usageTemplate)

	helpCmd := &cobra.Command{
		Use:   "help [command]",
		Short: "Show help for projgen or one of its commands",
		Run: RunModuleFunc(func(cmdCtx *cmdcontext.CmdCtx, args []string) error {
			cmd, _, err := rootCmd.Find(args)
			if err != nil {
				return err
			}
			return cmd.Help()
		}),
	}
	for _, subCmd := range rootCmd.Commands() {
		helpCmd.ValidArgs = append(helpCmd.ValidArgs, subCmd.Name())
	}

	rootCmd.SetHelpCommand(helpCmd)
}

// usageTemplate lists commands and flags under bold section headers. Aliases and
// examples are shown only when the command has them.

var usageTemplate = util.Bold("USAGE") + `
{{- if (and .Runnable .HasAvailableInheritedFlags)}}
  {{.UseLine}}
{{end -}}

{{- if .HasAvailableSubCommands}}
  {{.CommandPath}} [flags] <command> [command flags]
{{end -}}

{{if not .HasAvailableSubCommands}}
{{- if .Runnable}}
  {{.UseLine}}
{{end -}}
{{end}}

{{- if gt (len .Aliases) 0}}` + util.Bold("\nALIASES") + `
  {{.NameAndAliases}}
{{end -}}

{{if .HasAvailableSubCommands}}` + util.Bold("\nCOMMANDS") + `
{{- range .Commands}}

{{- if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}
{{- end -}}

{{end}}
{{end -}}

{{- if .HasAvailableLocalFlags}}` + util.Bold("\nFLAGS") + `
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
{{end -}}

{{- if .HasAvailableInheritedFlags}}` + util.Bold("\nGLOBAL FLAGS") + `
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}
{{end -}}

{{- if .HasExample}}` + util.Bold("\nEXAMPLES") + `
  {{.Example}}
{{end -}}

{{- if .HasAvailableSubCommands}}
Use "{{.CommandPath}} <command> --help" for more information about a command.
{{end -}}
`
