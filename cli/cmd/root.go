package cmd

import (
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/projgen/projgen/cli/cmdcontext"
	"github.com/projgen/projgen/cli/config"
	"github.com/projgen/projgen/cli/configure"
	"github.com/projgen/projgen/cli/ttlog"
	"github.com/spf13/cobra"
)

var (
	cmdCtx     cmdcontext.CmdCtx
	cliOpts    *config.CliOpts
	rootCmd    *cobra.Command
	fileLogger *ttlog.Logger
)

// NewCmdRoot creates a new root command.
func NewCmdRoot() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "projgen",
		Short: "Project scaffolding generator",
		Long: "Utility for rendering project templates: one output directory " +
			"per context of the project",
		Example: `$ projgen list
  $ projgen render my_project -o ./output
  $ projgen completion bash`,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	// Global flags are parsed once more by InitRoot before the subcommand flags are known.
	rootCmd.FParseErrWhitelist.UnknownFlags = true

	rootCmd.PersistentFlags().StringVarP(&cmdCtx.Cli.ConfigPath, "cfg", "c",
		"", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&cmdCtx.Cli.Verbose, "verbose", "V",
		false, "Verbose output")

	rootCmd.AddCommand(
		NewVersionCmd(),
		NewCompletionCmd(),
		NewRenderCmd(),
		NewListCmd(),
		NewInitCmd(),
	)

	rootCmd.InitDefaultHelpCmd()

	log.SetHandler(cli.Default)

	return rootCmd
}

// Execute root command.
func Execute() {
	err := rootCmd.Execute()
	if fileLogger != nil {
		fileLogger.Close()
	}
	if err != nil {
		log.Fatalf(err.Error())
	}
}

// InitRoot initializes global flags, configures CLI, sets up logging
// and configures `help` module.
func InitRoot() {
	rootCmd = NewCmdRoot()
	rootCmd.ParseFlags(os.Args)

	// Configure projgen.
	if err := configure.Cli(&cmdCtx); err != nil {
		log.Fatalf("Failed to configure projgen: %s", err)
	}

	var err error
	var configPath string
	cliOpts, configPath, err = configure.GetCliOpts(cmdCtx.Cli.ConfigPath)
	if err != nil {
		log.Fatalf("Failed to get projgen configuration: %s", err)
	}
	cmdCtx.Cli.ConfigPath = configPath
	if configPath != "" {
		log.Debugf("Using configuration file %s", configPath)
	}

	fileLogger = ttlog.Setup(cli.Default, &ttlog.LoggerOpts{
		Filename:   cliOpts.Log.File,
		MaxSize:    cliOpts.Log.MaxSize,
		MaxBackups: cliOpts.Log.MaxBackups,
		MaxAge:     cliOpts.Log.MaxAge,
	})

	// Configure help command.
	configureHelpCommand(rootCmd)
}
