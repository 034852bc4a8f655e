package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/charopevez/eob-dbinit/internal/cli"
	"github.com/charopevez/eob-dbinit/internal/commands"

	"github.com/spf13/cobra"
)

// Run runs the CLI
func Run() {
	factory, err := cli.NewCommandFactory()
	if err != nil {
		log.Fatal(err)
	}

	os.Exit(factory.Run(NewRootCommand(factory)))
}

// NewRootCommand builds the root command with every command of the CLI
func NewRootCommand(factory *cli.CommandFactory) *cobra.Command {
	// print commands in help/usage text in the order they are declared
	cobra.EnableCommandSorting = false

	cmd := &cobra.Command{
		Version:       cli.Version,
		Use:           cli.Name,
		Short:         "CLI tool to provision the application user of a MongoDB deployment",
		Long:          fmt.Sprintf(`Use "%s [command] --help" for information on a specific command`, cli.Name),
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.Flags().SortFlags = false // ensures CLI help text displays global flags unsorted
	factory.SetGlobalFlags(cmd.PersistentFlags())

	cmd.AddCommand(factory.Build(commands.Bootstrap))
	cmd.AddCommand(factory.Build(commands.User))
	cmd.AddCommand(factory.Build(commands.Profile))

	return cmd
}
