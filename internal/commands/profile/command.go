package profile

import (
	"fmt"
	"strings"

	"github.com/charopevez/eob-dbinit/internal/cli"
	"github.com/charopevez/eob-dbinit/internal/terminal"
	"github.com/charopevez/eob-dbinit/internal/utils/flags"

	"gopkg.in/yaml.v2"
)

const (
	flagSave = "save"
)

// Command is the `profile` command
type Command struct {
	inputs inputs
}

type inputs struct {
	Save bool
}

// Flags is the command flags
func (cmd *Command) Flags() []flags.Flag {
	return []flags.Flag{
		flags.BoolFlag{
			Value: &cmd.inputs.Save,
			Meta: flags.Meta{
				Name: flagSave,
				Usage: flags.Usage{
					Description: "Write the resolved settings to the CLI profile file",
				},
			},
		},
	}
}

// Handler is the command handler
func (cmd *Command) Handler(profile *cli.Profile, ui terminal.UI, clients cli.Clients) error {
	if profile.Name == "" {
		return cli.New("a profile name is required")
	}

	settings := profile.Settings()

	if cmd.inputs.Save {
		profile.SetSettings(settings)
		if err := profile.Save(); err != nil {
			return err
		}
		ui.Print(terminal.NewTextLog("Saved profile %s to %s", profile.Name, profile.Path()))
	}

	out, err := yaml.Marshal(map[string]cli.Settings{profile.Name: settings.Redacted()})
	if err != nil {
		return cli.NewWrapped(fmt.Sprintf("failed to print profile %s", profile.Name), err)
	}

	ui.Print(terminal.NewTextLog("Profile %s\n%s", profile.Name, strings.TrimSuffix(string(out), "\n")))
	return nil
}
