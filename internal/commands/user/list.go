package user

import (
	"context"
	"fmt"

	boot "github.com/charopevez/eob-dbinit/internal/bootstrap"
	"github.com/charopevez/eob-dbinit/internal/cli"
	"github.com/charopevez/eob-dbinit/internal/commands/shared"
	"github.com/charopevez/eob-dbinit/internal/mongodb"
	"github.com/charopevez/eob-dbinit/internal/terminal"
	"github.com/charopevez/eob-dbinit/internal/utils/flags"
)

const (
	flagMechanism = "mechanism"
)

// CommandList is the `user list` command
type CommandList struct {
	inputs listInputs
}

type listInputs struct {
	shared.PlanInputs
	Mechanisms []string
}

func (i *listInputs) Resolve(profile *cli.Profile, ui terminal.UI) error {
	return i.PlanInputs.Resolve(profile, ui, shared.PrincipalAdmin)
}

// Flags is the command flags
func (cmd *CommandList) Flags() []flags.Flag {
	validMechanisms := make([]string, len(mongodb.Mechanisms))
	for i, m := range mongodb.Mechanisms {
		validMechanisms[i] = m.String()
	}

	return []flags.Flag{
		flags.NewStringSetFlag(&cmd.inputs.Mechanisms, flags.StringSetOptions{
			Meta: flags.Meta{
				Name:      flagMechanism,
				Shorthand: "m",
				Usage: flags.Usage{
					Description: "Filter the users by the mechanisms they can authenticate with",
				},
			},
			ValidValues: validMechanisms,
		}),
	}
}

// Inputs is the command inputs
func (cmd *CommandList) Inputs() cli.InputResolver {
	return &cmd.inputs
}

// Handler is the command handler
func (cmd *CommandList) Handler(profile *cli.Profile, ui terminal.UI, clients cli.Clients) error {
	plan := cmd.inputs.Plan

	users, err := boot.ListUsers(context.Background(), clients.Mongo, plan, boot.WithTelemetry(clients.Telemetry))
	if err != nil {
		return shared.FollowUp(err)
	}

	users = filterByMechanism(users, cmd.inputs.Mechanisms)
	if len(users) == 0 {
		ui.Print(terminal.NewTextLog("No users to show in %s", plan.Namespace))
		return nil
	}

	rows := make([]map[string]interface{}, len(users))
	for i, user := range users {
		rows[i] = shared.UserTableRow(user)
	}

	ui.Print(terminal.NewTableLog(
		fmt.Sprintf("Users in %s (%d)", plan.Namespace, len(users)),
		shared.UserTableHeaders,
		rows...,
	))
	return nil
}

func filterByMechanism(users []mongodb.User, mechanisms []string) []mongodb.User {
	if len(mechanisms) == 0 {
		return users
	}

	filtered := make([]mongodb.User, 0, len(users))
	for _, user := range users {
		for _, m := range mechanisms {
			if user.HasMechanism(mongodb.Mechanism(m)) {
				filtered = append(filtered, user)
				break
			}
		}
	}
	return filtered
}
