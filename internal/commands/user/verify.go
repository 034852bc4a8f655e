package user

import (
	"context"

	boot "github.com/charopevez/eob-dbinit/internal/bootstrap"
	"github.com/charopevez/eob-dbinit/internal/cli"
	"github.com/charopevez/eob-dbinit/internal/commands/shared"
	"github.com/charopevez/eob-dbinit/internal/terminal"
)

// CommandVerify is the `user verify` command
type CommandVerify struct {
	inputs verifyInputs
}

type verifyInputs struct {
	shared.PlanInputs
}

func (i *verifyInputs) Resolve(profile *cli.Profile, ui terminal.UI) error {
	return i.PlanInputs.Resolve(profile, ui, shared.PrincipalUser)
}

// Inputs is the command inputs
func (cmd *CommandVerify) Inputs() cli.InputResolver {
	return &cmd.inputs
}

// Handler is the command handler
func (cmd *CommandVerify) Handler(profile *cli.Profile, ui terminal.UI, clients cli.Clients) error {
	plan := cmd.inputs.Plan

	if err := boot.Verify(
		context.Background(),
		clients.Mongo,
		plan,
		boot.WithUI(ui),
		boot.WithTelemetry(clients.Telemetry),
	); err != nil {
		return shared.FollowUp(err)
	}

	ui.Print(terminal.NewTextLog(
		"Successfully authenticated as %s@%s with %s",
		plan.User.Username,
		plan.Namespace,
		plan.Mechanisms[0],
	))
	return nil
}
