package bootstrap

import (
	"context"
	"errors"
	"fmt"

	boot "github.com/charopevez/eob-dbinit/internal/bootstrap"
	"github.com/charopevez/eob-dbinit/internal/cli"
	"github.com/charopevez/eob-dbinit/internal/commands/shared"
	"github.com/charopevez/eob-dbinit/internal/terminal"
)

// Command is the `bootstrap` command
type Command struct {
	inputs inputs
}

type inputs struct {
	shared.PlanInputs
}

func (i *inputs) Resolve(profile *cli.Profile, ui terminal.UI) error {
	return i.PlanInputs.Resolve(profile, ui, shared.PrincipalAdmin, shared.PrincipalUser)
}

// Inputs is the command inputs
func (cmd *Command) Inputs() cli.InputResolver {
	return &cmd.inputs
}

// Handler is the command handler
func (cmd *Command) Handler(profile *cli.Profile, ui terminal.UI, clients cli.Clients) error {
	plan := cmd.inputs.Plan

	result, err := boot.Run(
		context.Background(),
		clients.Mongo,
		plan,
		boot.WithUI(ui),
		boot.WithTelemetry(clients.Telemetry),
	)
	if err != nil {
		var failure boot.Failure
		if errors.As(err, &failure) {
			ui.Print(terminal.NewWarningLog("Bootstrap stopped at step %d: %s", failure.FailedStep(), failure.FailedStep()))
		}
		return shared.FollowUp(err)
	}

	message := fmt.Sprintf("Successfully provisioned user %s in %s", plan.User.Username, plan.Namespace)
	if result.User == nil {
		ui.Print(terminal.NewTextLog(message))
		return nil
	}

	ui.Print(terminal.NewTableLog(message, shared.UserTableHeaders, shared.UserTableRow(*result.User)))
	return nil
}
