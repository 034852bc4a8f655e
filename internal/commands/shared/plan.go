// Package shared holds the inputs and outputs common to the commands talking to a MongoDB server
package shared

import (
	"fmt"
	"strings"

	"github.com/charopevez/eob-dbinit/internal/bootstrap"
	"github.com/charopevez/eob-dbinit/internal/cli"
	"github.com/charopevez/eob-dbinit/internal/mongodb"
	"github.com/charopevez/eob-dbinit/internal/terminal"

	"github.com/AlecAivazis/survey/v2"
)

// Principal is a principal a command authenticates as
type Principal int

// set of principals
const (
	PrincipalAdmin Principal = iota
	PrincipalUser
)

// PlanInputs are the inputs of a command acting on a bootstrap plan
type PlanInputs struct {
	Plan bootstrap.Plan
}

// Resolve builds the plan from the CLI profile and prompts
// for the blank password of any principal the command authenticates as
func (i *PlanInputs) Resolve(profile *cli.Profile, ui terminal.UI, principals ...Principal) error {
	plan, err := ResolvePlan(profile.Settings())
	if err != nil {
		return err
	}

	for _, principal := range principals {
		var cred *mongodb.Credential
		switch principal {
		case PrincipalAdmin:
			cred = &plan.Admin
		case PrincipalUser:
			cred = &plan.User
		default:
			continue
		}

		if cred.Password != "" {
			continue
		}
		if err := ui.AskOne(&survey.Password{Message: fmt.Sprintf("Password of %s", cred.Username)}, &cred.Password); err != nil {
			return fmt.Errorf("failed to read the password of %s: %w", cred.Username, err)
		}
	}

	if err := plan.Validate(); err != nil {
		return err
	}

	i.Plan = plan
	return nil
}

// ResolvePlan builds a bootstrap plan from the CLI profile settings
func ResolvePlan(settings cli.Settings) (bootstrap.Plan, error) {
	roles, err := parseRoles(settings.Role, settings.Namespace)
	if err != nil {
		return bootstrap.Plan{}, err
	}

	return bootstrap.Plan{
		URI: settings.URI,
		Admin: mongodb.Credential{
			Username: settings.AdminUsername,
			Password: settings.AdminPassword,
			Source:   settings.AdminSource,
		},
		Namespace: settings.Namespace,
		User: mongodb.Credential{
			Username: settings.Username,
			Password: settings.Password,
		},
		Roles:      roles,
		Mechanisms: parseMechanisms(settings.Mechanisms),
		Digestor:   mongodb.Digestor(settings.Digestor),
	}, nil
}

// parseRoles reads a comma-separated list of roles, each either
// a bare role granted on the namespace or a role@db pair
func parseRoles(value, namespace string) ([]mongodb.Role, error) {
	var roles []mongodb.Role
	for _, field := range splitList(value) {
		parts := strings.Split(field, "@")
		switch len(parts) {
		case 1:
			roles = append(roles, mongodb.Role{Role: parts[0], Database: namespace})
		case 2:
			if parts[0] == "" || parts[1] == "" {
				return nil, fmt.Errorf("invalid role: %q", field)
			}
			roles = append(roles, mongodb.Role{Role: parts[0], Database: parts[1]})
		default:
			return nil, fmt.Errorf("invalid role: %q", field)
		}
	}
	return roles, nil
}

func parseMechanisms(value string) []mongodb.Mechanism {
	var mechanisms []mongodb.Mechanism
	for _, field := range splitList(value) {
		mechanisms = append(mechanisms, mongodb.Mechanism(field))
	}
	return mechanisms
}

func splitList(value string) []string {
	var fields []string
	for _, field := range strings.Split(value, ",") {
		if field = strings.TrimSpace(field); field != "" {
			fields = append(fields, field)
		}
	}
	return fields
}
