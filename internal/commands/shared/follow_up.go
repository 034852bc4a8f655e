package shared

import (
	"errors"
	"fmt"

	"github.com/charopevez/eob-dbinit/internal/bootstrap"
	"github.com/charopevez/eob-dbinit/internal/cli"
)

// set of reference links
const (
	LinkCreateUser = "https://docs.mongodb.com/manual/reference/command/createUser/"
	LinkSCRAM      = "https://docs.mongodb.com/manual/core/security-scram/"
)

var (
	commandProfile    = fmt.Sprintf("%s profile", cli.Name)
	commandUserList   = fmt.Sprintf("%s user list", cli.Name)
	commandUserVerify = fmt.Sprintf("%s user verify", cli.Name)
)

// FollowUp attaches the commands and links to follow a bootstrap failure up with
func FollowUp(err error) error {
	var authErr *bootstrap.AuthenticationError
	var privErr *bootstrap.PrivilegeError
	var dupErr *bootstrap.DuplicateUserError
	var mismatchErr *bootstrap.MechanismMismatchError

	switch {
	case errors.As(err, &authErr):
		if authErr.Step == bootstrap.StepAuthenticateAdmin {
			return cli.FollowUpErr{Err: err, Commands: []string{commandProfile}}
		}
		return cli.FollowUpErr{Err: err, Commands: []string{commandUserList, commandProfile}}
	case errors.As(err, &privErr):
		return cli.FollowUpErr{Err: err, Commands: []string{commandProfile}, Links: []string{LinkCreateUser}}
	case errors.As(err, &dupErr):
		return cli.FollowUpErr{Err: err, Commands: []string{commandUserList, commandUserVerify}}
	case errors.As(err, &mismatchErr):
		return cli.FollowUpErr{Err: err, Commands: []string{commandUserVerify}, Links: []string{LinkSCRAM}}
	}
	return err
}
