package bootstrap

import (
	"fmt"
	"strings"

	"github.com/charopevez/eob-dbinit/internal/mongodb"
)

// Failure is an error which aborted the bootstrap at a given step
type Failure interface {
	error
	FailedStep() Step
}

// AuthenticationError is a credential rejected by the server
type AuthenticationError struct {
	Step     Step
	Username string
	Source   string
	Err      error
}

func (err *AuthenticationError) Error() string {
	return fmt.Sprintf("failed to authenticate as %s@%s: %s", err.Username, err.Source, err.Err)
}

// Unwrap returns the server error
func (err *AuthenticationError) Unwrap() error { return err.Err }

// FailedStep returns the step the credential was rejected at
func (err *AuthenticationError) FailedStep() Step { return err.Step }

// PrivilegeError is a user creation refused for lack of privilege
type PrivilegeError struct {
	Username  string
	Namespace string
	Err       error
}

func (err *PrivilegeError) Error() string {
	return fmt.Sprintf("%s is not allowed to create users in %s: %s", err.Username, err.Namespace, err.Err)
}

// Unwrap returns the server error
func (err *PrivilegeError) Unwrap() error { return err.Err }

// FailedStep returns StepCreateUser
func (err *PrivilegeError) FailedStep() Step { return StepCreateUser }

// DuplicateUserError is a user creation refused because the user exists
type DuplicateUserError struct {
	Username  string
	Namespace string
	Err       error
}

func (err *DuplicateUserError) Error() string {
	return fmt.Sprintf("user %s already exists in %s", err.Username, err.Namespace)
}

// Unwrap returns the server error
func (err *DuplicateUserError) Unwrap() error { return err.Err }

// FailedStep returns StepCreateUser
func (err *DuplicateUserError) FailedStep() Step { return StepCreateUser }

// MechanismMismatchError is the created user failing to authenticate,
// which means the mechanisms or digestor of the plan are inconsistent
type MechanismMismatchError struct {
	Username   string
	Namespace  string
	Mechanisms []mongodb.Mechanism
	Digestor   mongodb.Digestor
	Err        error
}

func (err *MechanismMismatchError) Error() string {
	mechanisms := make([]string, len(err.Mechanisms))
	for i, m := range err.Mechanisms {
		mechanisms[i] = m.String()
	}
	return fmt.Sprintf(
		"user %s was created in %s but cannot authenticate with mechanisms [%s] and a %s digested password: %s",
		err.Username,
		err.Namespace,
		strings.Join(mechanisms, ", "),
		err.Digestor,
		err.Err,
	)
}

// Unwrap returns the server error
func (err *MechanismMismatchError) Unwrap() error { return err.Err }

// FailedStep returns StepAuthenticateUser
func (err *MechanismMismatchError) FailedStep() Step { return StepAuthenticateUser }

// StepError is any other failure of a step
type StepError struct {
	Step Step
	Err  error
}

func (err *StepError) Error() string {
	return fmt.Sprintf("failed to %s: %s", err.Step, err.Err)
}

// Unwrap returns the underlying error
func (err *StepError) Unwrap() error { return err.Err }

// FailedStep returns the step which failed
func (err *StepError) FailedStep() Step { return err.Step }
