package bootstrap

import (
	"errors"
	"fmt"
	"testing"

	"github.com/charopevez/eob-dbinit/internal/mongodb"
	"github.com/charopevez/eob-dbinit/internal/utils/test/assert"
)

func TestErrors(t *testing.T) {
	serverErr := errors.New("server says no")

	for _, tc := range []struct {
		err          Failure
		expectedMsg  string
		expectedStep Step
	}{
		{
			err:          &AuthenticationError{StepAuthenticateAdmin, "eobadm", "admin", serverErr},
			expectedMsg:  "failed to authenticate as eobadm@admin: server says no",
			expectedStep: StepAuthenticateAdmin,
		},
		{
			err:          &PrivilegeError{"eobadm", "eob_system", serverErr},
			expectedMsg:  "eobadm is not allowed to create users in eob_system: server says no",
			expectedStep: StepCreateUser,
		},
		{
			err:          &DuplicateUserError{"eobuser", "eob_system", serverErr},
			expectedMsg:  "user eobuser already exists in eob_system",
			expectedStep: StepCreateUser,
		},
		{
			err: &MechanismMismatchError{
				Username:   "eobuser",
				Namespace:  "eob_system",
				Mechanisms: []mongodb.Mechanism{mongodb.MechanismSCRAMSHA1},
				Digestor:   mongodb.DigestorClient,
				Err:        serverErr,
			},
			expectedMsg:  "user eobuser was created in eob_system but cannot authenticate with mechanisms [SCRAM-SHA-1] and a client digested password: server says no",
			expectedStep: StepAuthenticateUser,
		},
		{
			err:          &StepError{StepAuthenticateUser, serverErr},
			expectedMsg:  "failed to authenticate as new user: server says no",
			expectedStep: StepAuthenticateUser,
		},
	} {
		t.Run(fmt.Sprintf("Should describe a %T", tc.err), func(t *testing.T) {
			assert.Equal(t, tc.expectedMsg, tc.err.Error())
			assert.Equal(t, tc.expectedStep, tc.err.FailedStep())
			assert.True(t, errors.Is(tc.err, serverErr), "error must unwrap to the server error")
		})
	}
}

func TestStepString(t *testing.T) {
	for _, tc := range []struct {
		step     Step
		expected string
	}{
		{StepAuthenticateAdmin, "authenticate as administrator"},
		{StepSelectNamespace, "select target namespace"},
		{StepCreateUser, "create user"},
		{StepAuthenticateUser, "authenticate as new user"},
		{Step(9), "step 9"},
	} {
		assert.Equal(t, tc.expected, tc.step.String())
	}
}
