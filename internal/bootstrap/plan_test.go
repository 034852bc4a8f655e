package bootstrap

import (
	"errors"
	"testing"

	"github.com/charopevez/eob-dbinit/internal/mongodb"
	"github.com/charopevez/eob-dbinit/internal/utils/test/assert"
)

func TestDefaultPlan(t *testing.T) {
	plan := DefaultPlan()

	assert.Equal(t, Plan{
		URI: "mongodb://localhost:27017",
		Admin: mongodb.Credential{
			Username: "eobadm",
			Password: "eobpass",
			Source:   "admin",
		},
		Namespace: "eob_system",
		User: mongodb.Credential{
			Username: "eobuser",
			Password: "eobuserpass",
		},
		Roles:      []mongodb.Role{{Role: "readWrite", Database: "eob_system"}},
		Mechanisms: []mongodb.Mechanism{mongodb.MechanismSCRAMSHA1},
		Digestor:   mongodb.DigestorClient,
	}, plan)
	assert.Nil(t, plan.Validate())
}

func TestPlanValidate(t *testing.T) {
	for _, tc := range []struct {
		description string
		modify      func(p *Plan)
		expectedErr error
	}{
		{
			description: "no admin username",
			modify:      func(p *Plan) { p.Admin.Username = "" },
			expectedErr: errors.New("admin username is required"),
		},
		{
			description: "no namespace",
			modify:      func(p *Plan) { p.Namespace = "" },
			expectedErr: errors.New("namespace is required"),
		},
		{
			description: "no username",
			modify:      func(p *Plan) { p.User.Username = "" },
			expectedErr: errors.New("username is required"),
		},
		{
			description: "a role outside of the namespace",
			modify: func(p *Plan) {
				p.Roles = append(p.Roles, mongodb.Role{Role: "readWrite", Database: "admin"})
			},
			expectedErr: errors.New("role readWrite@admin must be scoped to namespace eob_system"),
		},
		{
			description: "no mechanisms",
			modify:      func(p *Plan) { p.Mechanisms = nil },
			expectedErr: errors.New("at least one mechanism is required"),
		},
		{
			description: "an unsupported mechanism",
			modify:      func(p *Plan) { p.Mechanisms = []mongodb.Mechanism{"MONGODB-CR"} },
			expectedErr: errors.New(`unsupported mechanism: "MONGODB-CR"`),
		},
		{
			description: "a client digested SCRAM-SHA-256 credential",
			modify:      func(p *Plan) { p.Mechanisms = []mongodb.Mechanism{mongodb.MechanismSCRAMSHA256} },
			expectedErr: errors.New("mechanism SCRAM-SHA-256 requires the password to be digested by the server"),
		},
		{
			description: "an unsupported digestor",
			modify:      func(p *Plan) { p.Digestor = "nobody" },
			expectedErr: errors.New(`unsupported password digestor: "nobody"`),
		},
	} {
		t.Run("Should fail to validate a plan with "+tc.description, func(t *testing.T) {
			plan := DefaultPlan()
			tc.modify(&plan)

			assert.Equal(t, tc.expectedErr, plan.Validate())
		})
	}

	t.Run("Should validate a server digested SCRAM-SHA-256 credential", func(t *testing.T) {
		plan := DefaultPlan()
		plan.Mechanisms = []mongodb.Mechanism{mongodb.MechanismSCRAMSHA256, mongodb.MechanismSCRAMSHA1}
		plan.Digestor = mongodb.DigestorServer

		assert.Nil(t, plan.Validate())
	})

	t.Run("Should validate a plan with no roles", func(t *testing.T) {
		plan := DefaultPlan()
		plan.Roles = nil

		assert.Nil(t, plan.Validate())
	})
}

func TestPlanCredentials(t *testing.T) {
	t.Run("Should default the admin source to the admin database", func(t *testing.T) {
		plan := DefaultPlan()
		plan.Admin.Source = ""

		assert.Equal(t, mongodb.Credential{
			Username: "eobadm",
			Password: "eobpass",
			Source:   "admin",
		}, plan.adminCredential())
	})

	t.Run("Should authenticate the user against its namespace with the first mechanism", func(t *testing.T) {
		plan := DefaultPlan()
		plan.Mechanisms = []mongodb.Mechanism{mongodb.MechanismSCRAMSHA256, mongodb.MechanismSCRAMSHA1}

		assert.Equal(t, mongodb.Credential{
			Username:  "eobuser",
			Password:  "eobuserpass",
			Source:    "eob_system",
			Mechanism: mongodb.MechanismSCRAMSHA256,
		}, plan.userCredential())
	})

	t.Run("Should build the create user request", func(t *testing.T) {
		assert.Equal(t, mongodb.CreateUserRequest{
			Username:   "eobuser",
			Password:   "eobuserpass",
			Roles:      []mongodb.Role{{Role: "readWrite", Database: "eob_system"}},
			Mechanisms: []mongodb.Mechanism{mongodb.MechanismSCRAMSHA1},
			Digestor:   mongodb.DigestorClient,
		}, DefaultPlan().createUserRequest())
	})
}
