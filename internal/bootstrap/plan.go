package bootstrap

import (
	"errors"
	"fmt"

	"github.com/charopevez/eob-dbinit/internal/mongodb"
)

// set of literal bootstrap values
const (
	DefaultAdminUsername = "eobadm"
	DefaultAdminPassword = "eobpass"
	DefaultNamespace     = "eob_system"
	DefaultUsername      = "eobuser"
	DefaultPassword      = "eobuserpass"
	DefaultRole          = "readWrite"
)

// Plan holds every input of a bootstrap run
type Plan struct {
	URI        string
	Admin      mongodb.Credential
	Namespace  string
	User       mongodb.Credential
	Roles      []mongodb.Role
	Mechanisms []mongodb.Mechanism
	Digestor   mongodb.Digestor
}

// DefaultPlan returns the plan provisioning eobuser into eob_system
func DefaultPlan() Plan {
	return Plan{
		URI: mongodb.DefaultURI,
		Admin: mongodb.Credential{
			Username: DefaultAdminUsername,
			Password: DefaultAdminPassword,
			Source:   mongodb.AdminDatabase,
		},
		Namespace: DefaultNamespace,
		User: mongodb.Credential{
			Username: DefaultUsername,
			Password: DefaultPassword,
		},
		Roles:      []mongodb.Role{{Role: DefaultRole, Database: DefaultNamespace}},
		Mechanisms: []mongodb.Mechanism{mongodb.MechanismSCRAMSHA1},
		Digestor:   mongodb.DigestorClient,
	}
}

var (
	errAdminUsernameRequired = errors.New("admin username is required")
	errNamespaceRequired     = errors.New("namespace is required")
	errUsernameRequired      = errors.New("username is required")
	errMechanismsRequired    = errors.New("at least one mechanism is required")
)

// Validate checks the plan describes a credential scoped to its namespace only
func (p Plan) Validate() error {
	if p.Admin.Username == "" {
		return errAdminUsernameRequired
	}
	if p.Namespace == "" {
		return errNamespaceRequired
	}
	if p.User.Username == "" {
		return errUsernameRequired
	}

	for _, role := range p.Roles {
		if role.Database != p.Namespace {
			return fmt.Errorf("role %s must be scoped to namespace %s", role, p.Namespace)
		}
	}

	if len(p.Mechanisms) == 0 {
		return errMechanismsRequired
	}
	for _, m := range p.Mechanisms {
		if !mongodb.IsValidMechanism(m) {
			return fmt.Errorf("unsupported mechanism: %q", m)
		}
		if m == mongodb.MechanismSCRAMSHA256 && p.Digestor == mongodb.DigestorClient {
			return fmt.Errorf("mechanism %s requires the password to be digested by the server", m)
		}
	}

	switch p.Digestor {
	case mongodb.DigestorClient, mongodb.DigestorServer:
	default:
		return fmt.Errorf("unsupported password digestor: %q", p.Digestor)
	}
	return nil
}

func (p Plan) adminCredential() mongodb.Credential {
	cred := p.Admin
	if cred.Source == "" {
		cred.Source = mongodb.AdminDatabase
	}
	return cred
}

// userCredential authenticates against the namespace with the first registered mechanism
func (p Plan) userCredential() mongodb.Credential {
	cred := p.User
	cred.Source = p.Namespace
	if len(p.Mechanisms) > 0 {
		cred.Mechanism = p.Mechanisms[0]
	}
	return cred
}

func (p Plan) createUserRequest() mongodb.CreateUserRequest {
	return mongodb.CreateUserRequest{
		Username:   p.User.Username,
		Password:   p.User.Password,
		Roles:      p.Roles,
		Mechanisms: p.Mechanisms,
		Digestor:   p.Digestor,
	}
}
