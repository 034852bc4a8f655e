package mongodb

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
)

// Mechanism is an authentication mechanism a credential is valid under
type Mechanism string

// String returns the mechanism display
func (m Mechanism) String() string { return string(m) }

// set of supported authentication mechanisms
const (
	MechanismNone        Mechanism = "" // zero-valued lets the server negotiate
	MechanismSCRAMSHA1   Mechanism = "SCRAM-SHA-1"
	MechanismSCRAMSHA256 Mechanism = "SCRAM-SHA-256"
)

// Mechanisms is the list of supported mechanisms
var Mechanisms = []Mechanism{MechanismSCRAMSHA1, MechanismSCRAMSHA256}

// IsValidMechanism reports whether the mechanism is a supported one
func IsValidMechanism(m Mechanism) bool {
	switch m {
	case
		MechanismSCRAMSHA1,
		MechanismSCRAMSHA256:
		return true
	}
	return false
}

// Digestor identifies who hashes a plaintext password before it is stored
type Digestor string

// set of supported password digestors
const (
	DigestorClient Digestor = "client"
	DigestorServer Digestor = "server"
)

// Role is a named grant scoped to a database
type Role struct {
	Role     string `bson:"role" json:"role" yaml:"role"`
	Database string `bson:"db" json:"db" yaml:"db"`
}

// String returns the role display
func (r Role) String() string {
	return fmt.Sprintf("%s@%s", r.Role, r.Database)
}

// User is a user credential record as reported by the server
type User struct {
	ID         string      `bson:"_id" json:"_id"`
	Username   string      `bson:"user" json:"user"`
	Database   string      `bson:"db" json:"db"`
	Roles      []Role      `bson:"roles" json:"roles"`
	Mechanisms []Mechanism `bson:"mechanisms" json:"mechanisms"`
}

// HasMechanism reports whether the user may authenticate with the mechanism
func (u User) HasMechanism(m Mechanism) bool {
	for _, mechanism := range u.Mechanisms {
		if mechanism == m {
			return true
		}
	}
	return false
}

// CreateUserRequest is a request to create a user in a namespace
type CreateUserRequest struct {
	Username   string
	Password   string
	Roles      []Role
	Mechanisms []Mechanism
	Digestor   Digestor
}

// DigestPassword produces the password digest used by the SCRAM-SHA-1 mechanism,
// which is the value the server computes when it digests the password itself
func DigestPassword(username, password string) string {
	h := md5.New()
	_, _ = io.WriteString(h, username)
	_, _ = io.WriteString(h, ":mongo:")
	_, _ = io.WriteString(h, password)
	return hex.EncodeToString(h.Sum(nil))
}

var errClientDigestSCRAMSHA256 = errors.New("a client digested password cannot be used with SCRAM-SHA-256")

func (req CreateUserRequest) command() (bson.D, error) {
	pwd := req.Password
	digestPassword := true

	if req.Digestor == DigestorClient {
		for _, m := range req.Mechanisms {
			if m == MechanismSCRAMSHA256 {
				return nil, errClientDigestSCRAMSHA256
			}
		}
		pwd = DigestPassword(req.Username, req.Password)
		digestPassword = false
	}

	roles := req.Roles
	if roles == nil {
		roles = []Role{}
	}

	cmd := bson.D{
		{Key: "createUser", Value: req.Username},
		{Key: "pwd", Value: pwd},
		{Key: "roles", Value: roles},
	}
	if len(req.Mechanisms) > 0 {
		mechanisms := make([]string, len(req.Mechanisms))
		for i, m := range req.Mechanisms {
			mechanisms[i] = m.String()
		}
		cmd = append(cmd, bson.E{Key: "mechanisms", Value: mechanisms})
	}
	return append(cmd, bson.E{Key: "digestPassword", Value: digestPassword}), nil
}

// CreateUser creates the user in the namespace
func (ns *namespace) CreateUser(ctx context.Context, req CreateUserRequest) error {
	cmd, err := req.command()
	if err != nil {
		return err
	}
	return ns.db.RunCommand(ctx, cmd).Err()
}

type usersInfoResponse struct {
	Users []User `bson:"users"`
}

// UsersInfo lists the users of the namespace, restricted to the provided usernames if any
func (ns *namespace) UsersInfo(ctx context.Context, usernames ...string) ([]User, error) {
	var filter interface{} = 1
	if len(usernames) > 0 {
		users := make(bson.A, len(usernames))
		for i, username := range usernames {
			users[i] = bson.D{{Key: "user", Value: username}, {Key: "db", Value: ns.db.Name()}}
		}
		filter = users
	}

	var res usersInfoResponse
	if err := ns.db.RunCommand(ctx, bson.D{{Key: "usersInfo", Value: filter}}).Decode(&res); err != nil {
		return nil, err
	}
	return res.Users, nil
}
