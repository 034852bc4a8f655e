package mock

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/charopevez/eob-dbinit/internal/mongodb"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoServer is an in-memory stand-in for a MongoDB server's user management.
// It stores SCRAM-SHA-1 password digests and authenticates against them.
type MongoServer struct {
	// RehashClientDigest makes the server digest passwords it was told
	// were already digested by the client
	RehashClientDigest bool

	mu       sync.Mutex
	users    map[string]map[string]serverUser
	connects int
	creates  int
}

type serverUser struct {
	user   mongodb.User
	digest string
}

// NewMongoServer creates a new server holding the administrator principal
func NewMongoServer(adminUsername, adminPassword string) *MongoServer {
	s := &MongoServer{users: map[string]map[string]serverUser{}}
	s.store(mongodb.AdminDatabase, mongodb.User{
		Username:   adminUsername,
		Roles:      []mongodb.Role{{Role: "root", Database: mongodb.AdminDatabase}},
		Mechanisms: mongodb.Mechanisms,
	}, mongodb.DigestPassword(adminUsername, adminPassword))
	return s
}

// Connects returns the number of connection attempts
func (s *MongoServer) Connects() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connects
}

// Creates returns the number of user creation attempts
func (s *MongoServer) Creates() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creates
}

// Users returns the users stored in the namespace ordered by username
func (s *MongoServer) Users(namespace string) []mongodb.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]mongodb.User, 0, len(s.users[namespace]))
	for _, u := range s.users[namespace] {
		users = append(users, u.user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users
}

func (s *MongoServer) store(namespace string, user mongodb.User, digest string) {
	if _, ok := s.users[namespace]; !ok {
		s.users[namespace] = map[string]serverUser{}
	}
	user.ID = fmt.Sprintf("%s.%s", namespace, user.Username)
	user.Database = namespace
	s.users[namespace][user.Username] = serverUser{user, digest}
}

var errAuthenticationFailed = mongo.CommandError{Code: 18, Name: "AuthenticationFailed", Message: "Authentication failed."}

// Connect authenticates the credential against the stored users
func (s *MongoServer) Connect(ctx context.Context, credential mongodb.Credential) (mongodb.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connects++

	source := credential.Source
	if source == "" {
		source = mongodb.AdminDatabase
	}

	u, ok := s.users[source][credential.Username]
	if !ok || u.digest != mongodb.DigestPassword(credential.Username, credential.Password) {
		return nil, errAuthenticationFailed
	}
	if credential.Mechanism != mongodb.MechanismNone && !u.user.HasMechanism(credential.Mechanism) {
		return nil, errAuthenticationFailed
	}

	return &serverSession{s, u.user}, nil
}

type serverSession struct {
	server    *MongoServer
	principal mongodb.User
}

func (ss *serverSession) Namespace(name string) mongodb.Namespace {
	return &serverNamespace{ss, name}
}

func (ss *serverSession) Close(ctx context.Context) error { return nil }

type serverNamespace struct {
	session *serverSession
	name    string
}

func (ns *serverNamespace) Name() string { return ns.name }

func (ns *serverNamespace) CreateUser(ctx context.Context, req mongodb.CreateUserRequest) error {
	s := ns.session.server
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++

	if !ns.session.canAdminister() {
		return mongo.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: fmt.Sprintf("not authorized on %s to execute command { createUser: %q }", ns.name, req.Username),
		}
	}
	if _, ok := s.users[ns.name][req.Username]; ok {
		return mongo.CommandError{
			Code:    51003,
			Message: fmt.Sprintf("User \"%s@%s\" already exists", req.Username, ns.name),
		}
	}

	digest := mongodb.DigestPassword(req.Username, req.Password)
	if req.Digestor == mongodb.DigestorClient && s.RehashClientDigest {
		digest = mongodb.DigestPassword(req.Username, digest)
	}

	mechanisms := req.Mechanisms
	if len(mechanisms) == 0 {
		mechanisms = mongodb.Mechanisms
	}

	s.store(ns.name, mongodb.User{
		Username:   req.Username,
		Roles:      append([]mongodb.Role{}, req.Roles...),
		Mechanisms: append([]mongodb.Mechanism{}, mechanisms...),
	}, digest)
	return nil
}

func (ns *serverNamespace) UsersInfo(ctx context.Context, usernames ...string) ([]mongodb.User, error) {
	users := ns.session.server.Users(ns.name)
	if len(usernames) == 0 {
		return users, nil
	}

	filtered := make([]mongodb.User, 0, len(usernames))
	for _, u := range users {
		for _, username := range usernames {
			if u.Username == username {
				filtered = append(filtered, u)
			}
		}
	}
	return filtered, nil
}

func (ss *serverSession) canAdminister() bool {
	for _, role := range ss.principal.Roles {
		if role.Database != mongodb.AdminDatabase {
			continue
		}
		switch role.Role {
		case "root", "userAdminAnyDatabase":
			return true
		}
	}
	return false
}
