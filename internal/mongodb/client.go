package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	// DefaultURI is the connection string used when none is configured
	DefaultURI = "mongodb://localhost:27017"

	// AdminDatabase is the database holding server-wide principals
	AdminDatabase = "admin"

	connectTimeout = 10 * time.Second
)

// Credential is the set of values used to authenticate a session
type Credential struct {
	Username  string
	Password  string
	Source    string
	Mechanism Mechanism
}

// Connector opens authenticated sessions against a MongoDB server
type Connector interface {
	Connect(ctx context.Context, credential Credential) (Session, error)
}

// Session is an authenticated MongoDB session
type Session interface {
	Namespace(name string) Namespace
	Close(ctx context.Context) error
}

// Namespace is a session handle scoped to a single database
type Namespace interface {
	Name() string
	CreateUser(ctx context.Context, req CreateUserRequest) error
	UsersInfo(ctx context.Context, usernames ...string) ([]User, error)
}

type connector struct {
	uri string
}

// NewConnector creates a new MongoDB connector for the provided connection string
func NewConnector(uri string) Connector {
	if uri == "" {
		uri = DefaultURI
	}
	return &connector{uri}
}

// Connect connects to the server and pings the primary so that
// the credential is proven before the session is handed back
func (c *connector) Connect(ctx context.Context, credential Credential) (Session, error) {
	opts := options.Client().
		ApplyURI(c.uri).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(connectTimeout).
		SetAuth(options.Credential{
			AuthMechanism: string(credential.Mechanism),
			AuthSource:    credential.Source,
			Username:      credential.Username,
			Password:      credential.Password,
			PasswordSet:   true,
		})

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", RedactURI(c.uri), err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &session{client}, nil
}

type session struct {
	client *mongo.Client
}

func (s *session) Namespace(name string) Namespace {
	return &namespace{s.client.Database(name)}
}

func (s *session) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

type namespace struct {
	db *mongo.Database
}

func (ns *namespace) Name() string { return ns.db.Name() }
