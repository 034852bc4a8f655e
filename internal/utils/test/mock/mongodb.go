package mock

import (
	"context"

	"github.com/charopevez/eob-dbinit/internal/mongodb"
)

// MongoConnector is a mocked MongoDB connector
type MongoConnector struct {
	mongodb.Connector
	ConnectFn func(ctx context.Context, credential mongodb.Credential) (mongodb.Session, error)
}

// Connect calls the mocked Connect implementation if provided,
// otherwise the call falls back to the underlying mongodb.Connector implementation.
// NOTE: this may panic if the underlying mongodb.Connector is left undefined
func (c MongoConnector) Connect(ctx context.Context, credential mongodb.Credential) (mongodb.Session, error) {
	if c.ConnectFn != nil {
		return c.ConnectFn(ctx, credential)
	}
	return c.Connector.Connect(ctx, credential)
}

// MongoSession is a mocked MongoDB session
type MongoSession struct {
	mongodb.Session
	NamespaceFn func(name string) mongodb.Namespace
	CloseFn     func(ctx context.Context) error
}

// Namespace calls the mocked Namespace implementation if provided,
// otherwise the call falls back to the underlying mongodb.Session implementation.
// NOTE: this may panic if the underlying mongodb.Session is left undefined
func (s MongoSession) Namespace(name string) mongodb.Namespace {
	if s.NamespaceFn != nil {
		return s.NamespaceFn(name)
	}
	return s.Session.Namespace(name)
}

// Close calls the mocked Close implementation if provided,
// otherwise the session is considered closed
func (s MongoSession) Close(ctx context.Context) error {
	if s.CloseFn != nil {
		return s.CloseFn(ctx)
	}
	return nil
}

// MongoNamespace is a mocked MongoDB namespace
type MongoNamespace struct {
	mongodb.Namespace
	NameValue    string
	CreateUserFn func(ctx context.Context, req mongodb.CreateUserRequest) error
	UsersInfoFn  func(ctx context.Context, usernames ...string) ([]mongodb.User, error)
}

// Name returns the mocked namespace name
func (ns MongoNamespace) Name() string { return ns.NameValue }

// CreateUser calls the mocked CreateUser implementation if provided,
// otherwise the call falls back to the underlying mongodb.Namespace implementation.
// NOTE: this may panic if the underlying mongodb.Namespace is left undefined
func (ns MongoNamespace) CreateUser(ctx context.Context, req mongodb.CreateUserRequest) error {
	if ns.CreateUserFn != nil {
		return ns.CreateUserFn(ctx, req)
	}
	return ns.Namespace.CreateUser(ctx, req)
}

// UsersInfo calls the mocked UsersInfo implementation if provided,
// otherwise the call falls back to the underlying mongodb.Namespace implementation.
// NOTE: this may panic if the underlying mongodb.Namespace is left undefined
func (ns MongoNamespace) UsersInfo(ctx context.Context, usernames ...string) ([]mongodb.User, error) {
	if ns.UsersInfoFn != nil {
		return ns.UsersInfoFn(ctx, usernames...)
	}
	return ns.Namespace.UsersInfo(ctx, usernames...)
}
