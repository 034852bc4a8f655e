package bootstrap_test

import (
	"context"
	"errors"
	"testing"

	"github.com/charopevez/eob-dbinit/internal/bootstrap"
	"github.com/charopevez/eob-dbinit/internal/mongodb"
	"github.com/charopevez/eob-dbinit/internal/telemetry"
	"github.com/charopevez/eob-dbinit/internal/utils/test/assert"
	"github.com/charopevez/eob-dbinit/internal/utils/test/mock"

	"go.mongodb.org/mongo-driver/mongo"
)

var allSteps = []bootstrap.Step{
	bootstrap.StepAuthenticateAdmin,
	bootstrap.StepSelectNamespace,
	bootstrap.StepCreateUser,
	bootstrap.StepAuthenticateUser,
}

var eobuser = mongodb.User{
	ID:         "eob_system.eobuser",
	Username:   "eobuser",
	Database:   "eob_system",
	Roles:      []mongodb.Role{{Role: "readWrite", Database: "eob_system"}},
	Mechanisms: []mongodb.Mechanism{mongodb.MechanismSCRAMSHA1},
}

type trackedEvent struct {
	EventType telemetry.EventType
	Step      interface{}
}

func newTelemetry() (*[]trackedEvent, telemetry.Service) {
	var events []trackedEvent
	return &events, mock.TelemetryService{
		TrackEventFn: func(eventType telemetry.EventType, data ...telemetry.EventData) {
			var step interface{}
			for _, d := range data {
				if d.Key == telemetry.EventDataKeyStep {
					step = d.Value
				}
			}
			events = append(events, trackedEvent{eventType, step})
		},
	}
}

func TestRun(t *testing.T) {
	t.Run("Should provision the user and authenticate as it", func(t *testing.T) {
		server := mock.NewMongoServer("eobadm", "eobpass")

		result, err := bootstrap.Run(context.Background(), server, bootstrap.DefaultPlan())
		assert.Nil(t, err)

		assert.Equal(t, allSteps, result.Completed)
		assert.True(t, result.Verified, "the new user must have authenticated")
		assert.Equal(t, &eobuser, result.User)
		assert.Equal(t, []mongodb.User{eobuser}, server.Users("eob_system"))
		assert.Equal(t, 2, server.Connects())
		assert.Equal(t, 1, server.Creates())
	})

	t.Run("Should stop at the first step when the admin password is wrong", func(t *testing.T) {
		server := mock.NewMongoServer("eobadm", "eobpass")

		plan := bootstrap.DefaultPlan()
		plan.Admin.Password = "eobpass2"

		result, err := bootstrap.Run(context.Background(), server, plan)

		var authErr *bootstrap.AuthenticationError
		assert.ErrorAs(t, err, &authErr)
		assert.Equal(t, bootstrap.StepAuthenticateAdmin, authErr.FailedStep())
		assert.Equal(t, "failed to authenticate as eobadm@admin: (AuthenticationFailed) Authentication failed.", err.Error())

		assert.Equal(t, 0, len(result.Completed))
		assert.False(t, result.Verified, "the new user must not have authenticated")
		assert.Equal(t, 1, server.Connects())
		assert.Equal(t, 0, server.Creates())
		assert.Equal(t, 0, len(server.Users("eob_system")))
	})

	t.Run("Should refuse to create the user a second time", func(t *testing.T) {
		server := mock.NewMongoServer("eobadm", "eobpass")

		_, err := bootstrap.Run(context.Background(), server, bootstrap.DefaultPlan())
		assert.Nil(t, err)

		result, err := bootstrap.Run(context.Background(), server, bootstrap.DefaultPlan())

		var dupErr *bootstrap.DuplicateUserError
		assert.ErrorAs(t, err, &dupErr)
		assert.Equal(t, "user eobuser already exists in eob_system", err.Error())
		assert.Equal(t, allSteps[:2], result.Completed)
		assert.Equal(t, 2, server.Creates())
		assert.Equal(t, []mongodb.User{eobuser}, server.Users("eob_system"))
	})

	t.Run("Should report the new user failing to authenticate as a mechanism mismatch", func(t *testing.T) {
		server := mock.NewMongoServer("eobadm", "eobpass")
		server.RehashClientDigest = true

		result, err := bootstrap.Run(context.Background(), server, bootstrap.DefaultPlan())

		var mismatchErr *bootstrap.MechanismMismatchError
		assert.ErrorAs(t, err, &mismatchErr)
		assert.Equal(t, bootstrap.StepAuthenticateUser, mismatchErr.FailedStep())
		assert.Equal(t, allSteps[:3], result.Completed)
		assert.False(t, result.Verified, "the new user must not have authenticated")
		assert.Equal(t, &eobuser, result.User)
	})

	t.Run("Should provision a server digested user", func(t *testing.T) {
		server := mock.NewMongoServer("eobadm", "eobpass")

		plan := bootstrap.DefaultPlan()
		plan.Mechanisms = []mongodb.Mechanism{mongodb.MechanismSCRAMSHA256}
		plan.Digestor = mongodb.DigestorServer

		result, err := bootstrap.Run(context.Background(), server, plan)
		assert.Nil(t, err)
		assert.True(t, result.Verified, "the new user must have authenticated")
		assert.Equal(t, []mongodb.Mechanism{mongodb.MechanismSCRAMSHA256}, result.User.Mechanisms)
	})

	t.Run("Should not connect with an invalid plan", func(t *testing.T) {
		server := mock.NewMongoServer("eobadm", "eobpass")

		plan := bootstrap.DefaultPlan()
		plan.Roles = []mongodb.Role{{Role: "root", Database: "admin"}}

		_, err := bootstrap.Run(context.Background(), server, plan)
		assert.Equal(t, errors.New("role root@admin must be scoped to namespace eob_system"), err)
		assert.Equal(t, 0, server.Connects())
	})

	t.Run("Should track every step with telemetry", func(t *testing.T) {
		server := mock.NewMongoServer("eobadm", "eobpass")
		events, service := newTelemetry()

		_, err := bootstrap.Run(context.Background(), server, bootstrap.DefaultPlan(), bootstrap.WithTelemetry(service))
		assert.Nil(t, err)

		assert.Equal(t, []trackedEvent{
			{telemetry.EventTypeStepStart, 1},
			{telemetry.EventTypeStepComplete, 1},
			{telemetry.EventTypeStepStart, 2},
			{telemetry.EventTypeStepComplete, 2},
			{telemetry.EventTypeStepStart, 3},
			{telemetry.EventTypeStepComplete, 3},
			{telemetry.EventTypeStepStart, 4},
			{telemetry.EventTypeStepComplete, 4},
		}, *events)
	})

	t.Run("Should track the failed step with telemetry", func(t *testing.T) {
		server := mock.NewMongoServer("eobadm", "eobpass")
		events, service := newTelemetry()

		plan := bootstrap.DefaultPlan()
		plan.Admin.Password = "eobpass2"

		_, err := bootstrap.Run(context.Background(), server, plan, bootstrap.WithTelemetry(service))
		assert.NotNil(t, err)

		assert.Equal(t, []trackedEvent{
			{telemetry.EventTypeStepStart, 1},
			{telemetry.EventTypeStepError, 1},
		}, *events)
	})

	t.Run("Should print the progress of every step", func(t *testing.T) {
		server := mock.NewMongoServer("eobadm", "eobpass")
		out, ui := mock.NewUI()

		_, err := bootstrap.Run(context.Background(), server, bootstrap.DefaultPlan(), bootstrap.WithUI(ui))
		assert.Nil(t, err)

		assert.Equal(t, `01:23:45 UTC DEBUG Step 1: authenticate as administrator
01:23:45 UTC DEBUG Step 2: select target namespace
01:23:45 UTC DEBUG Step 3: create user
01:23:45 UTC DEBUG Step 4: authenticate as new user
`, out.String())
	})
}

func TestRunWithMockedSession(t *testing.T) {
	newConnector := func(namespace mongodb.Namespace, closeErr error) mongodb.Connector {
		return mock.MongoConnector{
			ConnectFn: func(ctx context.Context, credential mongodb.Credential) (mongodb.Session, error) {
				return mock.MongoSession{
					NamespaceFn: func(name string) mongodb.Namespace { return namespace },
					CloseFn:     func(ctx context.Context) error { return closeErr },
				}, nil
			},
		}
	}

	t.Run("Should report a lack of privilege", func(t *testing.T) {
		connector := newConnector(mock.MongoNamespace{
			NameValue: "eob_system",
			CreateUserFn: func(ctx context.Context, req mongodb.CreateUserRequest) error {
				return mongo.CommandError{Code: 13, Name: "Unauthorized", Message: "not authorized on eob_system to execute command"}
			},
		}, nil)

		result, err := bootstrap.Run(context.Background(), connector, bootstrap.DefaultPlan())

		var privErr *bootstrap.PrivilegeError
		assert.ErrorAs(t, err, &privErr)
		assert.Equal(t, "eobadm is not allowed to create users in eob_system: (Unauthorized) not authorized on eob_system to execute command", err.Error())
		assert.Equal(t, allSteps[:2], result.Completed)
	})

	t.Run("Should wrap any other create user failure with its step", func(t *testing.T) {
		connector := newConnector(mock.MongoNamespace{
			NameValue: "eob_system",
			CreateUserFn: func(ctx context.Context, req mongodb.CreateUserRequest) error {
				return errors.New("connection reset")
			},
		}, nil)

		_, err := bootstrap.Run(context.Background(), connector, bootstrap.DefaultPlan())

		var stepErr *bootstrap.StepError
		assert.ErrorAs(t, err, &stepErr)
		assert.Equal(t, "failed to create user: connection reset", err.Error())
	})

	t.Run("Should send the client digested password for the create user request", func(t *testing.T) {
		var req mongodb.CreateUserRequest
		connector := newConnector(mock.MongoNamespace{
			NameValue: "eob_system",
			CreateUserFn: func(ctx context.Context, r mongodb.CreateUserRequest) error {
				req = r
				return nil
			},
			UsersInfoFn: func(ctx context.Context, usernames ...string) ([]mongodb.User, error) {
				return []mongodb.User{eobuser}, nil
			},
		}, nil)

		result, err := bootstrap.Run(context.Background(), connector, bootstrap.DefaultPlan())
		assert.Nil(t, err)

		assert.Equal(t, mongodb.CreateUserRequest{
			Username:   "eobuser",
			Password:   "eobuserpass",
			Roles:      []mongodb.Role{{Role: "readWrite", Database: "eob_system"}},
			Mechanisms: []mongodb.Mechanism{mongodb.MechanismSCRAMSHA1},
			Digestor:   mongodb.DigestorClient,
		}, req)
		assert.Equal(t, allSteps, result.Completed)
	})

	t.Run("Should warn when the user cannot be read back or a session cannot be closed", func(t *testing.T) {
		connector := newConnector(mock.MongoNamespace{
			NameValue:    "eob_system",
			CreateUserFn: func(ctx context.Context, req mongodb.CreateUserRequest) error { return nil },
			UsersInfoFn: func(ctx context.Context, usernames ...string) ([]mongodb.User, error) {
				return nil, errors.New("read failed")
			},
		}, errors.New("already closed"))
		out, ui := mock.NewUI()

		result, err := bootstrap.Run(context.Background(), connector, bootstrap.DefaultPlan(), bootstrap.WithUI(ui))
		assert.Nil(t, err)
		assert.Nil(t, result.User)
		assert.True(t, result.Verified, "the new user must have authenticated")

		assert.Equal(t, `01:23:45 UTC DEBUG Step 1: authenticate as administrator
01:23:45 UTC DEBUG Step 2: select target namespace
01:23:45 UTC DEBUG Step 3: create user
01:23:45 UTC WARN  Failed to read back user eobuser: read failed
01:23:45 UTC DEBUG Step 4: authenticate as new user
01:23:45 UTC WARN  Failed to close the session of eobuser: already closed
01:23:45 UTC WARN  Failed to close the session of eobadm: already closed
`, out.String())
	})

	t.Run("Should wrap a connection failure with its step", func(t *testing.T) {
		connector := mock.MongoConnector{
			ConnectFn: func(ctx context.Context, credential mongodb.Credential) (mongodb.Session, error) {
				return nil, errors.New("server selection timeout")
			},
		}

		_, err := bootstrap.Run(context.Background(), connector, bootstrap.DefaultPlan())

		var stepErr *bootstrap.StepError
		assert.ErrorAs(t, err, &stepErr)
		assert.Equal(t, bootstrap.StepAuthenticateAdmin, stepErr.FailedStep())
		assert.Equal(t, "failed to authenticate as administrator: server selection timeout", err.Error())
	})
}

func TestVerify(t *testing.T) {
	server := mock.NewMongoServer("eobadm", "eobpass")
	_, err := bootstrap.Run(context.Background(), server, bootstrap.DefaultPlan())
	assert.Nil(t, err)

	t.Run("Should authenticate as the provisioned user", func(t *testing.T) {
		assert.Nil(t, bootstrap.Verify(context.Background(), server, bootstrap.DefaultPlan()))
	})

	t.Run("Should report a wrong user password as an authentication error", func(t *testing.T) {
		plan := bootstrap.DefaultPlan()
		plan.User.Password = "wrong"

		err := bootstrap.Verify(context.Background(), server, plan)

		var authErr *bootstrap.AuthenticationError
		assert.ErrorAs(t, err, &authErr)
		assert.Equal(t, bootstrap.StepAuthenticateUser, authErr.FailedStep())
		assert.Equal(t, "eobuser", authErr.Username)
		assert.Equal(t, "eob_system", authErr.Source)
	})

	t.Run("Should report a mechanism the user was not created with as an authentication error", func(t *testing.T) {
		plan := bootstrap.DefaultPlan()
		plan.Mechanisms = []mongodb.Mechanism{mongodb.MechanismSCRAMSHA256}

		var authErr *bootstrap.AuthenticationError
		assert.ErrorAs(t, bootstrap.Verify(context.Background(), server, plan), &authErr)
	})
}

func TestListUsers(t *testing.T) {
	server := mock.NewMongoServer("eobadm", "eobpass")

	t.Run("Should list no users before the bootstrap", func(t *testing.T) {
		users, err := bootstrap.ListUsers(context.Background(), server, bootstrap.DefaultPlan())
		assert.Nil(t, err)
		assert.Equal(t, 0, len(users))
	})

	t.Run("Should list the provisioned user", func(t *testing.T) {
		_, err := bootstrap.Run(context.Background(), server, bootstrap.DefaultPlan())
		assert.Nil(t, err)

		users, err := bootstrap.ListUsers(context.Background(), server, bootstrap.DefaultPlan())
		assert.Nil(t, err)
		assert.Equal(t, []mongodb.User{eobuser}, users)
	})

	t.Run("Should fail with a wrong admin password", func(t *testing.T) {
		plan := bootstrap.DefaultPlan()
		plan.Admin.Password = "eobpass2"

		_, err := bootstrap.ListUsers(context.Background(), server, plan)

		var authErr *bootstrap.AuthenticationError
		assert.ErrorAs(t, err, &authErr)
	})

	t.Run("Should report a lack of privilege", func(t *testing.T) {
		connector := mock.MongoConnector{
			ConnectFn: func(ctx context.Context, credential mongodb.Credential) (mongodb.Session, error) {
				return mock.MongoSession{
					NamespaceFn: func(name string) mongodb.Namespace {
						return mock.MongoNamespace{
							NameValue: name,
							UsersInfoFn: func(ctx context.Context, usernames ...string) ([]mongodb.User, error) {
								return nil, mongo.CommandError{Code: 13, Name: "Unauthorized", Message: "not authorized"}
							},
						}
					},
				}, nil
			},
		}

		_, err := bootstrap.ListUsers(context.Background(), connector, bootstrap.DefaultPlan())

		var privErr *bootstrap.PrivilegeError
		assert.ErrorAs(t, err, &privErr)
	})
}
