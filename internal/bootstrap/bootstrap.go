// Package bootstrap provisions the application user of a MongoDB deployment.
//
// A run is strictly sequential: authenticate as the administrator, select the
// target namespace, create the user, then authenticate as that user. Any
// failure aborts the run and no later step is attempted.
package bootstrap

import (
	"context"

	"github.com/charopevez/eob-dbinit/internal/mongodb"
	"github.com/charopevez/eob-dbinit/internal/telemetry"
	"github.com/charopevez/eob-dbinit/internal/terminal"
)

// Result is the outcome of a bootstrap run
type Result struct {
	Completed []Step

	// User is the created user as read back from the server,
	// nil if the read back failed
	User *mongodb.User

	// Verified is true once the created user authenticated on its own
	Verified bool
}

// Option configures a run
type Option func(r *runner)

// WithTelemetry tracks the start, completion and failure of every step
func WithTelemetry(service telemetry.Service) Option {
	return func(r *runner) { r.telemetry = service }
}

// WithUI prints the progress of every step
func WithUI(ui terminal.UI) Option {
	return func(r *runner) { r.ui = ui }
}

type runner struct {
	connector mongodb.Connector
	plan      Plan
	telemetry telemetry.Service
	ui        terminal.UI
	result    Result
}

func newRunner(connector mongodb.Connector, plan Plan, opts []Option) *runner {
	r := &runner{connector: connector, plan: plan}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run provisions the plan's user
func Run(ctx context.Context, connector mongodb.Connector, plan Plan, opts ...Option) (Result, error) {
	if err := plan.Validate(); err != nil {
		return Result{}, err
	}

	r := newRunner(connector, plan, opts)

	admin, err := r.authenticateAdmin(ctx)
	if err != nil {
		return r.result, err
	}
	defer r.close(ctx, admin, plan.Admin.Username)

	ns := r.selectNamespace(admin)

	if err := r.createUser(ctx, ns); err != nil {
		return r.result, err
	}

	r.readBack(ctx, ns)

	if err := r.authenticateUser(ctx); err != nil {
		if mongodb.IsAuthenticationFailure(err) {
			return r.result, r.fail(StepAuthenticateUser, &MechanismMismatchError{
				Username:   plan.User.Username,
				Namespace:  plan.Namespace,
				Mechanisms: plan.Mechanisms,
				Digestor:   plan.Digestor,
				Err:        err,
			})
		}
		return r.result, r.fail(StepAuthenticateUser, &StepError{StepAuthenticateUser, err})
	}

	return r.result, nil
}

// Verify authenticates as the plan's user without provisioning anything
func Verify(ctx context.Context, connector mongodb.Connector, plan Plan, opts ...Option) error {
	r := newRunner(connector, plan, opts)

	if err := r.authenticateUser(ctx); err != nil {
		cred := plan.userCredential()
		if mongodb.IsAuthenticationFailure(err) {
			return r.fail(StepAuthenticateUser, &AuthenticationError{StepAuthenticateUser, cred.Username, cred.Source, err})
		}
		return r.fail(StepAuthenticateUser, &StepError{StepAuthenticateUser, err})
	}
	return nil
}

// ListUsers authenticates as the administrator and lists the users of the plan's namespace
func ListUsers(ctx context.Context, connector mongodb.Connector, plan Plan, opts ...Option) ([]mongodb.User, error) {
	r := newRunner(connector, plan, opts)

	admin, err := r.authenticateAdmin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.close(ctx, admin, plan.Admin.Username)

	ns := r.selectNamespace(admin)

	users, err := ns.UsersInfo(ctx)
	if err != nil {
		if mongodb.IsUnauthorized(err) {
			return nil, &PrivilegeError{plan.Admin.Username, plan.Namespace, err}
		}
		return nil, err
	}
	return users, nil
}

func (r *runner) authenticateAdmin(ctx context.Context) (mongodb.Session, error) {
	r.start(StepAuthenticateAdmin)

	cred := r.plan.adminCredential()
	session, err := r.connector.Connect(ctx, cred)
	if err != nil {
		if mongodb.IsAuthenticationFailure(err) {
			return nil, r.fail(StepAuthenticateAdmin, &AuthenticationError{StepAuthenticateAdmin, cred.Username, cred.Source, err})
		}
		return nil, r.fail(StepAuthenticateAdmin, &StepError{StepAuthenticateAdmin, err})
	}

	r.complete(StepAuthenticateAdmin)
	return session, nil
}

func (r *runner) selectNamespace(session mongodb.Session) mongodb.Namespace {
	r.start(StepSelectNamespace)
	ns := session.Namespace(r.plan.Namespace)
	r.complete(StepSelectNamespace)
	return ns
}

func (r *runner) createUser(ctx context.Context, ns mongodb.Namespace) error {
	r.start(StepCreateUser)

	if err := ns.CreateUser(ctx, r.plan.createUserRequest()); err != nil {
		switch {
		case mongodb.IsDuplicateUser(err):
			return r.fail(StepCreateUser, &DuplicateUserError{r.plan.User.Username, ns.Name(), err})
		case mongodb.IsUnauthorized(err):
			return r.fail(StepCreateUser, &PrivilegeError{r.plan.Admin.Username, ns.Name(), err})
		}
		return r.fail(StepCreateUser, &StepError{StepCreateUser, err})
	}

	r.complete(StepCreateUser)
	return nil
}

func (r *runner) readBack(ctx context.Context, ns mongodb.Namespace) {
	users, err := ns.UsersInfo(ctx, r.plan.User.Username)
	if err != nil {
		r.print(terminal.NewWarningLog("Failed to read back user %s: %s", r.plan.User.Username, err))
		return
	}
	for i := range users {
		if users[i].Username == r.plan.User.Username {
			r.result.User = &users[i]
			return
		}
	}
	r.print(terminal.NewWarningLog("User %s was not found in %s after its creation", r.plan.User.Username, ns.Name()))
}

func (r *runner) authenticateUser(ctx context.Context) error {
	r.start(StepAuthenticateUser)

	session, err := r.connector.Connect(ctx, r.plan.userCredential())
	if err != nil {
		return err
	}
	r.close(ctx, session, r.plan.User.Username)

	r.result.Verified = true
	r.complete(StepAuthenticateUser)
	return nil
}

func (r *runner) close(ctx context.Context, session mongodb.Session, username string) {
	if err := session.Close(ctx); err != nil {
		r.print(terminal.NewWarningLog("Failed to close the session of %s: %s", username, err))
	}
}

func (r *runner) start(step Step) {
	r.track(telemetry.EventTypeStepStart, telemetry.EventDataStep(int(step), step.String())...)
	r.print(terminal.NewDebugLog("Step %d: %s", step, step))
}

func (r *runner) complete(step Step) {
	r.result.Completed = append(r.result.Completed, step)
	r.track(telemetry.EventTypeStepComplete, telemetry.EventDataStep(int(step), step.String())...)
}

func (r *runner) fail(step Step, err error) error {
	data := append(telemetry.EventDataStep(int(step), step.String()), telemetry.EventDataError(err)...)
	r.track(telemetry.EventTypeStepError, data...)
	return err
}

func (r *runner) track(eventType telemetry.EventType, data ...telemetry.EventData) {
	if r.telemetry != nil {
		r.telemetry.TrackEvent(eventType, data...)
	}
}

func (r *runner) print(logs ...terminal.Log) {
	if r.ui != nil {
		r.ui.Print(logs...)
	}
}
