package testutils

import (
	"context"
	"os"
	"testing"

	"github.com/charopevez/eob-dbinit/internal/mongodb"
)

// MustSkipf skips a test suite, but panics if EOB_NO_SKIP_TEST is set
func MustSkipf(t *testing.T, format string, args ...interface{}) {
	t.Helper()
	if len(os.Getenv("EOB_NO_SKIP_TEST")) > 0 {
		panic("test was skipped, but EOB_NO_SKIP_TEST is set")
	}
	t.Skipf(format, args...)
}

// set of admin credentials a test server is expected to carry
const (
	AdminUsername = "eobadm"
	AdminPassword = "eobpass"
)

var mongoDBServerRunning = false
var mongoDBServerNotRunning = false
var skipUnlessMongoDBServerCalled = false

// MongoDBURI returns the MongoDB server connection string to use for testing
func MongoDBURI() string {
	if !skipUnlessMongoDBServerCalled {
		panic("testutils.SkipUnlessMongoDBServerRunning(t) must be called before testutils.MongoDBURI()")
	}
	return os.Getenv("EOB_MONGODB_URI")
}

// SkipUnlessMongoDBServerRunning skips tests if there is no MongoDB server configured
// or if the configured server does not accept the test admin credentials
var SkipUnlessMongoDBServerRunning = func() func(t *testing.T) {
	return func(t *testing.T) {
		t.Helper()
		if mongoDBServerRunning {
			return
		}
		skipUnlessMongoDBServerCalled = true
		if mongoDBServerNotRunning || MongoDBURI() == "" {
			mongoDBServerNotRunning = true
			MustSkipf(t, "MongoDB server not configured, set EOB_MONGODB_URI to run")
			return
		}

		ctx := context.Background()
		session, err := mongodb.NewConnector(MongoDBURI()).Connect(ctx, mongodb.Credential{
			Username: AdminUsername,
			Password: AdminPassword,
			Source:   mongodb.AdminDatabase,
		})
		if err != nil {
			mongoDBServerNotRunning = true
			MustSkipf(t, "MongoDB server not reachable as %s: %s", AdminUsername, err)
			return
		}
		_ = session.Close(ctx)
		mongoDBServerRunning = true
	}
}()
