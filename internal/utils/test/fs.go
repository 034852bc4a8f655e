package testutils

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/mitchellh/go-homedir"
)

// NewTempDir constructs a new temporary directory
// and returns the directory name along with a cleanup function
// or any error that occurred during the process
func NewTempDir(name string) (string, func(), error) {
	dir, err := ioutil.TempDir("", name)
	if err != nil {
		return "", nil, err
	}
	return dir, func() { os.RemoveAll(dir) }, nil
}

// SetupHomeDir points $HOME at a fresh temporary directory for the duration of the test
// and returns the directory name
func SetupHomeDir(t *testing.T) string {
	t.Helper()

	dir, teardown, err := NewTempDir("eob_home")
	if err != nil {
		t.Fatalf("failed to create temporary home: %s", err)
	}

	origHome := os.Getenv("HOME")
	homedir.DisableCache = true
	_ = os.Setenv("HOME", dir)

	t.Cleanup(func() {
		homedir.DisableCache = false
		_ = os.Setenv("HOME", origHome)
		teardown()
	})
	return dir
}
