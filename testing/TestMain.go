package testing

import (
	"os"
	"sync"
	stdtesting "testing"
)

var once sync.Once

func ensureTestMode() {
	once.Do(func() {
		_ = os.Setenv("PORTAL_TEST_MODE", "1")
		if os.Getenv("PORTAL_SEED") == "" {
			_ = os.Setenv("PORTAL_SEED", "42")
		}
	})
}

func init() {
	ensureTestMode()
}

// TestMain switches the portal into test mode before running m.
func TestMain(m *stdtesting.M) {
	ensureTestMode()
	os.Exit(m.Run())
}
