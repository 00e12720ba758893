package main

import (
	"os"
	"testing"

	"go.uber.org/goleak"
)

// TestMain clears config overrides from the environment and fails the package
// if a test leaves goroutines running.
func TestMain(m *testing.M) {
	for _, key := range []string{"PORT", "PHRASES_FILE", "LOG_FILE"} {
		_ = os.Unsetenv(key)
	}
	goleak.VerifyTestMain(m)
}
