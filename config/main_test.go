package config

import (
	"fmt"
	"os"
	"testing"
)

// TestMain gates the config package tests on GO_ENV=test so a test run
// can never touch the development or production database by accident.
func TestMain(m *testing.M) {
	if env := os.Getenv("GO_ENV"); env != "test" {
		fmt.Fprintf(os.Stderr,
			"\nrefusing to run config tests: GO_ENV is %q, want \"test\".\n"+
				"The config tests open and mutate databases, so they must be\n"+
				"kept away from real environments. Run them with:\n\n"+
				"    GO_ENV=test go test ./config/...\n\n", env)
		os.Exit(1)
	}

	os.Exit(m.Run())
}
