package cmd

import (
	"os"
	"testing"
)

func TestFlagNameToEnvVar(t *testing.T) {
	if got := flagNameToEnvVar("scratch-dir"); got != "EP_SCRATCH_DIR" {
		t.Fatal("unexpected env var name: ", got)
	}
	if got := flagNameToEnvVar("table"); got != "EP_TABLE" {
		t.Fatal("unexpected env var name: ", got)
	}
}

func TestGetCliFlagUsesEnvInTwelveFactorMode(t *testing.T) {
	defer func() { twelveFactorMode = false }()
	twelveFactorMode = true
	os.Setenv("EP_TABLE", "observations")
	defer os.Unsetenv("EP_TABLE")
	sw := switches.getCliFlag("table", "default_table")
	if sw.val != "observations" {
		t.Fatal("expected the env var value, got ", sw.val)
	}
	os.Unsetenv("EP_TABLE")
	sw = switches.getCliFlag("table", "default_table")
	if sw.val != "default_table" {
		t.Fatal("expected the default value, got ", sw.val)
	}
}

func TestGetCliFlagPanicsOnUnregisteredFlag(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an unregistered flag")
		}
	}()
	switches.getCliFlag("no-such-flag", "")
}
