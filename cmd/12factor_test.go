package cmd

import (
	"os"
	"testing"
)

func TestSetupTwelveFactorMode(t *testing.T) {
	defer func() {
		os.Unsetenv(envVarTwelveFactorMode)
		setupTwelveFactorMode()
	}()
	// Plain 12factor mode.
	os.Setenv(envVarTwelveFactorMode, "1")
	setupTwelveFactorMode()
	if !twelveFactorMode {
		t.Fatal("expected twelveFactorMode to be enabled")
	}
	if lambdaMode {
		t.Fatal("expected lambdaMode to be disabled")
	}
	// Lambda mode implies 12factor mode.
	os.Setenv(envVarTwelveFactorMode, "lambda")
	setupTwelveFactorMode()
	if !twelveFactorMode || !lambdaMode {
		t.Fatal("expected twelveFactorMode and lambdaMode to be enabled")
	}
	// Unset disables both.
	os.Unsetenv(envVarTwelveFactorMode)
	setupTwelveFactorMode()
	if twelveFactorMode || lambdaMode {
		t.Fatal("expected twelveFactorMode and lambdaMode to be disabled")
	}
}
