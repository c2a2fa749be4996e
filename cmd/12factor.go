package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/medbridge/edgepipe/actions"
	"github.com/medbridge/edgepipe/config"
	c "github.com/medbridge/edgepipe/constants"
	"github.com/medbridge/edgepipe/helper"
	"github.com/medbridge/edgepipe/pipeline"
)

// init will be called first due to the lexical order in which these functions are executed.
// This ensures the value of twelveFactorMode is set such that other init() functions that configure
// Cobra can do the job of processing all environment variables that would contain the equivalent
// of the CLI flag structures used by the run and serve commands.
func init() {
	setupTwelveFactorMode()
}

// setupTwelveFactorMode will enable or disable 12 factor mode based on environment variable.
func setupTwelveFactorMode() {
	mode := os.Getenv(envVarTwelveFactorMode)
	if mode != "" { // if variable for 12factor mode is set and we should read env vars to determine actions...
		twelveFactorMode = true
		if strings.ToLower(mode) == "lambda" {
			lambdaMode = true
		}
	} else { // else 12factor mode should be off...
		twelveFactorMode = false // explicitly turn off this mode since tests may have turned it on while others require it off.
		lambdaMode = false
	}
}

const (
	envVarTwelveFactorMode = c.EnvVarPrefix + "_" + "12FACTOR_MODE"
	envVarCommand          = c.EnvVarPrefix + "_" + "COMMAND" // run|serve
	envVarStackDump        = c.EnvVarPrefix + "_" + "STACK_DUMP"
)

var (
	twelveFactorMode bool // true if os env var envVarTwelveFactorMode is set
	lambdaMode       bool // true if os env var envVarTwelveFactorMode is set to lambda
)

// setupPipelineFromEnv completes the pipeline config whose scalar fields were
// already populated from environment variables by addFlag during init.
// Connection credentials come from the connections file if one is mounted,
// overridden by the per-connection environment variables.
func setupPipelineFromEnv(cfg *actions.PipelineConfig) {
	cfg.Connections = config.Connections
	cfg.Stores = config.Connections
	cfg.StackDumpOnPanic = helper.ReadValueFromEnvWithDefault(envVarStackDump, "") != ""
}

func execute12FactorMode() (err error) {
	command := helper.ReadValueFromEnvWithDefault(envVarCommand, "run")
	switch command {
	case "run":
		setupPipelineFromEnv(&runPipelineCfg)
		err = runPipeline()
	case "serve":
		setupPipelineFromEnv(&servePipelineCfg)
		servePipelineCfg.LogLevel = serveConfig.LogLevel
		serveConfig.Pipeline = &servePipelineCfg
		serveConfig.StackDumpOnPanic = servePipelineCfg.StackDumpOnPanic
		err = actions.RunWebServer(&serveConfig)
	default:
		err = fmt.Errorf("invalid command %q in environment variable %v", command, envVarCommand)
	}
	if err != nil {
		fmt.Println("Error: ", err)
	}
	return err
}

// lambdaHandler runs one pipeline invocation per event, where the event body
// is the exchange metadata itself rather than a file on disk.
func lambdaHandler(ctx context.Context, meta pipeline.Exchange) error {
	setupPipelineFromEnv(&runPipelineCfg)
	_, err := actions.RunPipeline(&runPipelineCfg, &meta)
	return err
}
