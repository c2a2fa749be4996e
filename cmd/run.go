package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/medbridge/edgepipe/actions"
	"github.com/medbridge/edgepipe/config"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the ingestion pipeline for a set of staged artifacts",
	Long: `Run the ingestion pipeline for the staged artifacts named in an exchange
metadata file. Each artifact is reshaped and loaded into the warehouse,
synced to both object storage tiers and recorded in the identity mapping
registry, then removed from the scratch directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		runPipelineCfg.Connections = config.Connections
		runPipelineCfg.Stores = config.Connections
		runPipelineCfg.StackDumpOnPanic = stackDumpOnPanic
		if isatty.IsTerminal(os.Stdout.Fd()) { // if a human is watching...
			runPipelineCfg.OnProgress = printProgress
		}
		cmd.SilenceUsage = true
		return runPipeline()
	},
}

var runPipelineCfg = actions.PipelineConfig{}
var runExchangeFile string

func runPipeline() error {
	meta, err := actions.ReadExchangeFile(runExchangeFile)
	if err != nil {
		return err
	}
	result, err := actions.RunPipeline(&runPipelineCfg, meta)
	if runPipelineCfg.OnProgress != nil {
		fmt.Println() // terminate the progress line.
	}
	if err != nil {
		return err
	}
	fmt.Printf("Run %v complete: %v artifact(s) processed\n", result.RunId, len(result.Processed))
	return nil
}

func printProgress(pct int) {
	fmt.Printf("\rloading... %3d%%", pct)
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().SortFlags = false
	switches.addFlag(runCmd, &runExchangeFile, "file", "", true, "")
	_ = runCmd.MarkFlagFilename("file", "json", "yaml")
	switches.addFlag(runCmd, &runPipelineCfg.ScratchDir, "scratch-dir", "", true, "")
	switches.addFlag(runCmd, &runPipelineCfg.WarehouseConnectionName, "warehouse", "warehouse", false, "")
	switches.addFlag(runCmd, &runPipelineCfg.RemoteStoreName, "remote-store", "remote", false, "")
	switches.addFlag(runCmd, &runPipelineCfg.LocalStoreName, "local-store", "local", false, "")
	switches.addFlag(runCmd, &runPipelineCfg.TargetSchema, "schema", "", false, "")
	switches.addFlag(runCmd, &runPipelineCfg.TargetTable, "table", "", false, "")
	switches.addFlag(runCmd, &runPipelineCfg.BatchSize, "batch-size", "5000", false, "")
	switches.addFlag(runCmd, &runPipelineCfg.RegistryObjectName, "registry-object", "", false, "")
	switches.addFlag(runCmd, &runPipelineCfg.SkipWarehouseLoad, "skip-load", "", false, "")
	switches.addFlag(runCmd, &runPipelineCfg.SkipMetadata, "skip-metadata", "", false, "")
	switches.addFlag(runCmd, &runPipelineCfg.SkipRegistry, "skip-registry", "", false, "")
	switches.addFlag(runCmd, &runPipelineCfg.FailFast, "fail-fast", "", false, "")
	switches.addFlag(runCmd, &runPipelineCfg.LogLevel, "log-level", "info", false, "")
}
