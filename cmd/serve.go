package cmd

import (
	"net"

	"github.com/spf13/cobra"

	"github.com/medbridge/edgepipe/actions"
	"github.com/medbridge/edgepipe/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a web service and listen for pipeline runs described in JSON",
	Long: `Start a web service and listen for pipeline runs described in JSON.
POST exchange metadata to /launch to start a run; poll /runs/{runId}/status
and /runs/{runId}/result to monitor it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		servePipelineCfg.Connections = config.Connections
		servePipelineCfg.Stores = config.Connections
		servePipelineCfg.StackDumpOnPanic = stackDumpOnPanic
		servePipelineCfg.LogLevel = serveConfig.LogLevel
		serveConfig.Pipeline = &servePipelineCfg
		serveConfig.StackDumpOnPanic = stackDumpOnPanic
		return actions.RunWebServer(&serveConfig)
	},
}

var serveConfig = actions.WebServerConfig{
	LogLevel: "info",
	Scheme:   "http",
	Addr:     net.IP{0, 0, 0, 0},
	Port:     8080,
}

var servePipelineCfg = actions.PipelineConfig{}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().SortFlags = false
	serveCmd.Flags().IPVarP(&serveConfig.Addr, "address", "a", net.IP{0, 0, 0, 0}, "Address to listen on")
	switches.addFlag(serveCmd, &serveConfig.Port, "port", "8080", false, "")
	switches.addFlag(serveCmd, &serveConfig.LogLevel, "log-level", "info", false, "")
	switches.addFlag(serveCmd, &servePipelineCfg.ScratchDir, "scratch-dir", "", true, "")
	switches.addFlag(serveCmd, &servePipelineCfg.WarehouseConnectionName, "warehouse", "warehouse", false, "")
	switches.addFlag(serveCmd, &servePipelineCfg.RemoteStoreName, "remote-store", "remote", false, "")
	switches.addFlag(serveCmd, &servePipelineCfg.LocalStoreName, "local-store", "local", false, "")
	switches.addFlag(serveCmd, &servePipelineCfg.TargetSchema, "schema", "", false, "")
	switches.addFlag(serveCmd, &servePipelineCfg.TargetTable, "table", "", false, "")
	switches.addFlag(serveCmd, &servePipelineCfg.BatchSize, "batch-size", "5000", false, "")
	switches.addFlag(serveCmd, &servePipelineCfg.RegistryObjectName, "registry-object", "", false, "")
	switches.addFlag(serveCmd, &servePipelineCfg.SkipWarehouseLoad, "skip-load", "", false, "")
	switches.addFlag(serveCmd, &servePipelineCfg.SkipMetadata, "skip-metadata", "", false, "")
	switches.addFlag(serveCmd, &servePipelineCfg.SkipRegistry, "skip-registry", "", false, "")
	switches.addFlag(serveCmd, &servePipelineCfg.FailFast, "fail-fast", "", false, "")
}
