package actions

import (
	"context"
	"fmt"
	"io/ioutil"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"

	"github.com/medbridge/edgepipe/constants"
	"github.com/medbridge/edgepipe/file"
	"github.com/medbridge/edgepipe/helper"
	"github.com/medbridge/edgepipe/logger"
	"github.com/medbridge/edgepipe/objstore"
	"github.com/medbridge/edgepipe/pipeline"
	"github.com/medbridge/edgepipe/rdbms"
	"github.com/medbridge/edgepipe/registry"
)

// PipelineConfig carries everything needed to assemble an ingestion pipeline
// from named connections.
type PipelineConfig struct {
	LogLevel         string `errorTxt:"log level" mandatory:"yes"`
	StackDumpOnPanic bool
	Connections      ConnectionLoader `errorTxt:"connection loader" mandatory:"yes"`
	Stores           StoreLoader      `errorTxt:"store loader" mandatory:"yes"`
	// Connection names looked up via Connections and Stores.
	WarehouseConnectionName string
	RemoteStoreName         string `errorTxt:"remote store connection name" mandatory:"yes"`
	LocalStoreName          string `errorTxt:"local store connection name" mandatory:"yes"`
	// Warehouse target.
	TargetSchema string
	TargetTable  string
	BatchSize    int
	// Scratch area holding the staged artifacts.
	ScratchDir string `errorTxt:"scratch directory" mandatory:"yes"`
	// Registry log object name; empty uses the default.
	RegistryObjectName string
	// Stage toggles; the zero value runs the full pipeline.
	SkipWarehouseLoad bool
	SkipMetadata      bool
	SkipRegistry      bool
	FailFast          bool
	// OnProgress optionally receives warehouse load percentage transitions.
	OnProgress func(pct int)
}

// ReadExchangeFile loads pipeline run metadata from a YAML or JSON file.
func ReadExchangeFile(fileName string) (*pipeline.Exchange, error) {
	b, err := ioutil.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "reading exchange file %q", fileName)
	}
	meta := &pipeline.Exchange{}
	if err := yaml.Unmarshal(b, meta); err != nil {
		return nil, errors.Wrapf(err, "parsing exchange file %q", fileName)
	}
	return meta, nil
}

// RunPipeline assembles an orchestrator from the named connections and runs it
// to completion against the supplied exchange metadata.
func RunPipeline(cfg *PipelineConfig, meta *pipeline.Exchange) (*pipeline.RunResult, error) {
	log := logger.NewLogger("edgepipe", cfg.LogLevel, cfg.StackDumpOnPanic)
	o, closer, err := buildOrchestrator(log, cfg)
	if err != nil {
		return nil, err
	}
	defer closer()
	result, err := o.Run(context.Background(), meta)
	if err != nil {
		return nil, err
	}
	if !result.OK() {
		return result, fmt.Errorf("%v of %v artifact(s) failed",
			len(result.Failed), len(result.Failed)+len(result.Processed))
	}
	return result, nil
}

// buildOrchestrator wires the warehouse connection, both object store tiers
// and the registry into a pipeline.Orchestrator. The returned closer releases
// the warehouse connection.
func buildOrchestrator(log logger.Logger, cfg *PipelineConfig) (*pipeline.Orchestrator, func(), error) {
	closer := func() {}
	if err := helper.ValidateStructIsPopulated(cfg); err != nil {
		return nil, closer, err
	}
	// Object store tiers.
	remoteCfg, err := cfg.Stores.GetStoreConfig(cfg.RemoteStoreName)
	if err != nil {
		return nil, closer, errors.Wrapf(err, "loading remote store %q", cfg.RemoteStoreName)
	}
	localCfg, err := cfg.Stores.GetStoreConfig(cfg.LocalStoreName)
	if err != nil {
		return nil, closer, errors.Wrapf(err, "loading local store %q", cfg.LocalStoreName)
	}
	localClient := objstore.NewBasicClient(localCfg)
	sync, err := pipeline.NewSync(&pipeline.SyncConfig{
		Log:    log,
		Name:   "object store sync",
		Remote: pipeline.TierConfig{Client: objstore.NewBasicClient(remoteCfg), NameTemplate: remoteCfg.NameTemplate},
		Local:  pipeline.TierConfig{Client: localClient, NameTemplate: localCfg.NameTemplate},
	})
	if err != nil {
		return nil, closer, err
	}
	// Warehouse.
	ocfg := &pipeline.Config{
		Log:             log,
		Name:            "ingest",
		Scratch:         &file.ScratchDir{Log: log, Dir: cfg.ScratchDir},
		Sync:            sync,
		TargetSchema:    cfg.TargetSchema,
		TargetTable:     cfg.TargetTable,
		BatchSize:       cfg.BatchSize,
		LoadToWarehouse: !cfg.SkipWarehouseLoad,
		AttachMetadata:  !cfg.SkipMetadata,
		MapIdentities:   !cfg.SkipRegistry,
		FailFast:        cfg.FailFast,
		OnProgress:      cfg.OnProgress,
	}
	if !cfg.SkipWarehouseLoad {
		details, err := cfg.Connections.LoadConnectionWithEnvOverride(
			cfg.WarehouseConnectionName, constants.ConnectionTypeSnowflake)
		if err != nil {
			return nil, closer, errors.Wrapf(err, "loading warehouse connection %q", cfg.WarehouseConnectionName)
		}
		db, err := rdbms.OpenDbConnection(log, details)
		if err != nil {
			return nil, closer, err
		}
		closer = func() { db.Close() }
		ocfg.Warehouse = db
	}
	// Registry, kept in the local tier next to the objects it indexes.
	if !cfg.SkipRegistry {
		objectName := cfg.RegistryObjectName
		if objectName == "" {
			objectName = constants.RegistryObjectNameDefault
		}
		reg, err := registry.NewRegistry(&registry.Config{
			Log:        log,
			Store:      localClient,
			ObjectName: objectName,
			Locker: &registry.ObjectLocker{
				Log:      log,
				Store:    localClient,
				LockName: objectName + constants.RegistryLockSuffix,
			},
		})
		if err != nil {
			return nil, closer, err
		}
		ocfg.Registry = reg
	}
	o, err := pipeline.NewOrchestrator(ocfg)
	if err != nil {
		return nil, closer, err
	}
	return o, closer, nil
}
