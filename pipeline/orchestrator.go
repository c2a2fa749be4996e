package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/xid"

	"github.com/medbridge/edgepipe/constants"
	"github.com/medbridge/edgepipe/file"
	"github.com/medbridge/edgepipe/helper"
	"github.com/medbridge/edgepipe/logger"
	"github.com/medbridge/edgepipe/objstore"
	"github.com/medbridge/edgepipe/rdbms"
	"github.com/medbridge/edgepipe/rdbms/shared"
	"github.com/medbridge/edgepipe/registry"
	"github.com/medbridge/edgepipe/reshape"
)

const pidColumnNameDefault = "pid"

type Config struct {
	Log     logger.Logger
	Name    string
	Scratch *file.ScratchDir `errorTxt:"scratch directory" mandatory:"yes"`
	Sync    *Sync            `errorTxt:"object store sync" mandatory:"yes"`
	// Warehouse settings; required when LoadToWarehouse is set.
	Warehouse    shared.Connector
	TargetSchema string
	TargetTable  string
	BatchSize    int
	// Registry; required when MapIdentities is set.
	Registry *registry.Registry
	// Step toggles. The historical pipeline grew as separate variants
	// (plain upload, warehouse load, identity mapping, metadata attachment);
	// one orchestrator now runs any combination.
	LoadToWarehouse bool
	AttachMetadata  bool
	MapIdentities   bool
	// FailFast stops the run on the first failed artifact instead of
	// continuing with the remaining ones.
	FailFast bool
	// PidColumnName is the extract column holding patient identifiers;
	// defaults to "pid".
	PidColumnName string
	// OnProgress optionally receives warehouse load percentage transitions.
	OnProgress func(pct int)
}

// Orchestrator drives the per-artifact sequence:
// read extract, reshape, batched warehouse load, optional metadata attachment
// upload, artifact upload to both tiers, identity registry append, scratch
// cleanup. The registry append and cleanup for an artifact only run once its
// warehouse insert succeeded.
type Orchestrator struct {
	cfg    Config
	loader *Loader
	pidCol string
}

func NewOrchestrator(cfg *Config) (*Orchestrator, error) {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil {
		return nil, err
	}
	o := &Orchestrator{cfg: *cfg, pidCol: cfg.PidColumnName}
	if o.pidCol == "" {
		o.pidCol = pidColumnNameDefault
	}
	if cfg.LoadToWarehouse {
		if cfg.Warehouse == nil {
			return nil, errors.New("a warehouse connection is required to load to the warehouse")
		}
		if cfg.TargetTable == "" {
			return nil, errors.New("a target table is required to load to the warehouse")
		}
		loader, err := NewLoader(&LoaderConfig{
			Log:               cfg.Log,
			Name:              cfg.Name,
			Db:                cfg.Warehouse,
			TargetSchemaTable: rdbms.NewSchemaTable(cfg.TargetSchema, cfg.TargetTable),
			BatchSize:         cfg.BatchSize,
			OnProgress:        cfg.OnProgress,
		})
		if err != nil {
			return nil, err
		}
		o.loader = loader
	}
	if cfg.MapIdentities && cfg.Registry == nil {
		return nil, errors.New("a registry is required to map identities")
	}
	return o, nil
}

// RunResult reports the outcome of one invocation.
type RunResult struct {
	RunId     string
	Processed []string         // artifacts completed end to end.
	Failed    map[string]error // artifact name -> the failure that stopped it.
}

func (r *RunResult) OK() bool {
	return len(r.Failed) == 0
}

// Run processes every artifact named in the exchange. A stage failure stops
// processing of that artifact; remaining artifacts still run unless FailFast
// is configured.
func (o *Orchestrator) Run(ctx context.Context, meta *Exchange) (*RunResult, error) {
	if err := helper.ValidateStructIsPopulated(meta); err != nil {
		return nil, err
	}
	result := &RunResult{
		RunId:  xid.New().String(),
		Failed: make(map[string]error),
	}
	log := o.cfg.Log
	if li, ok := log.(*logger.LoggerImpl); ok { // if we can attach the run id to log lines...
		log = li.WithRunId(result.RunId)
	}
	log.Info(o.cfg.Name, " run started with ", len(meta.FileNames), " artifact(s)")
	for i, fileName := range meta.FileNames { // strictly sequential per artifact.
		err := o.processArtifact(ctx, log, meta, fileName, meta.CreationTime(i))
		if err != nil {
			log.Error(o.cfg.Name, " artifact ", fileName, " failed: ", err)
			result.Failed[fileName] = err
			if o.cfg.FailFast {
				log.Warn(o.cfg.Name, " stopping run after failure (fail-fast)")
				break
			}
			continue
		}
		result.Processed = append(result.Processed, fileName)
	}
	log.Info(o.cfg.Name, " run complete: ", len(result.Processed), " ok, ", len(result.Failed), " failed")
	return result, nil
}

// processArtifact runs the full stage sequence for one artifact.
// The scratch payload is read exactly once, up front, so every later consumer
// (both tier uploads) works from the same bytes and no stage ever re-reads a
// file that cleanup already removed.
func (o *Orchestrator) processArtifact(ctx context.Context, log logger.Logger, meta *Exchange, fileName string, ts time.Time) error {
	// Read.
	data, err := o.cfg.Scratch.LoadFile(fileName)
	if err != nil {
		return err
	}
	extract, err := file.ReadExtractCsv(log, bytes.NewReader(data))
	if err != nil {
		return err
	}
	// Strip the patient identifier column before the reshape; its values feed
	// the registry, not the warehouse.
	var pids []string
	if o.cfg.MapIdentities {
		pids, _ = extract.TakeColumn(log, o.pidCol)
	}
	// Reshape.
	metadataFileName := ""
	if o.cfg.AttachMetadata {
		metadataFileName = meta.MetadataFileName
	}
	records, err := reshape.Reshape(&reshape.Config{
		Log:              log,
		Extract:          extract,
		SourceName:       fileName,
		WorkspaceId:      meta.WorkspaceId,
		Mrn:              meta.Mrn,
		MetadataFileName: metadataFileName,
	})
	if err != nil {
		return err
	}
	// Load. A failure here aborts the artifact: the registry entry and the
	// dependent uploads must not proceed if the warehouse write failed.
	if o.loader != nil {
		if err := o.loader.Load(ctx, records); err != nil {
			return err
		}
	}
	// Metadata attachment goes to the warehouse-adjacent tier, only after the
	// load above succeeded.
	if o.cfg.AttachMetadata && metadataFileName != "" && len(meta.MetadataContent) > 0 {
		name := o.cfg.Sync.ResolveName(objstore.TierRemote, metadataFileName, ts)
		if err := o.cfg.Sync.Upload(objstore.TierRemote, name, meta.MetadataContent, constants.ContentTypeOctetStream); err != nil {
			return err
		}
	}
	// Artifact to the remote data lake.
	remoteName := o.cfg.Sync.ResolveName(objstore.TierRemote, fileName, ts)
	if err := o.cfg.Sync.Upload(objstore.TierRemote, remoteName, data, meta.ContentType); err != nil {
		return err
	}
	// Artifact to the local cache, from the payload read before any cleanup.
	localName := o.cfg.Sync.ResolveName(objstore.TierLocal, fileName, ts)
	if err := o.cfg.Sync.Upload(objstore.TierLocal, localName, data, meta.ContentType); err != nil {
		return err
	}
	// Registry linkage, keyed by the uploaded object name.
	if o.cfg.MapIdentities && len(pids) > 0 {
		if err := o.cfg.Registry.AppendMappings(localName, pids); err != nil {
			return err
		}
	}
	// Cleanup last.
	return o.cfg.Scratch.RemoveFile(fileName)
}
