package pipeline

import (
	"context"

	"github.com/pkg/errors"

	"github.com/medbridge/edgepipe/constants"
	"github.com/medbridge/edgepipe/helper"
	"github.com/medbridge/edgepipe/logger"
	"github.com/medbridge/edgepipe/rdbms"
	"github.com/medbridge/edgepipe/rdbms/shared"
	"github.com/medbridge/edgepipe/reshape"
	"github.com/medbridge/edgepipe/stats"
)

type LoaderConfig struct {
	Log               logger.Logger
	Name              string
	Db                shared.Connector `errorTxt:"warehouse connection" mandatory:"yes"`
	TargetSchemaTable rdbms.SchemaTable
	BatchSize         int // rows per INSERT statement; defaults to constants.WarehouseBatchSizeDefault.
	// OnProgress optionally receives integer percentage transitions.
	OnProgress func(pct int)
}

// Loader converts a long-format record set into chunked multi-row INSERT
// statements and executes them against the warehouse connection.
// Batches partition the rows without reordering; a failure executing any
// batch aborts the whole load.
type Loader struct {
	log               logger.Logger
	name              string
	db                shared.Connector
	targetSchemaTable rdbms.SchemaTable
	batchSize         int
	onProgress        func(pct int)
}

func NewLoader(cfg *LoaderConfig) (*Loader, error) {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil {
		return nil, err
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = constants.WarehouseBatchSizeDefault
	}
	return &Loader{
		log:               cfg.Log,
		name:              cfg.Name,
		db:                cfg.Db,
		targetSchemaTable: cfg.TargetSchemaTable,
		batchSize:         batchSize,
		onProgress:        cfg.OnProgress,
	}, nil
}

// Load inserts records in fixed-size batches and reports progress on integer
// percentage transitions. The final batch reports exactly 100%.
func (l *Loader) Load(ctx context.Context, records []reshape.Record) error {
	total := len(records)
	if total == 0 {
		l.log.Info(l.name, " has no records to load")
		return nil
	}
	watcher := stats.NewLoadWatcher(l.log, l.name, total)
	watcher.OnProgress = l.onProgress
	defer watcher.Stop()
	gen := l.db.GetDmlGenerator().NewInsertGenerator(&shared.SqlStatementGeneratorConfig{
		Log:          l.log,
		OutputSchema: l.targetSchemaTable.GetSchema(),
		OutputTable:  l.targetSchemaTable.GetTable(),
		TargetCols:   helper.StringSliceToOrderedMap(reshape.TargetColumns),
	}).(shared.SqlStmtTxtBatcher)
	numStatements := 0
	for start := 0; start < total; start += l.batchSize { // for each contiguous batch of rows...
		n := l.batchSize
		if start+n > total { // if this is a short final batch...
			n = total - start
		}
		gen.InitBatch(n)
		for _, rec := range records[start : start+n] {
			if _, err := gen.AddValuesToBatch(rec.Values()); err != nil {
				return errors.Wrapf(ErrWarehouseWriteFailed, "building batch: %v", err)
			}
		}
		sqlStmt := gen.GetStatement()
		if _, err := l.db.ExecContext(ctx, sqlStmt, gen.GetValues()...); err != nil {
			return errors.Wrapf(ErrWarehouseWriteFailed, "executing batch of %v rows into %v: %v",
				n, l.targetSchemaTable.String(), err)
		}
		numStatements++
		watcher.AddRowsDone(n)
	}
	l.log.Info(l.name, " loaded ", total, " rows into ", l.targetSchemaTable.String(),
		" in ", numStatements, " statements")
	return nil
}
