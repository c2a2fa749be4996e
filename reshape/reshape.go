// Package reshape converts a row-oriented extract into the normalized
// long format loaded into the warehouse: one record per (observation, variable)
// pair with identity columns source and rowid injected.
package reshape

import (
	"github.com/pkg/errors"

	"github.com/medbridge/edgepipe/constants"
	"github.com/medbridge/edgepipe/file"
	"github.com/medbridge/edgepipe/helper"
	"github.com/medbridge/edgepipe/logger"
)

// Record is one row of the long-format table.
// All variables for one original observation share the same (Source, RowId) pair.
type Record struct {
	Source      string
	RowId       int // 1-based original row position in the extract.
	Variable    string
	Value       string
	WorkspaceId string
}

// TargetColumns is the warehouse column order for a Record.
var TargetColumns = []string{
	constants.FieldNameSource,
	constants.FieldNameRowId,
	constants.FieldNameVariable,
	constants.FieldNameValue,
	constants.FieldNameWorkspaceId,
}

// Values returns the record as a value tuple aligned with TargetColumns.
func (r Record) Values() []interface{} {
	return []interface{}{r.Source, r.RowId, r.Variable, r.Value, r.WorkspaceId}
}

type Config struct {
	Log         logger.Logger
	Extract     *file.Extract `errorTxt:"extract" mandatory:"yes"`
	SourceName  string        `errorTxt:"source name" mandatory:"yes"`
	WorkspaceId string        `errorTxt:"workspace id" mandatory:"yes"`
	// Mrn and MetadataFileName are optional; when set they are appended as
	// constant-valued columns before the melt so they participate like any
	// domain variable. When empty they are absent from the output entirely.
	Mrn              string
	MetadataFileName string
}

// Reshape performs the wide-to-long transform.
// Row indexing is reset to a contiguous 1-based sequence regardless of the
// extract's original indexing. Output ordering: all records for the same
// original row are contiguous, rows appear in ascending rowid order and
// columns keep their original order within each row group.
// It is deterministic and side-effect free.
func Reshape(cfg *Config) ([]Record, error) {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil {
		return nil, err
	}
	if cfg.Extract.NumColumns() == 0 {
		return nil, errors.Wrap(file.ErrMalformedExtract, "extract has zero columns")
	}
	// Optional constant columns join the melt at the end of the column list.
	columns := cfg.Extract.Columns
	constantCols := make([]string, 0, 2)
	constantVals := make([]string, 0, 2)
	if cfg.Mrn != "" {
		constantCols = append(constantCols, constants.FieldNameMrn)
		constantVals = append(constantVals, cfg.Mrn)
	}
	if cfg.MetadataFileName != "" {
		constantCols = append(constantCols, constants.FieldNameMetadataFileName)
		constantVals = append(constantVals, cfg.MetadataFileName)
	}
	numVars := len(columns) + len(constantCols)
	records := make([]Record, 0, cfg.Extract.NumRows()*numVars)
	for rowIdx, row := range cfg.Extract.Rows { // for each original observation...
		rowId := rowIdx + 1 // contiguous 1-based sequence.
		for colIdx, colName := range columns { // melt the domain variables in original column order...
			records = append(records, Record{
				Source:      cfg.SourceName,
				RowId:       rowId,
				Variable:    colName,
				Value:       helper.GetStringFromInterfaceUseUtcTime(cfg.Log, row[colIdx]),
				WorkspaceId: cfg.WorkspaceId,
			})
		}
		for i, colName := range constantCols { // then the injected constants...
			records = append(records, Record{
				Source:      cfg.SourceName,
				RowId:       rowId,
				Variable:    colName,
				Value:       constantVals[i],
				WorkspaceId: cfg.WorkspaceId,
			})
		}
	}
	return records, nil
}
