package reshape

import (
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/medbridge/edgepipe/file"
	"github.com/medbridge/edgepipe/logger"
)

func mustReadExtract(t *testing.T, log logger.Logger, csvData string) *file.Extract {
	e, err := file.ReadExtractCsv(log, strings.NewReader(csvData))
	if err != nil {
		t.Fatal("unexpected error reading extract: ", err)
	}
	return e
}

func TestReshape(t *testing.T) {
	log := logger.NewLogger("edgepipe", "info", true)
	// Scenario from the pipeline contract: 2 rows, 3 variables.
	e := mustReadExtract(t, log, "age,heart_rate,bmi\n42,80,22.5\n39,75,31\n")
	records, err := Reshape(&Config{
		Log:         log,
		Extract:     e,
		SourceName:  "f_20240101.csv",
		WorkspaceId: "w1",
	})
	if err != nil {
		t.Fatal("unexpected error: ", err)
	}
	// R rows and C variables produce exactly R*C records.
	if len(records) != 6 {
		t.Fatal("expected 6 records, got ", len(records))
	}
	// 2 contiguous runs of 3 records ordered by ascending rowid, original column order preserved.
	expected := []struct {
		rowId    int
		variable string
		value    string
	}{
		{1, "age", "42"},
		{1, "heart_rate", "80"},
		{1, "bmi", "22.5"},
		{2, "age", "39"},
		{2, "heart_rate", "75"},
		{2, "bmi", "31"},
	}
	for i, exp := range expected {
		r := records[i]
		if r.RowId != exp.rowId || r.Variable != exp.variable || r.Value != exp.value {
			t.Fatalf("record %v mismatch: got %+v, expected %+v", i, r, exp)
		}
		if r.Source != "f_20240101.csv" || r.WorkspaceId != "w1" {
			t.Fatalf("record %v has wrong identity values: %+v", i, r)
		}
	}
}

func TestReshapeRoundTrip(t *testing.T) {
	log := logger.NewLogger("edgepipe", "info", true)
	e := mustReadExtract(t, log, "v1,v2\na,b\nc,d\n")
	records, err := Reshape(&Config{Log: log, Extract: e, SourceName: "s", WorkspaceId: "w"})
	if err != nil {
		t.Fatal("unexpected error: ", err)
	}
	// Mapping variable->value per rowid reconstructs the original rows.
	rows := map[int]map[string]string{}
	for _, r := range records {
		if rows[r.RowId] == nil {
			rows[r.RowId] = map[string]string{}
		}
		rows[r.RowId][r.Variable] = r.Value
	}
	if rows[1]["v1"] != "a" || rows[1]["v2"] != "b" || rows[2]["v1"] != "c" || rows[2]["v2"] != "d" {
		t.Fatalf("round trip failed: %v", rows)
	}
}

func TestReshapeOptionalConstants(t *testing.T) {
	log := logger.NewLogger("edgepipe", "info", true)
	e := mustReadExtract(t, log, "v1\nx\ny\n")
	records, err := Reshape(&Config{
		Log:              log,
		Extract:          e,
		SourceName:       "s",
		WorkspaceId:      "w",
		Mrn:              "mrn-1",
		MetadataFileName: "meta.json",
	})
	if err != nil {
		t.Fatal("unexpected error: ", err)
	}
	// 2 rows x (1 domain variable + 2 injected constants).
	if len(records) != 6 {
		t.Fatal("expected 6 records, got ", len(records))
	}
	// Constants melt after the domain variables within each row group.
	if records[1].Variable != "mrn" || records[1].Value != "mrn-1" {
		t.Fatalf("expected mrn record, got %+v", records[1])
	}
	if records[2].Variable != "metadata_file_name" || records[2].Value != "meta.json" {
		t.Fatalf("expected metadata_file_name record, got %+v", records[2])
	}
	// When omitted they are absent entirely.
	e2 := mustReadExtract(t, log, "v1\nx\n")
	records, err = Reshape(&Config{Log: log, Extract: e2, SourceName: "s", WorkspaceId: "w"})
	if err != nil {
		t.Fatal("unexpected error: ", err)
	}
	if len(records) != 1 || records[0].Variable != "v1" {
		t.Fatalf("expected a single v1 record, got %+v", records)
	}
}

func TestReshapeMalformedExtract(t *testing.T) {
	log := logger.NewLogger("edgepipe", "info", true)
	_, err := Reshape(&Config{
		Log:         log,
		Extract:     &file.Extract{},
		SourceName:  "s",
		WorkspaceId: "w",
	})
	if errors.Cause(err) != file.ErrMalformedExtract {
		t.Fatal("expected ErrMalformedExtract, got: ", err)
	}
}
