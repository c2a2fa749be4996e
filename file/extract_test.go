package file

import (
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/medbridge/edgepipe/logger"
)

func TestReadExtractCsv(t *testing.T) {
	log := logger.NewLogger("edgepipe", "info", true)
	// Test 1 - a well formed CSV produces an extract with the header's column order.
	csvData := "age,heart_rate,pid\n42,80,p1\n39,75,p2\n"
	e, err := ReadExtractCsv(log, strings.NewReader(csvData))
	if err != nil {
		t.Fatal("unexpected error: ", err)
	}
	if e.NumColumns() != 3 || e.NumRows() != 2 {
		t.Fatalf("unexpected shape: %v x %v", e.NumRows(), e.NumColumns())
	}
	if e.Columns[0] != "age" || e.Columns[2] != "pid" {
		t.Fatal("unexpected column order: ", e.Columns)
	}
	// Test 2 - an empty file is a malformed extract.
	_, err = ReadExtractCsv(log, strings.NewReader(""))
	if errors.Cause(err) != ErrMalformedExtract {
		t.Fatal("expected ErrMalformedExtract, got: ", err)
	}
	// Test 3 - ragged rows are a malformed extract.
	_, err = ReadExtractCsv(log, strings.NewReader("a,b\n1,2,3\n"))
	if errors.Cause(err) != ErrMalformedExtract {
		t.Fatal("expected ErrMalformedExtract, got: ", err)
	}
}

func TestTakeColumn(t *testing.T) {
	log := logger.NewLogger("edgepipe", "info", true)
	csvData := "age,pid,heart_rate\n42,p1,80\n39,p2,75\n"
	e, err := ReadExtractCsv(log, strings.NewReader(csvData))
	if err != nil {
		t.Fatal("unexpected error: ", err)
	}
	// Taking the pid column removes it and preserves row order of values.
	pids, found := e.TakeColumn(log, "pid")
	if !found {
		t.Fatal("expected to find the pid column")
	}
	if len(pids) != 2 || pids[0] != "p1" || pids[1] != "p2" {
		t.Fatal("unexpected pid values: ", pids)
	}
	if e.NumColumns() != 2 || e.Columns[0] != "age" || e.Columns[1] != "heart_rate" {
		t.Fatal("unexpected remaining columns: ", e.Columns)
	}
	if e.Rows[0][1] != "80" {
		t.Fatal("row values were not shifted correctly: ", e.Rows[0])
	}
	// A missing column leaves the extract untouched.
	_, found = e.TakeColumn(log, "no_such_column")
	if found {
		t.Fatal("expected column to be missing")
	}
	if e.NumColumns() != 2 {
		t.Fatal("extract was modified for a missing column")
	}
}
