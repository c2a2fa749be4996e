package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/medbridge/edgepipe/logger"
	"github.com/medbridge/edgepipe/rdbms"
	"github.com/medbridge/edgepipe/rdbms/shared"
	"github.com/medbridge/edgepipe/reshape"
)

func testRecords(n int) []reshape.Record {
	recs := make([]reshape.Record, n)
	for i := 0; i < n; i++ {
		recs[i] = reshape.Record{
			Source:      "extract.csv",
			RowId:       i + 1,
			Variable:    "heart_rate",
			Value:       "60",
			WorkspaceId: "ws1",
		}
	}
	return recs
}

func TestLoaderBatching(t *testing.T) {
	log := logger.NewLogger("loader test", "error", true)
	db, execChan := shared.NewMockConnectionWithSqlChan(log, "mock")
	var reported []int
	l, err := NewLoader(&LoaderConfig{
		Log:               log,
		Name:              "test load",
		Db:                db,
		TargetSchemaTable: rdbms.NewSchemaTable("stage", "observations"),
		BatchSize:         5,
		OnProgress:        func(pct int) { reported = append(reported, pct) },
	})
	if err != nil {
		t.Fatal("unexpected error creating loader: ", err)
	}
	// 12 records with batch size 5 gives batches of 5, 5 and 2.
	if err := l.Load(context.Background(), testRecords(12)); err != nil {
		t.Fatal("unexpected error loading records: ", err)
	}
	db.Close()
	var execs []shared.MockExec
	for e := range execChan {
		execs = append(execs, e)
	}
	if len(execs) != 3 {
		t.Fatal("expected 3 batches, got ", len(execs))
	}
	// Each statement targets the sanitized schema.table and carries one bind
	// tuple per record in the batch.
	reTuple := regexp.MustCompile(`\( \?,\?,\?,\?,\? \)`)
	wantTuples := []int{5, 5, 2}
	wantArgs := []int{25, 25, 10}
	for i, e := range execs {
		if !strings.Contains(e.Query, "insert into stage.observations") {
			t.Fatal("unexpected insert target in statement: ", e.Query)
		}
		if !strings.Contains(e.Query, "source,rowid,variable,value,workspace_id") {
			t.Fatal("unexpected column list in statement: ", e.Query)
		}
		if got := len(reTuple.FindAllString(e.Query, -1)); got != wantTuples[i] {
			t.Fatal("batch ", i, ": expected ", wantTuples[i], " value tuples, got ", got)
		}
		if e.NumArgs != wantArgs[i] {
			t.Fatal("batch ", i, ": expected ", wantArgs[i], " args, got ", e.NumArgs)
		}
	}
	// Percentages: 5/12=41%, 10/12=83%, final exactly 100%.
	wantPct := []int{41, 83, 100}
	if len(reported) != len(wantPct) {
		t.Fatal("expected progress ", wantPct, ", got ", reported)
	}
	for i := range wantPct {
		if reported[i] != wantPct[i] {
			t.Fatal("expected progress ", wantPct, ", got ", reported)
		}
	}
}

func TestLoaderEmptyInput(t *testing.T) {
	log := logger.NewLogger("loader test", "error", true)
	db, execChan := shared.NewMockConnectionWithSqlChan(log, "mock")
	l, err := NewLoader(&LoaderConfig{
		Log:               log,
		Name:              "test load",
		Db:                db,
		TargetSchemaTable: rdbms.NewSchemaTable("", "observations"),
	})
	if err != nil {
		t.Fatal("unexpected error creating loader: ", err)
	}
	if err := l.Load(context.Background(), nil); err != nil {
		t.Fatal("unexpected error loading zero records: ", err)
	}
	db.Close()
	if _, ok := <-execChan; ok {
		t.Fatal("expected no statements for zero records")
	}
}

func TestLoaderAbortsOnExecFailure(t *testing.T) {
	log := logger.NewLogger("loader test", "error", true)
	db, execChan := shared.NewMockConnectionFailingAfter(log, 1, fmt.Errorf("warehouse gone away"))
	var reported []int
	l, err := NewLoader(&LoaderConfig{
		Log:               log,
		Name:              "test load",
		Db:                db,
		TargetSchemaTable: rdbms.NewSchemaTable("stage", "observations"),
		BatchSize:         5,
		OnProgress:        func(pct int) { reported = append(reported, pct) },
	})
	if err != nil {
		t.Fatal("unexpected error creating loader: ", err)
	}
	err = l.Load(context.Background(), testRecords(12))
	if err == nil {
		t.Fatal("expected an error when the second batch fails")
	}
	if !strings.Contains(err.Error(), ErrWarehouseWriteFailed.Error()) {
		t.Fatal("expected a warehouse write failure, got: ", err)
	}
	db.Close()
	count := 0
	for range execChan {
		count++
	}
	if count != 1 {
		t.Fatal("expected the load to stop after the failing batch, got ", count, " statements")
	}
	// Only the first batch completed, so only its percentage was reported.
	if len(reported) != 1 || reported[0] != 41 {
		t.Fatal("expected progress [41], got ", reported)
	}
}
