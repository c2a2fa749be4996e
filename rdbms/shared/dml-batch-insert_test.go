package shared

import (
	"regexp"
	"testing"

	"github.com/cevaris/ordered_map"
	"github.com/sirupsen/logrus"
)

func TestSqlInsert(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)
	log.Info("Starting tests for SQL INSERT...")

	omCols := ordered_map.NewOrderedMap()
	omCols.Set("source", "source")
	omCols.Set("rowid", "rowid")
	omCols.Set("value", "value")

	dml := &DmlGeneratorTxtBatch{}
	o := dml.NewInsertGenerator(&SqlStatementGeneratorConfig{
		Log:          log,
		OutputSchema: "",
		OutputTable:  "t2",
		TargetCols:   omCols}).(SqlStmtTxtBatcher)

	var batchIsFull bool
	var err error

	// Create new batch of values size 2.
	o.InitBatch(2)                                                      // create a new batch with room for 2 rows...
	batchIsFull, err = o.AddValuesToBatch([]interface{}{"x", 1, "val"}) // first row should succeed.
	if err != nil {
		t.Fatal(err) // this should not fail here.
	}
	if batchIsFull {
		t.Fatal("The batch should not be full yet.")
	}
	batchIsFull, err = o.AddValuesToBatch([]interface{}{"x", 2, "val2"}) // second row should succeed.
	if err != nil {
		t.Fatal(err) // this should not fail here.
	}
	if !batchIsFull {
		t.Fatal("The batch *should* be full but it is not.")
	}

	// A third row must be rejected.
	_, err = o.AddValuesToBatch([]interface{}{"x", 3, "val3"})
	if err == nil {
		t.Fatal("There should have been an error. The batch is already full.")
	}

	// Confirm the generated SQL has one tuple of bind variables per row.
	sqlStmt := o.GetStatement()
	re := regexp.MustCompile(`insert into t2 \(source,rowid,value\) values \( \?,\?,\? \),\( \?,\?,\? \)`)
	if !re.MatchString(sqlStmt) {
		t.Fatal("unexpected INSERT statement: ", sqlStmt)
	}
	if len(o.GetValues()) != 6 {
		t.Fatal("expected 6 values in the batch, got ", len(o.GetValues()))
	}

	// Wrong number of values is an error.
	o.InitBatch(1)
	_, err = o.AddValuesToBatch([]interface{}{"a", 1})
	if err == nil {
		t.Fatal("There should have been an error. Incorrect number of values deliberately supplied in batch.")
	}

	// A schema qualifies the table name.
	o2 := dml.NewInsertGenerator(&SqlStatementGeneratorConfig{
		Log:          log,
		OutputSchema: "s1",
		OutputTable:  "t1",
		TargetCols:   omCols}).(SqlStmtTxtBatcher)
	o2.InitBatch(1)
	_, err = o2.AddValuesToBatch([]interface{}{"x", 1, "v"})
	if err != nil {
		t.Fatal(err)
	}
	re = regexp.MustCompile(`insert into s1\.t1 `)
	if !re.MatchString(o2.GetStatement()) {
		t.Fatal("unexpected INSERT statement: ", o2.GetStatement())
	}
}
