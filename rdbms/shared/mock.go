package shared

import (
	"context"

	"github.com/medbridge/edgepipe/logger"
)

// NewMockConnectionWithSqlChan returns a Connector whose executed SQL statements are
// published to the returned channel so tests can assert on them.
// The channel is buffered; drain it before exceeding the buffer size.
func NewMockConnectionWithSqlChan(log logger.Logger, dbType string) (Connector, chan MockExec) {
	c := make(chan MockExec, 100)
	return &mockConnection{log: log, dbType: dbType, execChan: c}, c
}

// MockExec captures one Exec call made against the mock connection.
type MockExec struct {
	Query   string
	NumArgs int
}

type mockConnection struct {
	log      logger.Logger
	dbType   string
	execChan chan MockExec
	// FailAfter aborts Exec with an error once this many statements have run; 0 disables.
	FailAfter int
	execCount int
	failErr   error
}

// NewMockConnectionFailingAfter returns a mock Connector that errors on the (n+1)th Exec.
func NewMockConnectionFailingAfter(log logger.Logger, n int, err error) (Connector, chan MockExec) {
	c := make(chan MockExec, 100)
	return &mockConnection{log: log, dbType: "mock", execChan: c, FailAfter: n, failErr: err}, c
}

func (m *mockConnection) Exec(query string, args ...interface{}) (Result, error) {
	return m.ExecContext(context.Background(), query, args...)
}

func (m *mockConnection) ExecContext(ctx context.Context, query string, args ...interface{}) (Result, error) {
	if m.FailAfter > 0 && m.execCount >= m.FailAfter {
		return nil, m.failErr
	}
	m.execCount++
	m.log.Debug("mock connection executing: ", query)
	m.execChan <- MockExec{Query: query, NumArgs: len(args)}
	return mockResult{rows: int64(len(args))}, nil
}

func (m *mockConnection) Close() {
	close(m.execChan)
}

func (m *mockConnection) GetType() string {
	return m.dbType
}

func (m *mockConnection) GetDmlGenerator() DmlGenerator {
	return &DmlGeneratorTxtBatch{}
}

type mockResult struct {
	rows int64
}

func (r mockResult) LastInsertId() (int64, error) {
	return 0, nil
}

func (r mockResult) RowsAffected() (int64, error) {
	return r.rows, nil
}
