package shared

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// WhConnection is a wrapper around Go native sql.DB.
// It also adds the DmlGenerator interface for use by the batch loader when it
// outputs records to the warehouse.
type WhConnection struct {
	DbSql  *sql.DB
	Dml    DmlGenerator
	DbType string
}

// Connector:

func (c *WhConnection) Exec(query string, args ...interface{}) (Result, error) {
	return c.ExecContext(context.Background(), query, args...)
}

func (c *WhConnection) ExecContext(ctx context.Context, query string, args ...interface{}) (Result, error) {
	if c.DbSql == nil {
		return nil, errors.New("WhConnection was not configured correctly: DbSql is missing")
	}
	return c.DbSql.ExecContext(ctx, query, args...)
}

func (c *WhConnection) Close() {
	_ = c.DbSql.Close()
}

func (c *WhConnection) GetDmlGenerator() DmlGenerator {
	return c.Dml
}

func (c *WhConnection) GetType() string {
	return c.DbType
}
