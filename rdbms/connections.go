package rdbms

import (
	"fmt"

	"github.com/medbridge/edgepipe/constants"
	"github.com/medbridge/edgepipe/logger"
	"github.com/medbridge/edgepipe/rdbms/shared"
)

// OpenDbConnection opens a warehouse connection using the supplied ConnectionDetails struct in c.
func OpenDbConnection(log logger.Logger, c shared.ConnectionDetails) (db shared.Connector, err error) {
	log.Debug("opening connection type ", c.Type, " with logicalName ", c.LogicalName) // don't log password details in c.Data!
	switch c.Type {
	case constants.ConnectionTypeSnowflake:
		db, err = newSnowflakeConnection(log, shared.GetDsnConnectionDetails(&c))
	case constants.ConnectionTypeMockWh:
		db, _ = shared.NewMockConnectionWithSqlChan(log, constants.ConnectionTypeMockWh)
	default: // else we have an unsupported warehouse...
		err = fmt.Errorf("unsupported warehouse type, %q", c.Type)
	}
	return
}
