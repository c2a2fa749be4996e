package config

import (
	"fmt"

	"github.com/medbridge/edgepipe/constants"
	"github.com/medbridge/edgepipe/helper"
	"github.com/medbridge/edgepipe/objstore"
	"github.com/medbridge/edgepipe/rdbms/shared"
)

// GetConnectionType returns the connection type by un-marshalling the connection into
// a shared.ConnectionDetails struct - so connections need to match that structure for now.
// Return an error if the key doesn't exist.
func (c *File) GetConnectionType(connectionName string) (connectionType string, err error) {
	genericConn := &shared.ConnectionDetails{}
	if err := c.Get(connectionName, genericConn); err != nil {
		return "", err
	}
	if genericConn.Type == "" {
		return "", fmt.Errorf("unknown type for connection %q", connectionName)
	}
	return genericConn.Type, nil
}

// GetConnectionDetails fetches generic connection details from the File c using the connectionName to do the lookup.
// If the connection is not found then an error is produced.
func (c *File) GetConnectionDetails(connectionName string) (*shared.ConnectionDetails, error) {
	// Load generic connection details from file.
	genericConn := &shared.ConnectionDetails{}
	if err := c.Get(connectionName, genericConn); err != nil {
		return nil, err
	}
	if genericConn.Type == "" { // if the connection was not found...
		return nil, fmt.Errorf("connection %q is not configured: use 'config' command to create it", connectionName)
	}
	return genericConn, nil
}

func (c *File) LoadConnection(connectionName string) (shared.ConnectionDetails, error) {
	d := shared.ConnectionDetails{}
	err := c.Get(connectionName, &d)
	if err != nil { // if there was an error fetching the connection from config...
		return d, err
	}
	return d, nil
}

// LoadConnectionWithEnvOverride loads a connection from file then applies any
// per-connection environment variable override for its DSN. This lets a
// twelve-factor deployment run with no connections file at all: a connection
// whose DSN comes entirely from the environment is synthesized on the fly.
func (c *File) LoadConnectionWithEnvOverride(connectionName string, connectionType string) (shared.ConnectionDetails, error) {
	d, err := c.LoadConnection(connectionName)
	dsn := ""
	if envErr := helper.ReadValueFromEnv(helper.GetDsnEnvVarName(connectionName), &dsn); envErr == nil { // if the environment supplies a DSN...
		if d.Data == nil {
			d = shared.ConnectionDetails{
				Type:        connectionType,
				LogicalName: connectionName,
				Data:        map[string]string{shared.DefaultDsnConnectionKeyNames.Dsn: dsn},
			}
		} else {
			d.Data[shared.DefaultDsnConnectionKeyNames.Dsn] = dsn
		}
		return d, nil
	}
	return d, err
}

// GetStoreConfig fetches an object store connection and converts it to a
// StoreConfig, applying per-key environment variable overrides,
// e.g. EP_LOCAL_S3_ENDPOINT overrides the endpoint of connection "local".
func (c *File) GetStoreConfig(connectionName string) (*objstore.StoreConfig, error) {
	d, err := c.LoadConnection(connectionName)
	if err != nil { // the environment may still supply everything...
		d = shared.ConnectionDetails{Type: constants.ConnectionTypeS3, LogicalName: connectionName}
	}
	if d.Type != "" && d.Type != constants.ConnectionTypeS3 {
		return nil, fmt.Errorf("connection %q must be of type %v, got %q", connectionName, constants.ConnectionTypeS3, d.Type)
	}
	m := d.Data
	if m == nil {
		m = make(map[string]string)
	}
	for _, key := range []string{"endpoint", "region", "bucket", "prefix", "accessKeyId", "secretAccessKey", "nameTemplate"} {
		val := ""
		if envErr := helper.ReadValueFromEnv(helper.GetStoreEnvVarName(connectionName, key), &val); envErr == nil { // if the environment overrides this key...
			m[key] = val
		}
	}
	cfg := objstore.StoreConfigFromMap(m)
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("connection %q has no bucket configured", connectionName)
	}
	return cfg, nil
}
