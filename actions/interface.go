package actions

import (
	"github.com/medbridge/edgepipe/objstore"
	"github.com/medbridge/edgepipe/rdbms/shared"
)

type ConnectionHandler interface {
	GetConnectionType(connectionName string) (connectionType string, err error)
	GetConnectionDetails(connectionName string) (connectionDetails *shared.ConnectionDetails, err error)
}

type ConnectionLoader interface {
	LoadConnection(connectionName string) (shared.ConnectionDetails, error)
	LoadConnectionWithEnvOverride(connectionName string, connectionType string) (shared.ConnectionDetails, error)
}

// StoreLoader fetches object store tier settings by connection name.
type StoreLoader interface {
	GetStoreConfig(connectionName string) (*objstore.StoreConfig, error)
}

type ConnectionValidator interface {
	Parse() error
	GetMap(m map[string]string) map[string]string
	GetScheme() (string, error)
}

type ConnectionGetterSetter interface {
	Get(key string, out interface{}) error
	Set(key string, val interface{}) error
	Delete(key string) error
}
