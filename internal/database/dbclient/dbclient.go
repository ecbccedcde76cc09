// Package dbclient holds the shared connection configuration and client
// handle used by the source and target database adapters.
package dbclient

import (
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/jd09-test/product-model/pkg/config"
)

// DatabaseConfig describes one database connection.
type DatabaseConfig struct {
	DatabaseVendor string `json:"databaseVendor"` // "oracle", "postgres" or "neo4j"
	Host           string `json:"host"`
	Port           int    `json:"port"`
	Username       string `json:"username,omitempty"`
	Password       string `json:"password,omitempty"`
	DatabaseName   string `json:"databaseName"` // Oracle service name, Postgres database, Neo4j database
	Schema         string `json:"schema,omitempty"`
	SSL            bool   `json:"ssl,omitempty"`
	WalletLocation string `json:"walletLocation,omitempty"` // Oracle wallet directory for TLS connections
}

// DatabaseClient is a connected database handle.
type DatabaseClient struct {
	DB           *sql.DB
	DatabaseType string
	Config       DatabaseConfig
	IsConnected  int32
}

// Close tears the connection down and marks the client disconnected.
func (c *DatabaseClient) Close() error {
	atomic.StoreInt32(&c.IsConnected, 0)
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

// FromConfig reads a DatabaseConfig from the flat application config using
// prefixed keys, e.g. "source.host", "source.port", "source.service".
func FromConfig(cfg *config.Config, prefix string) (DatabaseConfig, error) {
	get := func(key string) string { return cfg.Get(prefix + "." + key) }

	dc := DatabaseConfig{
		DatabaseVendor: cfg.GetDefault(prefix+".vendor", "oracle"),
		Host:           get("host"),
		Port:           cfg.GetInt(prefix+".port", 1521),
		Username:       get("username"),
		Password:       get("password"),
		DatabaseName:   get("service"),
		Schema:         get("schema"),
		SSL:            get("ssl") == "true",
		WalletLocation: get("wallet"),
	}
	if dc.Host == "" {
		return dc, fmt.Errorf("config key %s.host is not set", prefix)
	}
	if dc.DatabaseName == "" {
		return dc, fmt.Errorf("config key %s.service is not set", prefix)
	}
	return dc, nil
}
