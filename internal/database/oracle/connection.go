// Package oracle implements the Oracle source and target adapters: row
// extraction, idempotent page loading, DDL execution, and the graph queries
// backing version resolution and ancestry traversal.
package oracle

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/godror/godror" // Oracle driver

	"github.com/jd09-test/product-model/internal/database/dbclient"
)

// Connect establishes a connection to an Oracle database
func Connect(config dbclient.DatabaseConfig) (*dbclient.DatabaseClient, error) {
	var connString strings.Builder

	// Build connection string in Oracle format
	// Format: user/password@host:port/service_name
	if config.SSL {
		// TLS goes through an Oracle wallet; tcps plus wallet_location is
		// enough for the thin driver.
		fmt.Fprintf(&connString, "%s/%s@tcps://%s:%d/%s",
			config.Username,
			config.Password,
			config.Host,
			config.Port,
			config.DatabaseName)
		if config.WalletLocation != "" {
			fmt.Fprintf(&connString, "?wallet_location=%s", config.WalletLocation)
		}
	} else {
		fmt.Fprintf(&connString, "%s/%s@%s:%d/%s",
			config.Username,
			config.Password,
			config.Host,
			config.Port,
			config.DatabaseName)
	}

	db, err := sql.Open("godror", connString.String())
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %v", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error pinging database: %v", err)
	}

	return &dbclient.DatabaseClient{
		DB:           db,
		DatabaseType: "oracle",
		Config:       config,
		IsConnected:  1,
	}, nil
}
