// Package neo4j implements an alternative graph target: the same vertex
// pages the Oracle target merges into staging tables can be loaded as labeled
// nodes into a Neo4j database instead.
package neo4j

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/jd09-test/product-model/internal/database/dbclient"
)

// Client is a connected Neo4j driver handle.
type Client struct {
	Driver neo4j.DriverWithContext
	Config dbclient.DatabaseConfig
}

// Connect establishes a connection to a Neo4j database
func Connect(ctx context.Context, cfg dbclient.DatabaseConfig) (*Client, error) {
	var connString strings.Builder

	// Build connection URI
	scheme := "neo4j"
	if cfg.SSL {
		scheme = "neo4j+s" // Use secure connection
	}
	fmt.Fprintf(&connString, "%s://%s:%d", scheme, cfg.Host, cfg.Port)

	auth := neo4j.BasicAuth(cfg.Username, cfg.Password, "")

	driver, err := neo4j.NewDriverWithContext(connString.String(), auth)
	if err != nil {
		return nil, fmt.Errorf("error creating Neo4j driver: %v", err)
	}

	// Test the connection
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("error connecting to Neo4j database: %v", err)
	}

	return &Client{Driver: driver, Config: cfg}, nil
}

// Close shuts the driver down.
func (c *Client) Close(ctx context.Context) error {
	return c.Driver.Close(ctx)
}
