// Package cli wires the migration pipeline into the graphmigrate command
// tree: DDL compilation, schema apply, data migration, version resolution and
// ancestry traversal.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jd09-test/product-model/internal/database/dbclient"
	"github.com/jd09-test/product-model/internal/database/oracle"
	"github.com/jd09-test/product-model/pkg/config"
	"github.com/jd09-test/product-model/pkg/graphmodel"
	"github.com/jd09-test/product-model/pkg/logger"
)

var (
	configFile string
	modelFile  string
	graphName  string

	log = logger.New("graphmigrate")
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "graphmigrate",
	Short: "Product graph migration toolkit",
	Long: "Compiles a declarative graph model into Oracle 26ai property graph DDL, migrates product data " +
		"from a relational source into the staging tables, and runs version and ancestry queries against " +
		"the populated graph.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "config.json", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&modelFile, "graph-model", "graph_model.json", "Path to graph model JSON")
	rootCmd.PersistentFlags().StringVar(&graphName, "graph", "", "Property graph name (overrides config)")

	rootCmd.AddCommand(ddlCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(ancestorsCmd)
}

// loadConfig reads the application config file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("could not load config: %w", err)
	}
	return cfg, nil
}

// loadModel parses and validates the graph model file.
func loadModel() (*graphmodel.GraphModel, error) {
	model, err := graphmodel.LoadFile(modelFile)
	if err != nil {
		return nil, fmt.Errorf("could not load graph model: %w", err)
	}
	return model, nil
}

// effectiveGraphName resolves the graph name from flag, then config, then the
// compiler default.
func effectiveGraphName(cfg *config.Config) string {
	if graphName != "" {
		return graphName
	}
	return cfg.GetDefault("graph.name", "product_graph")
}

// connectOracle opens the database configured under the given prefix
// ("source" or "target").
func connectOracle(cfg *config.Config, prefix string) (*dbclient.DatabaseClient, error) {
	dc, err := dbclient.FromConfig(cfg, prefix)
	if err != nil {
		return nil, err
	}
	client, err := oracle.Connect(dc)
	if err != nil {
		return nil, fmt.Errorf("could not connect to %s database: %w", prefix, err)
	}
	return client, nil
}
