package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jd09-test/product-model/internal/database/dbclient"
	"github.com/jd09-test/product-model/internal/database/neo4j"
	"github.com/jd09-test/product-model/internal/database/oracle"
	"github.com/jd09-test/product-model/internal/database/postgres"
	"github.com/jd09-test/product-model/internal/engine"
	"github.com/jd09-test/product-model/pkg/config"
	"github.com/jd09-test/product-model/pkg/confirm"
)

var (
	migrateConfirm string
	batchSize      int
	cutoffDate     string
	dateFormat     string
	parallelism    int
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate source rows into the target staging tables",
	Long: "Extracts every node of the graph model from the source database and loads it into the target. " +
		"Nodes with an identity column are merged and safe to re-run; the rest are appended. " +
		"Requires --confirm migrate.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		model, err := loadModel()
		if err != nil {
			return err
		}

		ctx := context.Background()

		source, closeSource, err := openSource(cfg)
		if err != nil {
			return err
		}
		defer closeSource()

		target, closeTarget, err := openTarget(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeTarget()

		opts := engine.Options{
			Schema:            cfg.Get("source.schema"),
			BatchSize:         batchSize,
			IncrementalCutoff: cutoffDate,
			DateFormat:        dateFormat,
			Parallelism:       parallelism,
			Confirmation:      confirm.WithToken(migrateConfirm),
		}
		if opts.IncrementalCutoff == "" {
			opts.IncrementalCutoff = cfg.Get("query.date")
		}
		if opts.DateFormat == "" {
			opts.DateFormat = cfg.GetDefault("query.date_format", "YYYY-MM-DD")
		}

		report, err := engine.New(log.WithComponent("migration")).Migrate(ctx, model, source, target, opts)
		if err != nil {
			return err
		}
		if report.Status == engine.StatusSkipped {
			return fmt.Errorf("migrate requires --confirm %s", confirm.TokenMigrate)
		}

		fmt.Printf("run %s: %s, %d rows\n", report.RunID, report.Status, report.TotalRows())
		for _, n := range report.Nodes {
			fmt.Printf("  %-24s %8d rows  %d page(s)  %s\n", n.Node, n.Rows, n.Pages, n.Mode)
			if n.Err != "" {
				fmt.Printf("    error: %s\n", n.Err)
			}
			for _, f := range n.Failures {
				fmt.Printf("    page %d failed: %s\n", f.Page, f.Err)
			}
		}
		if report.Status == engine.StatusCompletedWithErrors {
			return fmt.Errorf("migration completed with errors")
		}
		return nil
	},
}

// openSource connects the configured source database and wraps it as a page
// source. Oracle is the default vendor; Postgres is supported for staging
// extracts that live there.
func openSource(cfg *config.Config) (engine.SourceReader, func() error, error) {
	dc, err := dbclient.FromConfig(cfg, "source")
	if err != nil {
		return nil, nil, err
	}

	switch dc.DatabaseVendor {
	case "postgres":
		client, err := postgres.Connect(dc)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewSource(client, log.WithComponent("postgres-source")), client.Close, nil
	default:
		client, err := oracle.Connect(dc)
		if err != nil {
			return nil, nil, err
		}
		return oracle.NewSource(client, log.WithComponent("oracle-source")), client.Close, nil
	}
}

// openTarget connects the configured target database and wraps it as a page
// target. Oracle loads staging tables; Neo4j loads labeled nodes directly.
func openTarget(ctx context.Context, cfg *config.Config) (engine.TargetWriter, func() error, error) {
	dc, err := dbclient.FromConfig(cfg, "target")
	if err != nil {
		return nil, nil, err
	}

	switch dc.DatabaseVendor {
	case "neo4j":
		client, err := neo4j.Connect(ctx, dc)
		if err != nil {
			return nil, nil, err
		}
		closer := func() error { return client.Close(ctx) }
		return neo4j.NewTarget(client, cfg.Get("target.database"), log.WithComponent("neo4j-target")), closer, nil
	default:
		client, err := oracle.Connect(dc)
		if err != nil {
			return nil, nil, err
		}
		return oracle.NewTarget(client, log.WithComponent("oracle-target")), client.Close, nil
	}
}

func init() {
	migrateCmd.Flags().StringVar(&migrateConfirm, "confirm", "", "Confirmation token, must be 'migrate'")
	migrateCmd.Flags().IntVar(&batchSize, "batch-size", engine.DefaultBatchSize, "Rows per page")
	migrateCmd.Flags().StringVar(&cutoffDate, "query-date", "", "Incremental cut-off date for the LAST_UPD filter")
	migrateCmd.Flags().StringVar(&dateFormat, "date-format", "", "Oracle TO_DATE format of --query-date")
	migrateCmd.Flags().IntVar(&parallelism, "parallelism", 1, "Number of nodes migrated concurrently")
}
