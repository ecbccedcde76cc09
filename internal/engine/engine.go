// Package engine migrates rows from a relational source into the target
// graph tables, node by node, in pages. A page is the unit of commit and of
// failure: a failed page is recorded and the run continues, while a lost
// connection aborts the whole run. Re-running a migration is safe for every
// node with an identity column, since pages are applied with MERGE semantics
// keyed on it. Nodes without one are append-only and re-running duplicates
// their rows.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jd09-test/product-model/pkg/confirm"
	"github.com/jd09-test/product-model/pkg/graphmodel"
	"github.com/jd09-test/product-model/pkg/logger"
)

// DefaultBatchSize is the page size used when options do not set one.
const DefaultBatchSize = 1000

// Options tune one migration run.
type Options struct {
	// Schema prefixes source table references.
	Schema string
	// BatchSize caps rows per page; DefaultBatchSize when <= 0.
	BatchSize int
	// IncrementalCutoff restricts extraction to rows updated on or after
	// this date; empty disables the predicate. DateFormat is the Oracle
	// TO_DATE format the cutoff is rendered with.
	IncrementalCutoff string
	DateFormat        string
	// Parallelism migrates up to n nodes concurrently; pages within one
	// node always apply in source order. Values <= 1 run sequentially.
	Parallelism int
	// Confirmation must grant the migrate token or the run is a no-op.
	Confirmation confirm.Confirmation
}

// Engine runs migrations.
type Engine struct {
	log *logger.Logger
}

// New creates a migration engine.
func New(log *logger.Logger) *Engine {
	if log == nil {
		log = logger.New("migration")
	}
	return &Engine{log: log}
}

// Migrate extracts every node of the model from the source and applies it to
// the target. The returned report is always non-nil; its status reflects
// whether the run completed, completed with recorded failures, aborted on a
// connection failure, or was skipped for lack of confirmation.
func (e *Engine) Migrate(ctx context.Context, model *graphmodel.GraphModel, source SourceReader, target TargetWriter, opts Options) (*Report, error) {
	report := &Report{
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
	}

	if !opts.Confirmation.Grants(confirm.TokenMigrate) {
		e.log.Warn("migration not confirmed, skipping")
		report.Status = StatusSkipped
		report.FinishedAt = time.Now()
		return report, nil
	}

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	nodes := model.Nodes()
	results := make([]NodeResult, len(nodes))

	parallelism := opts.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i := range nodes {
		i := i
		g.Go(func() error {
			results[i] = e.migrateNode(gctx, nodes[i], source, target, batchSize, opts)
			if results[i].Err != "" && results[i].aborted {
				return fmt.Errorf("%s: %s", nodes[i].Name, results[i].Err)
			}
			return nil
		})
	}
	err := g.Wait()

	report.Nodes = results
	report.FinishedAt = time.Now()

	switch {
	case err != nil:
		report.Status = StatusIncomplete
		e.log.Errorf("migration run %s aborted: %v", report.RunID, err)
		return report, err
	case report.HasFailures():
		report.Status = StatusCompletedWithErrors
		e.log.Warnf("migration run %s completed with errors, %d rows total", report.RunID, report.TotalRows())
	default:
		report.Status = StatusCompleted
		e.log.Infof("migration run %s completed, %d rows total", report.RunID, report.TotalRows())
	}
	return report, nil
}

// migrateNode streams one node's pages from source to target. Only a
// connection-level failure marks the result as aborting the run.
func (e *Engine) migrateNode(ctx context.Context, node graphmodel.NodeDef, source SourceReader, target TargetWriter, batchSize int, opts Options) NodeResult {
	identity := node.IdentityKey()
	result := NodeResult{
		Node:  node.Name,
		Table: node.Name,
		Mode:  "insert",
	}
	if identity != "" {
		result.Mode = "merge"
	}

	query, err := BuildSelect(node, opts.Schema, opts.IncrementalCutoff, opts.DateFormat)
	if err != nil {
		e.log.Warnf("could not build extraction query for %s: %v", node.Name, err)
		result.Err = err.Error()
		return result
	}

	extractErr := source.Extract(ctx, query, batchSize, func(page Page) error {
		result.Pages++

		var applied int64
		var werr error
		if identity != "" {
			applied, werr = target.MergePage(ctx, node.Name, page.Columns, identity, page.Rows)
		} else {
			applied, werr = target.InsertPage(ctx, node.Name, page.Columns, page.Rows)
		}

		if werr != nil {
			if IsConnectivityError(werr) {
				return werr
			}
			e.log.Warnf("page %d failed for %s: %v", result.Pages, node.Name, werr)
			result.Failures = append(result.Failures, PageFailure{
				Page: result.Pages,
				Rows: len(page.Rows),
				Err:  werr.Error(),
			})
			return nil
		}

		result.Rows += applied
		return nil
	})

	if extractErr != nil {
		result.Err = extractErr.Error()
		if IsConnectivityError(extractErr) || ctx.Err() != nil {
			result.aborted = true
			return result
		}
		// Query-level failure: the node is skipped, the run continues.
		e.log.Errorf("extraction failed for %s: %v", node.Name, extractErr)
		return result
	}

	e.log.Infof("%s: %d rows in %d page(s)", node.Name, result.Rows, result.Pages)
	return result
}
