package oracle

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jd09-test/product-model/internal/database/dbclient"
	"github.com/jd09-test/product-model/internal/engine"
	"github.com/jd09-test/product-model/pkg/confirm"
	"github.com/jd09-test/product-model/pkg/logger"
)

// Target applies pages and DDL to an Oracle target database. Every mutating
// operation is gated on its confirmation token.
type Target struct {
	db  *sql.DB
	log *logger.Logger
}

// NewTarget wraps a connected Oracle client as a page and DDL target.
func NewTarget(client *dbclient.DatabaseClient, log *logger.Logger) *Target {
	if log == nil {
		log = logger.New("oracle-target")
	}
	return &Target{db: client.DB, log: log}
}

// MergePage upserts one page keyed on the identity column. Each page is one
// transaction: a failed page rolls back whole and the caller continues with
// the next one.
func (t *Target) MergePage(ctx context.Context, table string, columns []string, identity string, rows [][]interface{}) (int64, error) {
	return t.applyPage(ctx, BuildMerge(table, columns, identity), table, rows)
}

// InsertPage appends one page without conflict detection.
func (t *Target) InsertPage(ctx context.Context, table string, columns []string, rows [][]interface{}) (int64, error) {
	return t.applyPage(ctx, BuildInsert(table, columns), table, rows)
}

func (t *Target) applyPage(ctx context.Context, dml, table string, rows [][]interface{}) (int64, error) {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, &engine.ConnectivityError{System: "target", Err: err}
	}

	stmt, err := tx.PrepareContext(ctx, dml)
	if err != nil {
		tx.Rollback()
		return 0, &engine.StatementExecutionError{Unit: table, Err: err}
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			tx.Rollback()
			return 0, &engine.StatementExecutionError{Unit: table, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, &engine.StatementExecutionError{Unit: table, Err: err}
	}
	return int64(len(rows)), nil
}

// BuildMerge builds the parameterised MERGE for one page. Bind variables are
// named through a SELECT FROM dual so the same statement works row by row.
func BuildMerge(table string, columns []string, identity string) string {
	srcCols := make([]string, len(columns))
	insVals := make([]string, len(columns))
	var updateSet []string
	for i, c := range columns {
		srcCols[i] = fmt.Sprintf(":%d AS %s", i+1, c)
		insVals[i] = "src." + c
		if c != identity {
			updateSet = append(updateSet, fmt.Sprintf("tgt.%s = src.%s", c, c))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "MERGE INTO %s tgt USING (SELECT %s FROM dual) src ON (tgt.%s = src.%s)",
		table, strings.Join(srcCols, ", "), identity, identity)
	if len(updateSet) > 0 {
		fmt.Fprintf(&b, " WHEN MATCHED THEN UPDATE SET %s", strings.Join(updateSet, ", "))
	}
	fmt.Fprintf(&b, " WHEN NOT MATCHED THEN INSERT (%s) VALUES (%s)",
		strings.Join(columns, ", "), strings.Join(insVals, ", "))
	return b.String()
}

// BuildInsert builds the parameterised INSERT for identity-less nodes.
func BuildInsert(table string, columns []string) string {
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf(":%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
}

// StatementFailure records one DDL statement that failed; execution continued
// past it.
type StatementFailure struct {
	Statement string
	Err       string
}

// DDLReport is the outcome of a DropTables or ApplyDDL call.
type DDLReport struct {
	Executed int
	Skipped  bool
	Failures []StatementFailure
}

// DropTables drops the given tables with CASCADE CONSTRAINTS PURGE so FK
// dependencies and the recycle bin do not get in the way. Tables that fail to
// drop (usually because they do not exist yet) are logged and skipped.
// Requires the drop confirmation token.
func (t *Target) DropTables(ctx context.Context, tables []string, c confirm.Confirmation) (DDLReport, error) {
	if !c.Grants(confirm.TokenDrop) {
		t.log.Warn("drop not confirmed, skipping")
		return DDLReport{Skipped: true}, nil
	}

	var report DDLReport
	for _, table := range tables {
		stmt := fmt.Sprintf("DROP TABLE %s CASCADE CONSTRAINTS PURGE", table)
		if _, err := t.db.ExecContext(ctx, stmt); err != nil {
			t.log.Warnf("could not drop %s: %v", table, err)
			report.Failures = append(report.Failures, StatementFailure{Statement: stmt, Err: err.Error()})
			continue
		}
		t.log.Infof("dropped table %s", table)
		report.Executed++
	}
	return report, nil
}

// ApplyDDL executes a DDL script statement by statement. Statements are split
// on semicolons; blank entries and comment-only statements are skipped. A
// failed statement is recorded and execution continues with the next one.
// Requires the apply confirmation token.
func (t *Target) ApplyDDL(ctx context.Context, ddl string, c confirm.Confirmation) (DDLReport, error) {
	if !c.Grants(confirm.TokenApply) {
		t.log.Warn("DDL apply not confirmed, skipping")
		return DDLReport{Skipped: true}, nil
	}

	var report DDLReport
	for _, stmt := range SplitStatements(ddl) {
		if _, err := t.db.ExecContext(ctx, stmt); err != nil {
			t.log.Warnf("DDL statement failed: %v", err)
			report.Failures = append(report.Failures, StatementFailure{Statement: stmt, Err: err.Error()})
			continue
		}
		report.Executed++
	}
	t.log.Infof("executed %d DDL statement(s), %d failure(s)", report.Executed, len(report.Failures))
	return report, nil
}

// SplitStatements splits a DDL script on semicolons, dropping blank entries
// and -- or REM comment lines. A comment header above a statement is stripped
// without losing the statement itself.
func SplitStatements(ddl string) []string {
	var out []string
	for _, raw := range strings.Split(ddl, ";") {
		var kept []string
		for _, line := range strings.Split(raw, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" && len(kept) == 0 {
				continue
			}
			if strings.HasPrefix(trimmed, "--") || strings.HasPrefix(strings.ToUpper(trimmed), "REM ") {
				continue
			}
			kept = append(kept, line)
		}
		stmt := strings.TrimSpace(strings.Join(kept, "\n"))
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
