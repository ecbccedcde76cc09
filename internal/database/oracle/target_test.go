package oracle

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jd09-test/product-model/internal/database/dbclient"
	"github.com/jd09-test/product-model/internal/engine"
	"github.com/jd09-test/product-model/pkg/confirm"
)

func newMockTarget(t *testing.T) (*Target, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewTarget(&dbclient.DatabaseClient{DB: db, DatabaseType: "oracle"}, nil), mock
}

func TestBuildMerge(t *testing.T) {
	dml := BuildMerge("PRODUCTVOD", []string{"ROW_ID", "OBJECT_NUMBER", "NAME"}, "ROW_ID")
	assert.Equal(t,
		"MERGE INTO PRODUCTVOD tgt "+
			"USING (SELECT :1 AS ROW_ID, :2 AS OBJECT_NUMBER, :3 AS NAME FROM dual) src "+
			"ON (tgt.ROW_ID = src.ROW_ID) "+
			"WHEN MATCHED THEN UPDATE SET tgt.OBJECT_NUMBER = src.OBJECT_NUMBER, tgt.NAME = src.NAME "+
			"WHEN NOT MATCHED THEN INSERT (ROW_ID, OBJECT_NUMBER, NAME) VALUES (src.ROW_ID, src.OBJECT_NUMBER, src.NAME)",
		dml)
}

func TestBuildMergeIdentityOnly(t *testing.T) {
	// A single identity column leaves nothing to update; the MATCHED clause
	// must be omitted entirely.
	dml := BuildMerge("LOOKUP", []string{"ROW_ID"}, "ROW_ID")
	assert.NotContains(t, dml, "WHEN MATCHED")
	assert.Contains(t, dml, "WHEN NOT MATCHED THEN INSERT (ROW_ID) VALUES (src.ROW_ID)")
}

func TestBuildInsert(t *testing.T) {
	assert.Equal(t,
		"INSERT INTO AUDITNOTE (TXT, CREATED) VALUES (:1, :2)",
		BuildInsert("AUDITNOTE", []string{"TXT", "CREATED"}))
}

func TestMergePageCommitsPerPage(t *testing.T) {
	target, mock := newMockTarget(t)
	dml := BuildMerge("PRODUCTVOD", []string{"ROW_ID", "NAME"}, "ROW_ID")

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(dml)
	prep.ExpectExec().WithArgs("1-A", "Router").WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WithArgs("1-B", "Modem").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := target.MergePage(context.Background(), "PRODUCTVOD", []string{"ROW_ID", "NAME"}, "ROW_ID",
		[][]interface{}{{"1-A", "Router"}, {"1-B", "Modem"}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMergePageRollsBackOnRowFailure(t *testing.T) {
	target, mock := newMockTarget(t)
	dml := BuildMerge("PRODUCTVOD", []string{"ROW_ID"}, "ROW_ID")

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(dml)
	prep.ExpectExec().WithArgs("1-A").WillReturnError(errors.New("ORA-12899: value too large"))
	mock.ExpectRollback()

	_, err := target.MergePage(context.Background(), "PRODUCTVOD", []string{"ROW_ID"}, "ROW_ID",
		[][]interface{}{{"1-A"}})
	require.Error(t, err)

	var se *engine.StatementExecutionError
	assert.ErrorAs(t, err, &se)
	assert.False(t, engine.IsConnectivityError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMergePageConnectivityFailure(t *testing.T) {
	target, mock := newMockTarget(t)
	mock.ExpectBegin().WillReturnError(errors.New("ORA-03113: end-of-file on communication channel"))

	_, err := target.MergePage(context.Background(), "PRODUCTVOD", []string{"ROW_ID"}, "ROW_ID",
		[][]interface{}{{"1-A"}})
	require.Error(t, err)
	assert.True(t, engine.IsConnectivityError(err))
}

func TestInsertPage(t *testing.T) {
	target, mock := newMockTarget(t)
	dml := BuildInsert("AUDITNOTE", []string{"TXT"})

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(dml)
	prep.ExpectExec().WithArgs("hello").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := target.InsertPage(context.Background(), "AUDITNOTE", []string{"TXT"},
		[][]interface{}{{"hello"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDropTablesRequiresConfirmation(t *testing.T) {
	target, mock := newMockTarget(t)

	report, err := target.DropTables(context.Background(), []string{"PRODUCTVOD"}, confirm.None)
	require.NoError(t, err)
	assert.True(t, report.Skipped)
	assert.NoError(t, mock.ExpectationsWereMet(), "nothing may execute without the token")
}

func TestDropTablesContinuesPastFailures(t *testing.T) {
	target, mock := newMockTarget(t)

	mock.ExpectExec("DROP TABLE PRODUCTVOD CASCADE CONSTRAINTS PURGE").
		WillReturnError(errors.New("ORA-00942: table or view does not exist"))
	mock.ExpectExec("DROP TABLE VODVERSION CASCADE CONSTRAINTS PURGE").
		WillReturnResult(sqlmock.NewResult(0, 0))

	report, err := target.DropTables(context.Background(), []string{"PRODUCTVOD", "VODVERSION"},
		confirm.WithToken("drop"))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Executed)
	require.Len(t, report.Failures, 1)
	assert.Contains(t, report.Failures[0].Err, "ORA-00942")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyDDLSkipsCommentsAndBlanks(t *testing.T) {
	target, mock := newMockTarget(t)

	ddl := `-- staging tables
CREATE TABLE A (X VARCHAR2(4000));

REM legacy header
CREATE TABLE B (Y VARCHAR2(4000));
`
	mock.ExpectExec("CREATE TABLE A (X VARCHAR2(4000))").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE B (Y VARCHAR2(4000))").WillReturnResult(sqlmock.NewResult(0, 0))

	report, err := target.ApplyDDL(context.Background(), ddl, confirm.WithToken("yes"))
	require.NoError(t, err)
	assert.Equal(t, 2, report.Executed)
	assert.Empty(t, report.Failures)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyDDLRequiresConfirmation(t *testing.T) {
	target, _ := newMockTarget(t)

	report, err := target.ApplyDDL(context.Background(), "CREATE TABLE A (X VARCHAR2(4000))", confirm.WithToken("drop"))
	require.NoError(t, err)
	assert.True(t, report.Skipped)
}

func TestSplitStatements(t *testing.T) {
	stmts := SplitStatements("CREATE TABLE A (X VARCHAR2(10));\n\n-- note\n;CREATE TABLE B (Y VARCHAR2(10));")
	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE TABLE A (X VARCHAR2(10))", stmts[0])
	assert.Equal(t, "CREATE TABLE B (Y VARCHAR2(10))", stmts[1])
}
