package foreign

import (
	"context"
	"newt/internal/evaluator"
	"newt/internal/lexer"
	"newt/internal/object"
	"newt/internal/parser"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalScript(t *testing.T, env *object.Environment, input string) object.Object {
	t.Helper()
	l := lexer.New(input)
	p := parser.New(l)
	program := p.ParseProgram()
	require.Empty(t, p.Errors(), "parser errors for %q", input)

	ev := evaluator.New(context.Background())
	result := ev.Eval(program, env)
	require.NotNil(t, result)
	if errObj, ok := result.(*object.Error); ok {
		t.Fatalf("evaluation failed: %s", errObj.Inspect())
	}
	return result
}

func TestSQLiteRoundTrip(t *testing.T) {
	env := object.NewEnvironment()

	result := evalScript(t, env, `
val db = db_connect("sqlite3", ":memory:");
db_exec(db, "create table pets (id integer primary key, name text)");
db_exec(db, "insert into pets (id, name) values (?, ?)", 1, "newt");
db_exec(db, "insert into pets (id, name) values (?, ?)", 2, "frog");
val rows = db_query(db, "select id, name from pets order by id");
db_close(db);
rows;
`)

	rows, ok := result.(*object.List)
	require.True(t, ok, "object is %T (%s)", result, result.Inspect())
	require.Equal(t, 3, rows.Len(), "expected header plus two rows")

	header, ok := rows.Item(0).(*object.Tuple)
	require.True(t, ok)
	assert.Equal(t, `(id, name)`, header.Inspect())

	first, ok := rows.Item(1).(*object.Tuple)
	require.True(t, ok)
	require.Equal(t, 2, first.Len())
	assert.Equal(t, "1", first.Item(0).Inspect())
	assert.Equal(t, "newt", first.Item(1).Inspect())
}

func TestExecReportsAffectedRows(t *testing.T) {
	env := object.NewEnvironment()

	result := evalScript(t, env, `
val db = db_connect("sqlite3", ":memory:");
db_exec(db, "create table t (n integer)");
val outcome = db_exec(db, "insert into t (n) values (?)", 7);
db_close(db);
outcome;
`)

	outcome, ok := result.(*object.Tuple)
	require.True(t, ok, "object is %T (%s)", result, result.Inspect())
	require.Equal(t, 2, outcome.Len())
	assert.Equal(t, "1", outcome.Item(0).Inspect(), "rows affected")
}

func TestTransactionRollback(t *testing.T) {
	env := object.NewEnvironment()

	result := evalScript(t, env, `
val db = db_connect("sqlite3", ":memory:");
db_exec(db, "create table t (n integer)");
db_begin(db);
db_exec(db, "insert into t (n) values (?)", 1);
db_rollback(db);
val rows = db_query(db, "select n from t");
db_close(db);
len(rows);
`)

	// Only the header row survives the rollback.
	num, ok := result.(*object.Number)
	require.True(t, ok, "object is %T (%s)", result, result.Inspect())
	assert.Equal(t, int64(1), num.Value)
}

func TestTransactionCommit(t *testing.T) {
	env := object.NewEnvironment()

	result := evalScript(t, env, `
val db = db_connect("sqlite3", ":memory:");
db_exec(db, "create table t (n integer)");
db_begin(db);
db_exec(db, "insert into t (n) values (?)", 1);
db_commit(db);
val rows = db_query(db, "select n from t");
db_close(db);
len(rows);
`)

	num, ok := result.(*object.Number)
	require.True(t, ok)
	assert.Equal(t, int64(2), num.Value)
}

func TestInvalidHandleErrors(t *testing.T) {
	env := object.NewEnvironment()
	l := lexer.New(`db_query(999, "select 1");`)
	p := parser.New(l)
	program := p.ParseProgram()
	require.Empty(t, p.Errors())

	ev := evaluator.New(context.Background())
	result := ev.Eval(program, env)

	errObj, ok := result.(*object.Error)
	require.True(t, ok, "object is %T (%s)", result, result.Inspect())
	assert.Contains(t, errObj.Message, "invalid connection handle")
}

func TestConnectValidatesArguments(t *testing.T) {
	env := object.NewEnvironment()
	l := lexer.New(`db_connect(1, 2);`)
	p := parser.New(l)
	program := p.ParseProgram()
	require.Empty(t, p.Errors())

	ev := evaluator.New(context.Background())
	result := ev.Eval(program, env)

	errObj, ok := result.(*object.Error)
	require.True(t, ok)
	assert.Contains(t, errObj.Message, "driver must be a string")
}
