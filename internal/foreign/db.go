// Package foreign provides host-side builtins backed by external systems.
// Registering happens at init time; importers pull the package in for effect.
package foreign

import (
	"database/sql"
	"fmt"
	"log/slog"
	"newt/internal/evaluator"
	"newt/internal/object"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

var (
	dbMu           sync.Mutex
	dbConnections  = map[int64]*sql.DB{}
	dbTransactions = map[int64]*sql.Tx{}
	nextHandleID   atomic.Int64
)

func init() {
	evaluator.RegisterBuiltin(dbConnect())
	evaluator.RegisterBuiltin(dbQuery())
	evaluator.RegisterBuiltin(dbExec())
	evaluator.RegisterBuiltin(dbBegin())
	evaluator.RegisterBuiltin(dbCommit())
	evaluator.RegisterBuiltin(dbRollback())
	evaluator.RegisterBuiltin(dbClose())
}

func dbConnect() *object.Builtin {
	return &object.Builtin{
		Name: "db_connect",
		Fn: func(args ...object.Object) object.Object {
			if len(args) != 2 {
				return fail("db_connect expects 2 arguments: driver, connectionString")
			}
			driver, ok := unpackString(args[0])
			if !ok {
				return fail("db_connect driver must be a string, got %s", args[0].Type())
			}
			connStr, ok := unpackString(args[1])
			if !ok {
				return fail("db_connect connectionString must be a string, got %s", args[1].Type())
			}

			db, err := sql.Open(driver, connStr)
			if err != nil {
				return fail("failed to open connection: %v", err)
			}
			if err := db.Ping(); err != nil {
				db.Close()
				return fail("failed to ping database: %v", err)
			}

			id := nextHandleID.Add(1)
			dbMu.Lock()
			dbConnections[id] = db
			dbMu.Unlock()

			slog.Debug("database connection opened",
				slog.String("driver", driver), slog.Int64("handle", id))
			return &object.Number{Value: id}
		},
	}
}

// dbQuery runs a SELECT and renders the result set as a list of row tuples.
// The first tuple holds the column names; value tuples follow in result
// order, so `rows[0]` is always the header and `rows[1]` the first row.
func dbQuery() *object.Builtin {
	return &object.Builtin{
		Name: "db_query",
		Fn: func(args ...object.Object) object.Object {
			if len(args) < 2 {
				return fail("db_query expects at least 2 arguments: connection, sql")
			}
			id, ok := unpackNumber(args[0])
			if !ok {
				return fail("db_query connection must be a number, got %s", args[0].Type())
			}
			query, ok := unpackString(args[1])
			if !ok {
				return fail("db_query sql must be a string, got %s", args[1].Type())
			}

			db, tx, ok := lookupHandle(id)
			if !ok {
				return fail("invalid connection handle: %d", id)
			}

			params := unpackParams(args[2:])

			var rows *sql.Rows
			var err error
			if tx != nil {
				rows, err = tx.Query(query, params...)
			} else {
				rows, err = db.Query(query, params...)
			}
			if err != nil {
				return fail("query failed: %v", err)
			}
			defer rows.Close()

			return renderRows(rows)
		},
	}
}

func dbExec() *object.Builtin {
	return &object.Builtin{
		Name: "db_exec",
		Fn: func(args ...object.Object) object.Object {
			if len(args) < 2 {
				return fail("db_exec expects at least 2 arguments: connection, sql")
			}
			id, ok := unpackNumber(args[0])
			if !ok {
				return fail("db_exec connection must be a number, got %s", args[0].Type())
			}
			query, ok := unpackString(args[1])
			if !ok {
				return fail("db_exec sql must be a string, got %s", args[1].Type())
			}

			db, tx, ok := lookupHandle(id)
			if !ok {
				return fail("invalid connection handle: %d", id)
			}

			params := unpackParams(args[2:])

			var result sql.Result
			var err error
			if tx != nil {
				result, err = tx.Exec(query, params...)
			} else {
				result, err = db.Exec(query, params...)
			}
			if err != nil {
				return fail("exec failed: %v", err)
			}

			affected, _ := result.RowsAffected()
			lastID, _ := result.LastInsertId()
			return &object.Tuple{Elements: []object.Object{
				&object.Number{Value: affected},
				&object.Number{Value: lastID},
			}}
		},
	}
}

func dbBegin() *object.Builtin {
	return &object.Builtin{
		Name: "db_begin",
		Fn: func(args ...object.Object) object.Object {
			if len(args) != 1 {
				return fail("db_begin expects 1 argument: connection")
			}
			id, ok := unpackNumber(args[0])
			if !ok {
				return fail("db_begin connection must be a number, got %s", args[0].Type())
			}

			dbMu.Lock()
			defer dbMu.Unlock()
			db, exists := dbConnections[id]
			if !exists {
				return fail("invalid connection handle: %d", id)
			}
			if _, open := dbTransactions[id]; open {
				return fail("transaction already open on handle %d", id)
			}

			tx, err := db.Begin()
			if err != nil {
				return fail("failed to begin transaction: %v", err)
			}
			dbTransactions[id] = tx
			return args[0]
		},
	}
}

func dbCommit() *object.Builtin {
	return &object.Builtin{
		Name: "db_commit",
		Fn: func(args ...object.Object) object.Object {
			if len(args) != 1 {
				return fail("db_commit expects 1 argument: connection")
			}
			id, ok := unpackNumber(args[0])
			if !ok {
				return fail("db_commit connection must be a number, got %s", args[0].Type())
			}

			dbMu.Lock()
			defer dbMu.Unlock()
			tx, exists := dbTransactions[id]
			if !exists {
				return fail("no open transaction on handle %d", id)
			}
			if err := tx.Commit(); err != nil {
				return fail("failed to commit transaction: %v", err)
			}
			delete(dbTransactions, id)
			return args[0]
		},
	}
}

func dbRollback() *object.Builtin {
	return &object.Builtin{
		Name: "db_rollback",
		Fn: func(args ...object.Object) object.Object {
			if len(args) != 1 {
				return fail("db_rollback expects 1 argument: connection")
			}
			id, ok := unpackNumber(args[0])
			if !ok {
				return fail("db_rollback connection must be a number, got %s", args[0].Type())
			}

			dbMu.Lock()
			defer dbMu.Unlock()
			tx, exists := dbTransactions[id]
			if !exists {
				return fail("no open transaction on handle %d", id)
			}
			if err := tx.Rollback(); err != nil {
				return fail("failed to rollback transaction: %v", err)
			}
			delete(dbTransactions, id)
			return args[0]
		},
	}
}

func dbClose() *object.Builtin {
	return &object.Builtin{
		Name: "db_close",
		Fn: func(args ...object.Object) object.Object {
			if len(args) != 1 {
				return fail("db_close expects 1 argument: connection")
			}
			id, ok := unpackNumber(args[0])
			if !ok {
				return fail("db_close connection must be a number, got %s", args[0].Type())
			}

			dbMu.Lock()
			defer dbMu.Unlock()
			if tx, exists := dbTransactions[id]; exists {
				tx.Rollback()
				delete(dbTransactions, id)
			}
			if db, exists := dbConnections[id]; exists {
				db.Close()
				delete(dbConnections, id)
				slog.Debug("database connection closed", slog.Int64("handle", id))
			}
			return object.NONE
		},
	}
}

func lookupHandle(id int64) (*sql.DB, *sql.Tx, bool) {
	dbMu.Lock()
	defer dbMu.Unlock()
	db, ok := dbConnections[id]
	if !ok {
		return nil, nil, false
	}
	return db, dbTransactions[id], true
}

func unpackParams(args []object.Object) []interface{} {
	params := make([]interface{}, len(args))
	for i, arg := range args {
		switch arg := arg.(type) {
		case *object.Number:
			params[i] = arg.Value
		case *object.Boolean:
			params[i] = arg.Value
		case *object.None:
			params[i] = nil
		default:
			params[i] = arg.Inspect()
		}
	}
	return params
}

func renderRows(rows *sql.Rows) object.Object {
	columns, err := rows.Columns()
	if err != nil {
		return fail("failed to read columns: %v", err)
	}

	header := make([]object.Object, len(columns))
	for i, col := range columns {
		header[i] = &object.String{Value: col}
	}
	resultRows := []object.Object{&object.Tuple{Elements: header}}

	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return fail("failed to scan row: %v", err)
		}

		row := make([]object.Object, len(columns))
		for i := range values {
			row[i] = mapValue(values[i])
		}
		resultRows = append(resultRows, &object.Tuple{Elements: row})
	}
	if err := rows.Err(); err != nil {
		return fail("row iteration failed: %v", err)
	}

	// Unowned, so the script can keep appending rows of its own.
	return &object.List{Elements: resultRows}
}

func mapValue(v interface{}) object.Object {
	if v == nil {
		return object.NONE
	}
	switch x := v.(type) {
	case int64:
		return &object.Number{Value: x}
	case []byte:
		return &object.String{Value: string(x)}
	case string:
		return &object.String{Value: x}
	case bool:
		if x {
			return object.TRUE
		}
		return object.FALSE
	case time.Time:
		return &object.String{Value: x.Format(time.RFC3339)}
	default:
		return &object.String{Value: fmt.Sprintf("%v", v)}
	}
}

func unpackString(obj object.Object) (string, bool) {
	s, ok := obj.(*object.String)
	if !ok {
		return "", false
	}
	return s.Value, true
}

func unpackNumber(obj object.Object) (int64, bool) {
	n, ok := obj.(*object.Number)
	if !ok {
		return 0, false
	}
	return n.Value, true
}

func fail(format string, a ...interface{}) *object.Error {
	return &object.Error{Message: fmt.Sprintf(format, a...), Position: -1}
}
