package db

import (
	"bytes"
	"database/sql"
	"database/sql/driver"
	"strings"

	gosqlite "github.com/glebarez/go-sqlite"
	"github.com/mattn/go-sqlite3"
)

// sqliteDriverName is the cgo sqlite driver with LOWER replaced.
const sqliteDriverName = "sqlite3_unicode"

// SQLite's built-in LOWER only folds ASCII, so "Ödenburg" never matches
// "ödenburg". Both sqlite drivers get a LOWER that folds the full Unicode
// range, which keeps the same SQL valid on postgres and mysql.
func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", unicodeLower, true)
		},
	})
	gosqlite.MustRegisterDeterministicScalarFunction("lower", 1,
		func(_ *gosqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			return unicodeLower(args[0]), nil
		},
	)
}

func unicodeLower(v any) any {
	switch s := v.(type) {
	case string:
		return strings.ToLower(s)
	case []byte:
		if s == nil {
			return nil
		}
		return bytes.ToLower(s)
	default:
		return v
	}
}
