// Package repository defines error types that are reused by the client
// repository and matched by handlers with errors.Is.  Driver errors are
// translated here so that no layer above inspects error strings.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrClientNotFound is returned when an update or delete matches no row.
// Handlers should translate this into an HTTP 404 response.
var ErrClientNotFound = errors.New("client not found")

// ErrDuplicateKey is returned when an insert violates the primary key.
// Handlers should translate this into an HTTP 409 response.
var ErrDuplicateKey = errors.New("duplicate key")

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// isUniqueViolation reports whether err is a uniqueness violation from
// either supported driver.
func isUniqueViolation(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlDuplicateEntry
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return false
}
