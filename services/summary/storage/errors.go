package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/xilidan/meeting-summary/pkg/apperr"
)

// MySQL server error numbers for duplicate keys and foreign key failures.
const (
	mysqlDuplicateEntry  = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
)

func isConstraintViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "23"
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDuplicateEntry, mysqlRowIsReferenced, mysqlNoReferencedRow:
			return true
		}
		return false
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}

	return false
}

// wrapErr classifies a driver error as a storage failure.
func wrapErr(op string, err error) error {
	if isConstraintViolation(err) {
		return apperr.Storage(fmt.Errorf("failed to %s: constraint violation: %w", op, err))
	}
	return apperr.Storage(fmt.Errorf("failed to %s: %w", op, err))
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
