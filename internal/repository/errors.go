// Package repository implements the persistence layer over MySQL. Each
// repository owns the SQL for one aggregate and translates driver errors
// into domain sentinels so handlers and services never see MySQL error
// numbers.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// MySQL error numbers the repositories care about.
const (
	mysqlDuplicateEntry  = 1062 // unique constraint violated
	mysqlRowIsReferenced = 1451 // FK restrict: child rows exist
	mysqlNoReferencedRow = 1452 // FK: referenced parent missing
)

// isMySQLErr reports whether err is a MySQL server error with the given number.
func isMySQLErr(err error, number uint16) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == number
}

// ErrDuplicate is returned when an insert or update violates a unique
// constraint other than the seat-occupancy one (e.g. room number, email,
// tier name). Handlers translate it into HTTP 409.
var ErrDuplicate = errors.New("duplicate entry")

// ErrReferenced is returned when a delete is blocked by a restrict foreign
// key, such as removing a seat that historical bookings still reference.
// Handlers translate it into HTTP 409.
var ErrReferenced = errors.New("record is referenced by other rows")
