package repository

import (
	"errors"
	"strings"

	"github.com/Astemirdum/driver-rating/rating/internal/errs"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// constraintError maps a database constraint violation to a validation error.
// It returns nil for every other error.
func constraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.StringDataRightTruncationDataException:
			return &errs.ValidationError{Field: "rating", Reason: "value is too long"}
		case pgerrcode.NotNullViolation:
			return &errs.ValidationError{Field: fieldOr(pgErr.ColumnName), Reason: "is required"}
		case pgerrcode.CheckViolation:
			return &errs.ValidationError{Field: "rating", Reason: "violates constraint " + pgErr.ConstraintName}
		}
		return nil
	}

	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_CHECK:
			return &errs.ValidationError{Field: "rating", Reason: "violates constraint " + checkName(sqliteErr.Error())}
		case sqlite3lib.SQLITE_CONSTRAINT_NOTNULL:
			return &errs.ValidationError{Field: "rating", Reason: "is missing a required value"}
		case sqlite3lib.SQLITE_CONSTRAINT:
			return &errs.ValidationError{Field: "rating", Reason: "violates a constraint"}
		}
	}
	return nil
}

func fieldOr(column string) string {
	if column == "" {
		return "rating"
	}
	return column
}

// checkName extracts the failing expression from
// "CHECK constraint failed: length(plate) BETWEEN 1 AND 8".
func checkName(msg string) string {
	const marker = "CHECK constraint failed: "
	if i := strings.Index(msg, marker); i >= 0 {
		name := msg[i+len(marker):]
		if j := strings.Index(name, " ("); j >= 0 {
			name = name[:j]
		}
		return strings.TrimSpace(name)
	}
	return "check"
}
