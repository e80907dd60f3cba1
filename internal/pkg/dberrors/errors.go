package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// CodeUndefinedTable is PostgreSQL's "relation does not exist"
const CodeUndefinedTable = "42P01"

// IsUndefinedTable checks if the error is a PostgreSQL undefined table error,
// which for the catalog means migrations have not run.
func IsUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == CodeUndefinedTable
}
