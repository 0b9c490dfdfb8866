package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Error taxonomy for the provisioning run. Every failure is fatal and
// surfaces wrapped in exactly one of these sentinels; nothing is retried.
var (
	ErrConnectivity = errors.New("storage connection failed")
	ErrSchema       = errors.New("schema statement failed")
	ErrExhaustion   = errors.New("no targets available for assignment")
	ErrIntegrity    = errors.New("integrity constraint violated")
	ErrQuery        = errors.New("storage query failed")
)

// SQLSTATE classes and codes of interest.
const (
	classConnection = "08"
	classIntegrity  = "23"

	codeUndefinedTable = "42P01"
)

// Classify wraps a storage error with the matching taxonomy sentinel.
// Connection-class failures map to ErrConnectivity, constraint
// violations (uniqueness, check, FK, the supplier/client exclusion) to
// ErrIntegrity, everything else to ErrQuery. Returns nil for nil.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, classConnection):
			return fmt.Errorf("%w: %v", ErrConnectivity, err)
		case strings.HasPrefix(pgErr.Code, classIntegrity):
			return fmt.Errorf("%w: %v", ErrIntegrity, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrQuery, err)
}

// ClassifySchema wraps a DDL failure as ErrSchema. Used for table,
// index and extension statements, where any failure aborts the run.
func ClassifySchema(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrSchema, err)
}

// IsUndefinedTable reports whether err is Postgres undefined_table
// (SQLSTATE 42P01). The best-effort drop phase swallows exactly this
// code; permission errors and the like still propagate.
func IsUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUndefinedTable
}
