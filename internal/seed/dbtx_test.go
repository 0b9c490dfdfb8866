package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeDB is a scripted DBTX: SELECT results are keyed by statement,
// RETURNING values are queued per statement, and every statement is
// recorded for assertions.
type fakeDB struct {
	calls     []call
	results   map[string][][]any // SELECT statement -> rows of column values
	returning map[string][]any   // INSERT ... RETURNING statement -> queued ids
	execErrs  map[string]error   // keyed by statement prefix
}

type call struct {
	sql  string
	args []any
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		results:   make(map[string][][]any),
		returning: make(map[string][]any),
		execErrs:  make(map[string]error),
	}
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, call{sql: sql, args: args})
	for prefix, err := range f.execErrs {
		if strings.HasPrefix(sql, prefix) {
			return pgconn.CommandTag{}, err
		}
	}
	return pgconn.CommandTag{}, nil
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.calls = append(f.calls, call{sql: sql, args: args})
	return &fakeRows{rows: f.results[sql]}, nil
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	f.calls = append(f.calls, call{sql: sql, args: args})
	queued := f.returning[sql]
	if len(queued) == 0 {
		return fakeRow{err: fmt.Errorf("no scripted row for %q", sql)}
	}
	f.returning[sql] = queued[1:]
	return fakeRow{value: queued[0]}
}

// callsFor returns recorded statements whose SQL starts with prefix.
func (f *fakeDB) callsFor(prefix string) []call {
	var matched []call
	for _, c := range f.calls {
		if strings.HasPrefix(c.sql, prefix) {
			matched = append(matched, c)
		}
	}
	return matched
}

type fakeRow struct {
	value any
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return scanValue(dest[0], r.value)
}

type fakeRows struct {
	rows [][]any
	pos  int
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan expects %d values, row has %d", len(dest), len(row))
	}
	for i, d := range dest {
		if err := scanValue(d, row[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func scanValue(dest, value any) error {
	switch d := dest.(type) {
	case *int32:
		v, ok := value.(int32)
		if !ok {
			return fmt.Errorf("cannot scan %T into *int32", value)
		}
		*d = v
	case *string:
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("cannot scan %T into *string", value)
		}
		*d = v
	default:
		return fmt.Errorf("unsupported scan destination %T", dest)
	}
	return nil
}
