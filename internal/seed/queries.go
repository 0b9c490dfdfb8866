package seed

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/stockseed/stockseed/internal/db"
)

// psql is the fixed statement-builder catalog root: every statement the
// seeders issue is assembled from compile-time identifiers with $n
// placeholders for all data.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// fetchIDs reads back the generated identifiers of a column in storage
// order. The identifiers are opaque; callers only rely on the order
// being stable within a run.
func fetchIDs(ctx context.Context, dbtx db.DBTX, column, table string) ([]int32, error) {
	query, _, err := psql.Select(column).From(table).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := dbtx.Query(ctx, query)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, db.Classify(err)
		}
		ids = append(ids, id)
	}
	return ids, db.Classify(rows.Err())
}
