// Package report runs read-only demonstration queries over the seeded
// schema. It is a consumer of the provisioned contract and never
// mutates data.
package report

import (
	"context"
	"fmt"
	"io"

	sq "github.com/Masterminds/squirrel"

	"github.com/stockseed/stockseed/internal/db"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const groceriesQuery = `
	SELECT subcategory, products.name AS product
	FROM (
		SELECT product_subcategories.name AS subcategory, subcategory_id
		FROM product_subcategories
		WHERE category_id = (
			SELECT category_id FROM product_categories
			WHERE name = $1
		)
	) AS grocery_subcategories
	INNER JOIN products
	ON grocery_subcategories.subcategory_id = products.subcategory_id
	WHERE subcategory LIKE $2
	ORDER BY subcategory`

type Reporter struct {
	db db.DBTX
}

func New(dbtx db.DBTX) *Reporter {
	return &Reporter{db: dbtx}
}

func (r *Reporter) Run(ctx context.Context, w io.Writer) error {
	if err := r.countries(ctx, w); err != nil {
		return err
	}
	if err := r.subcategories(ctx, w); err != nil {
		return err
	}
	if err := r.suppliers(ctx, w); err != nil {
		return err
	}
	if err := r.groceries(ctx, w); err != nil {
		return err
	}
	return r.userCount(ctx, w)
}

func (r *Reporter) countries(ctx context.Context, w io.Writer) error {
	query, _, err := psql.Select("name").From("countries").ToSql()
	if err != nil {
		return err
	}

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return db.Classify(err)
	}
	defer rows.Close()

	fmt.Fprintf(w, "\nCountries\n\n")
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return db.Classify(err)
		}
		fmt.Fprintln(w, name)
	}
	return db.Classify(rows.Err())
}

func (r *Reporter) subcategories(ctx context.Context, w io.Writer) error {
	query, _, err := psql.
		Select("product_categories.name AS category", "product_subcategories.name AS subcategory").
		From("product_categories").
		InnerJoin("product_subcategories ON product_categories.category_id = product_subcategories.category_id").
		ToSql()
	if err != nil {
		return err
	}

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return db.Classify(err)
	}
	defer rows.Close()

	fmt.Fprintf(w, "\nSubcategories per category\n%-30s %s\n\n", "Category", "Subcategory")
	for rows.Next() {
		var category, subcategory string
		if err := rows.Scan(&category, &subcategory); err != nil {
			return db.Classify(err)
		}
		fmt.Fprintf(w, "%-30s %s\n", category, subcategory)
	}
	return db.Classify(rows.Err())
}

func (r *Reporter) suppliers(ctx context.Context, w io.Writer) error {
	query, _, err := psql.
		Select("suppliers.name AS supplier", "email", "countries.name AS country").
		From("suppliers").
		InnerJoin("countries ON suppliers.country_id = countries.country_id").
		Limit(10).
		ToSql()
	if err != nil {
		return err
	}

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return db.Classify(err)
	}
	defer rows.Close()

	fmt.Fprintf(w, "\nFirst 10 suppliers\n%-40s %-35s %s\n\n", "Supplier", "Email", "Country")
	for rows.Next() {
		var supplier, email, country string
		if err := rows.Scan(&supplier, &email, &country); err != nil {
			return db.Classify(err)
		}
		fmt.Fprintf(w, "%-40s %-35s %s\n", supplier, email, country)
	}
	return db.Classify(rows.Err())
}

// groceries lists grocery products whose subcategory starts with M.
func (r *Reporter) groceries(ctx context.Context, w io.Writer) error {
	rows, err := r.db.Query(ctx, groceriesQuery, "Grocery", "M%")
	if err != nil {
		return db.Classify(err)
	}
	defer rows.Close()

	fmt.Fprintf(w, "\nGroceries in subcategories starting with M\n%-40s %s\n\n", "Subcategory", "Product")
	for rows.Next() {
		var subcategory, product string
		if err := rows.Scan(&subcategory, &product); err != nil {
			return db.Classify(err)
		}
		fmt.Fprintf(w, "%-40s %s\n", subcategory, product)
	}
	return db.Classify(rows.Err())
}

func (r *Reporter) userCount(ctx context.Context, w io.Writer) error {
	query, _, err := psql.Select("COUNT(1)").From("users").ToSql()
	if err != nil {
		return err
	}

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return db.Classify(err)
	}

	fmt.Fprintf(w, "\nCount of users: %d\n", count)
	return nil
}
