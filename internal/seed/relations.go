package seed

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/stockseed/stockseed/internal/db"
)

// Synthetic count parameters. The formula has no business meaning; it
// exists to make the relation data reproducible and sparse.
const (
	countMultiplier int32 = 73
	countOffset     int32 = 42
	countModulus    int32 = 300
)

// PairCount derives a deterministic quantity from two identifiers:
// (x*73 + (y + 42)) mod 300. The arithmetic wraps on overflow. A result
// of zero means "no relationship" and the pair is skipped.
func PairCount(x, y int32) int32 {
	return (x*countMultiplier + (y + countOffset)) % countModulus
}

// RelationSeeder populates the sparse many-to-many tables, pairing
// every client address and every warehouse against a bounded subset of
// products.
type RelationSeeder struct {
	db           db.DBTX
	productLimit int
}

func NewRelationSeeder(dbtx db.DBTX, productLimit int) *RelationSeeder {
	return &RelationSeeder{db: dbtx, productLimit: productLimit}
}

func (r *RelationSeeder) Seed(ctx context.Context) error {
	productIDs, err := r.boundedProductIDs(ctx)
	if err != nil {
		return err
	}

	color.Cyan("  📝 Seeding product requirements...")
	if err := r.seedRequirements(ctx, productIDs); err != nil {
		return fmt.Errorf("failed to seed product requirements: %w", err)
	}

	color.Cyan("  📝 Seeding product locations...")
	if err := r.seedLocations(ctx, productIDs); err != nil {
		return fmt.Errorf("failed to seed product locations: %w", err)
	}
	return nil
}

// boundedProductIDs keeps only the first productLimit products as
// returned from storage, which bounds the relation row count.
func (r *RelationSeeder) boundedProductIDs(ctx context.Context) ([]int32, error) {
	ids, err := fetchIDs(ctx, r.db, "product_id", "products")
	if err != nil {
		return nil, err
	}
	if len(ids) > r.productLimit {
		ids = ids[:r.productLimit]
	}
	return ids, nil
}

func (r *RelationSeeder) seedRequirements(ctx context.Context, productIDs []int32) error {
	addressIDs, err := fetchIDs(ctx, r.db, "client_address_id", "client_addresses")
	if err != nil {
		return err
	}

	for _, addressID := range addressIDs {
		for _, productID := range productIDs {
			count := PairCount(addressID, productID)
			if count == 0 {
				continue
			}

			query, args, err := psql.Insert("product_requirements").
				Columns("client_address_id", "product_id", "count").
				Values(addressID, productID, count).
				ToSql()
			if err != nil {
				return err
			}
			if _, err := r.db.Exec(ctx, query, args...); err != nil {
				return db.Classify(err)
			}
		}
	}
	return nil
}

func (r *RelationSeeder) seedLocations(ctx context.Context, productIDs []int32) error {
	warehouseIDs, err := fetchIDs(ctx, r.db, "warehouse_id", "warehouses")
	if err != nil {
		return err
	}

	for _, warehouseID := range warehouseIDs {
		for _, productID := range productIDs {
			count := PairCount(warehouseID, productID)
			if count == 0 {
				continue
			}

			query, args, err := psql.Insert("product_locations").
				Columns("warehouse_id", "product_id", "count").
				Values(warehouseID, productID, count).
				ToSql()
			if err != nil {
				return err
			}
			if _, err := r.db.Exec(ctx, query, args...); err != nil {
				return db.Classify(err)
			}
		}
	}
	return nil
}
