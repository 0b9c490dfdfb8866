package schema

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/jackc/pgx/v5"

	"github.com/stockseed/stockseed/internal/db"
)

// Store is the connection surface the provisioner needs: plain
// statement execution plus transactions. *pgxpool.Pool satisfies it.
type Store interface {
	db.DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Provisioner rebuilds the schema from scratch on every run: best-effort
// drops, one all-or-nothing transaction for table creation, then the
// indexes individually.
type Provisioner struct {
	store Store
}

func NewProvisioner(store Store) *Provisioner {
	return &Provisioner{store: store}
}

func (p *Provisioner) Provision(ctx context.Context) error {
	if err := p.dropTables(ctx); err != nil {
		return err
	}
	if err := p.createTables(ctx); err != nil {
		return err
	}
	return p.createIndexes(ctx)
}

// dropTables drops every catalog table, dependents first. A table that
// does not exist is expected on a fresh database and skipped; any other
// failure, such as insufficient privileges, propagates.
func (p *Provisioner) dropTables(ctx context.Context) error {
	color.Yellow("🗑️  Dropping existing tables...")

	for _, t := range DropOrder() {
		_, err := p.store.Exec(ctx, "DROP TABLE "+t.Name+" CASCADE")
		if err != nil && !db.IsUndefinedTable(err) {
			return fmt.Errorf("failed to drop table %s: %w", t.Name, db.Classify(err))
		}
	}
	return nil
}

// createTables creates the extensions and every table inside a single
// transaction in dependency order. Any failure rolls the whole
// transaction back.
func (p *Provisioner) createTables(ctx context.Context) error {
	tx, err := p.store.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", db.Classify(err))
	}
	defer tx.Rollback(ctx)

	for _, ext := range Extensions {
		if _, err := tx.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS "+ext); err != nil {
			return fmt.Errorf("failed to enable extension %s: %w", ext, db.ClassifySchema(err))
		}
	}

	for _, t := range CreationOrder() {
		if _, err := tx.Exec(ctx, t.Create); err != nil {
			return fmt.Errorf("failed to create table %s: %w", t.Name, db.ClassifySchema(err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", db.ClassifySchema(err))
	}

	color.Green("📊 Created %d tables", len(Tables))
	return nil
}

// createIndexes runs after the creation transaction commits. A failure
// here is fatal but leaves the already-created tables in place.
func (p *Provisioner) createIndexes(ctx context.Context) error {
	for _, idx := range Indexes {
		if _, err := p.store.Exec(ctx, idx.Create); err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.Name, db.ClassifySchema(err))
		}
	}
	return nil
}
