package seed

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/fatih/color"

	"github.com/stockseed/stockseed/internal/db"
)

// roleNames is the fixed role vocabulary, in insertion order.
var roleNames = []string{"admin", "manager", "client", "supplier"}

// IdentityBootstrapper creates the role vocabulary and the user
// accounts. Credentials never reach storage in plaintext; every insert
// passes the password through crypt() with a generated salt.
type IdentityBootstrapper struct {
	db  db.DBTX
	src *Source
}

func NewIdentityBootstrapper(dbtx db.DBTX, src *Source) *IdentityBootstrapper {
	return &IdentityBootstrapper{db: dbtx, src: src}
}

func (b *IdentityBootstrapper) Seed(ctx context.Context) error {
	color.Cyan("  📝 Seeding roles and users...")

	roles, err := b.seedRoles(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}

	admin := userRow{
		name:     b.src.Admin.Name,
		password: b.src.Admin.Password,
		roleID:   roles["admin"],
	}
	if err := b.insertUser(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	for _, manager := range b.src.Managers {
		row := userRow{
			name:     manager.Name,
			password: manager.Password,
			roleID:   roles["manager"],
		}
		if err := b.insertUser(ctx, row); err != nil {
			return fmt.Errorf("failed to create manager user %s: %w", manager.Name, err)
		}
	}

	if err := b.seedSupplierUsers(ctx, roles["supplier"]); err != nil {
		return fmt.Errorf("failed to create supplier users: %w", err)
	}
	if err := b.seedClientUsers(ctx, roles["client"]); err != nil {
		return fmt.Errorf("failed to create client users: %w", err)
	}
	return nil
}

// seedRoles inserts the vocabulary and returns name → generated id.
func (b *IdentityBootstrapper) seedRoles(ctx context.Context) (map[string]int32, error) {
	roles := make(map[string]int32, len(roleNames))
	for _, name := range roleNames {
		query, args, err := psql.Insert("user_roles").
			Columns("name").
			Values(name).
			Suffix("RETURNING user_role_id").
			ToSql()
		if err != nil {
			return nil, err
		}

		var id int32
		if err := b.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
			return nil, db.Classify(err)
		}
		roles[name] = id
	}
	return roles, nil
}

// seedSupplierUsers creates one account per supplier, named after the
// supplier and linked to it. An empty supplier table yields zero users.
func (b *IdentityBootstrapper) seedSupplierUsers(ctx context.Context, roleID int32) error {
	suppliers, err := b.fetchNamed(ctx, "supplier_id", "suppliers")
	if err != nil {
		return err
	}

	for _, supplier := range suppliers {
		id := supplier.id
		row := userRow{
			name:       supplier.name,
			password:   b.src.DefaultPassword,
			roleID:     roleID,
			supplierID: &id,
		}
		if err := b.insertUser(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

func (b *IdentityBootstrapper) seedClientUsers(ctx context.Context, roleID int32) error {
	clients, err := b.fetchNamed(ctx, "client_id", "clients")
	if err != nil {
		return err
	}

	for _, client := range clients {
		id := client.id
		row := userRow{
			name:     client.name,
			password: b.src.DefaultPassword,
			roleID:   roleID,
			clientID: &id,
		}
		if err := b.insertUser(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

type namedID struct {
	id   int32
	name string
}

func (b *IdentityBootstrapper) fetchNamed(ctx context.Context, idColumn, table string) ([]namedID, error) {
	query, _, err := psql.Select(idColumn, "name").From(table).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := b.db.Query(ctx, query)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	var entries []namedID
	for rows.Next() {
		var entry namedID
		if err := rows.Scan(&entry.id, &entry.name); err != nil {
			return nil, db.Classify(err)
		}
		entries = append(entries, entry)
	}
	return entries, db.Classify(rows.Err())
}

// userRow is one account pending insertion. At most one of supplierID
// and clientID may be set.
type userRow struct {
	name       string
	password   string
	roleID     int32
	supplierID *int32
	clientID   *int32
}

// validate enforces the ownership exclusivity invariant before the row
// reaches storage; the users CHECK constraint backstops it.
func (u userRow) validate() error {
	if u.supplierID != nil && u.clientID != nil {
		return fmt.Errorf("%w: user %q linked to both supplier %d and client %d",
			db.ErrIntegrity, u.name, *u.supplierID, *u.clientID)
	}
	return nil
}

func (b *IdentityBootstrapper) insertUser(ctx context.Context, u userRow) error {
	if err := u.validate(); err != nil {
		return err
	}

	query, args, err := psql.Insert("users").
		Columns("supplier_id", "client_id", "user_role_id", "name", "password").
		Values(u.supplierID, u.clientID, u.roleID, u.name, sq.Expr("crypt(?, gen_salt('md5'))", u.password)).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := b.db.Exec(ctx, query, args...); err != nil {
		return db.Classify(err)
	}
	return nil
}
