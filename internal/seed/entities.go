package seed

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/stockseed/stockseed/internal/db"
)

// EntitySeeder inserts the base entities in dependency order and wires
// their foreign keys by round-robin assignment over identifiers fetched
// back from storage.
type EntitySeeder struct {
	db  db.DBTX
	src *Source
}

func NewEntitySeeder(dbtx db.DBTX, src *Source) *EntitySeeder {
	return &EntitySeeder{db: dbtx, src: src}
}

func (s *EntitySeeder) Seed(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"countries", s.seedCountries},
		{"suppliers", s.seedSuppliers},
		{"clients", s.seedClients},
		{"product categories", s.seedCategories},
		{"products", s.seedProducts},
		{"warehouses", s.seedWarehouses},
		{"client addresses", s.seedClientAddresses},
	}

	for _, step := range steps {
		color.Cyan("  📝 Seeding %s...", step.name)
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("failed to seed %s: %w", step.name, err)
		}
	}
	return nil
}

// namedEmail is a (name, email) pair zipped positionally from two
// source lists, truncated to the shorter one.
type namedEmail struct {
	name  string
	email string
}

func zipEmails(names, emails []string) []namedEmail {
	n := min(len(names), len(emails))
	pairs := make([]namedEmail, n)
	for i := 0; i < n; i++ {
		pairs[i] = namedEmail{name: names[i], email: emails[i]}
	}
	return pairs
}

func (s *EntitySeeder) seedCountries(ctx context.Context) error {
	for _, name := range s.src.Countries {
		query, args, err := psql.Insert("countries").
			Columns("name").
			Values(name).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := s.db.Exec(ctx, query, args...); err != nil {
			return db.Classify(err)
		}
	}
	return nil
}

func (s *EntitySeeder) seedSuppliers(ctx context.Context) error {
	countryIDs, err := fetchIDs(ctx, s.db, "country_id", "countries")
	if err != nil {
		return err
	}

	pairs, err := Assign(zipEmails(s.src.Suppliers, s.src.Emails), countryIDs)
	if err != nil {
		return err
	}

	for _, pair := range pairs {
		query, args, err := psql.Insert("suppliers").
			Columns("country_id", "name", "email").
			Values(pair.Target, pair.Assignee.name, pair.Assignee.email).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := s.db.Exec(ctx, query, args...); err != nil {
			return db.Classify(err)
		}
	}
	return nil
}

func (s *EntitySeeder) seedClients(ctx context.Context) error {
	for _, client := range zipEmails(s.src.Clients, s.src.Emails) {
		query, args, err := psql.Insert("clients").
			Columns("name", "email").
			Values(client.name, client.email).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := s.db.Exec(ctx, query, args...); err != nil {
			return db.Classify(err)
		}
	}
	return nil
}

// seedCategories inserts each category, captures its generated
// identifier, and inserts the dependent subcategories against it.
func (s *EntitySeeder) seedCategories(ctx context.Context) error {
	for _, category := range s.src.Categories {
		query, args, err := psql.Insert("product_categories").
			Columns("name").
			Values(category.Name).
			Suffix("RETURNING category_id").
			ToSql()
		if err != nil {
			return err
		}

		var categoryID int32
		if err := s.db.QueryRow(ctx, query, args...).Scan(&categoryID); err != nil {
			return db.Classify(err)
		}

		for _, subcategory := range category.Subcategories {
			query, args, err := psql.Insert("product_subcategories").
				Columns("category_id", "name").
				Values(categoryID, subcategory).
				ToSql()
			if err != nil {
				return err
			}
			if _, err := s.db.Exec(ctx, query, args...); err != nil {
				return db.Classify(err)
			}
		}
	}
	return nil
}

// seedProducts cycles subcategory and supplier identifiers
// independently: a product's subcategory and supplier are each chosen
// by its position modulo the respective target-list length.
func (s *EntitySeeder) seedProducts(ctx context.Context) error {
	subcategoryIDs, err := fetchIDs(ctx, s.db, "subcategory_id", "product_subcategories")
	if err != nil {
		return err
	}
	supplierIDs, err := fetchIDs(ctx, s.db, "supplier_id", "suppliers")
	if err != nil {
		return err
	}

	bySubcategory, err := Assign(s.src.Products, subcategoryIDs)
	if err != nil {
		return err
	}
	bySupplier, err := Assign(s.src.Products, supplierIDs)
	if err != nil {
		return err
	}

	for i, name := range s.src.Products {
		query, args, err := psql.Insert("products").
			Columns("supplier_id", "subcategory_id", "name").
			Values(bySupplier[i].Target, bySubcategory[i].Target, name).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := s.db.Exec(ctx, query, args...); err != nil {
			return db.Classify(err)
		}
	}
	return nil
}

func (s *EntitySeeder) seedWarehouses(ctx context.Context) error {
	for _, address := range s.src.Addresses {
		query, args, err := psql.Insert("warehouses").
			Columns("address").
			Values(address).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := s.db.Exec(ctx, query, args...); err != nil {
			return db.Classify(err)
		}
	}
	return nil
}

// seedClientAddresses round-robins the address list across clients:
// one row per address, each attached to a cyclically chosen client.
func (s *EntitySeeder) seedClientAddresses(ctx context.Context) error {
	clientIDs, err := fetchIDs(ctx, s.db, "client_id", "clients")
	if err != nil {
		return err
	}

	pairs, err := Assign(s.src.Addresses, clientIDs)
	if err != nil {
		return err
	}

	for _, pair := range pairs {
		query, args, err := psql.Insert("client_addresses").
			Columns("client_id", "address").
			Values(pair.Target, pair.Assignee).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := s.db.Exec(ctx, query, args...); err != nil {
			return db.Classify(err)
		}
	}
	return nil
}
