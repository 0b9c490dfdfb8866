package schema

// Table describes one table in the provisioning catalog: its name, the
// CREATE statement, and the tables its foreign keys reference.
type Table struct {
	Name      string
	Create    string
	DependsOn []string
}

// Index is created after the table transaction commits.
type Index struct {
	Name   string
	Create string
}

// Extensions must be enabled before dependent tables exist. pgcrypto
// provides crypt() and gen_salt() for hashed user credentials.
var Extensions = []string{"pgcrypto"}

// Tables is the full catalog in dependency order: every entry's
// DependsOn tables appear earlier in the slice. CreationOrder relies on
// this, registry tests enforce it.
var Tables = []Table{
	{
		Name: "countries",
		Create: `CREATE TABLE countries (
			country_id  SERIAL PRIMARY KEY,
			name        TEXT UNIQUE NOT NULL
		)`,
	},
	{
		Name: "suppliers",
		Create: `CREATE TABLE suppliers (
			supplier_id SERIAL PRIMARY KEY,
			country_id  INTEGER REFERENCES countries NOT NULL,
			name        TEXT NOT NULL,
			email       TEXT NOT NULL
		)`,
		DependsOn: []string{"countries"},
	},
	{
		Name: "product_categories",
		Create: `CREATE TABLE product_categories (
			category_id SERIAL PRIMARY KEY,
			name        TEXT UNIQUE NOT NULL
		)`,
	},
	{
		Name: "product_subcategories",
		Create: `CREATE TABLE product_subcategories (
			subcategory_id  SERIAL PRIMARY KEY,
			category_id     INTEGER REFERENCES product_categories NOT NULL,
			name            TEXT UNIQUE NOT NULL
		)`,
		DependsOn: []string{"product_categories"},
	},
	{
		Name: "products",
		Create: `CREATE TABLE products (
			product_id      SERIAL PRIMARY KEY,
			supplier_id     INTEGER REFERENCES suppliers NOT NULL,
			subcategory_id  INTEGER REFERENCES product_subcategories NOT NULL,
			name            TEXT UNIQUE NOT NULL
		)`,
		DependsOn: []string{"suppliers", "product_subcategories"},
	},
	{
		Name: "clients",
		Create: `CREATE TABLE clients (
			client_id   SERIAL PRIMARY KEY,
			name        TEXT UNIQUE NOT NULL,
			email       TEXT NOT NULL
		)`,
	},
	{
		Name: "client_addresses",
		Create: `CREATE TABLE client_addresses (
			client_address_id   SERIAL PRIMARY KEY,
			client_id           INTEGER REFERENCES clients NOT NULL,
			address             TEXT NOT NULL
		)`,
		DependsOn: []string{"clients"},
	},
	{
		Name: "product_requirements",
		Create: `CREATE TABLE product_requirements (
			product_requirement_id  SERIAL PRIMARY KEY,
			product_id              INTEGER REFERENCES products NOT NULL,
			client_address_id       INTEGER REFERENCES client_addresses NOT NULL,
			count                   INTEGER NOT NULL,
			CHECK (count >= 0)
		)`,
		DependsOn: []string{"products", "client_addresses"},
	},
	{
		Name: "warehouses",
		Create: `CREATE TABLE warehouses (
			warehouse_id    SERIAL PRIMARY KEY,
			address         TEXT UNIQUE NOT NULL
		)`,
	},
	{
		Name: "product_locations",
		Create: `CREATE TABLE product_locations (
			product_location_id SERIAL PRIMARY KEY,
			warehouse_id        INTEGER REFERENCES warehouses NOT NULL,
			product_id          INTEGER REFERENCES products NOT NULL,
			count               INTEGER NOT NULL,
			CHECK (count >= 0)
		)`,
		DependsOn: []string{"warehouses", "products"},
	},
	{
		Name: "user_roles",
		Create: `CREATE TABLE user_roles (
			user_role_id    SERIAL PRIMARY KEY,
			name            TEXT UNIQUE NOT NULL
		)`,
	},
	{
		Name: "users",
		Create: `CREATE TABLE users (
			user_id             SERIAL PRIMARY KEY,
			supplier_id         INTEGER REFERENCES suppliers UNIQUE,
			client_id           INTEGER REFERENCES clients UNIQUE,
			user_role_id        INTEGER REFERENCES user_roles NOT NULL,
			name                TEXT UNIQUE NOT NULL,
			password            TEXT NOT NULL,
			CHECK ((supplier_id IS NULL) OR (client_id IS NULL))
		)`,
		DependsOn: []string{"user_roles", "suppliers", "clients"},
	},
}

// Indexes created individually after the creation transaction commits.
var Indexes = []Index{
	{
		Name:   "user_index",
		Create: `CREATE INDEX user_index ON users(supplier_id, client_id)`,
	},
	{
		Name:   "user_role_index",
		Create: `CREATE INDEX user_role_index ON user_roles(name)`,
	},
}

// CreationOrder returns the tables in FK dependency order.
func CreationOrder() []Table {
	return Tables
}

// DropOrder returns the tables in reverse creation order, so dependents
// go first.
func DropOrder() []Table {
	reversed := make([]Table, len(Tables))
	for i, t := range Tables {
		reversed[len(Tables)-1-i] = t
	}
	return reversed
}

// TableNames lists the catalog's table names in creation order.
func TableNames() []string {
	names := make([]string, len(Tables))
	for i, t := range Tables {
		names[i] = t.Name
	}
	return names
}
