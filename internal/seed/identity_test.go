package seed

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stockseed/stockseed/internal/db"
)

const (
	insertRole          = "INSERT INTO user_roles (name) VALUES ($1) RETURNING user_role_id"
	selectSupplierNames = "SELECT supplier_id, name FROM suppliers"
	selectClientNames   = "SELECT client_id, name FROM clients"
)

func testSource() *Source {
	return &Source{
		Managers: []Credential{
			{Name: "Helmer", Password: "array"},
			{Name: "Macey", Password: "capacitor"},
		},
		Admin:           Credential{Name: "Gigachad", Password: "adminadmin"},
		DefaultPassword: "password",
	}
}

func scriptRoles(fake *fakeDB) {
	fake.returning[insertRole] = []any{int32(1), int32(2), int32(3), int32(4)}
}

func TestSeedRolesVocabulary(t *testing.T) {
	fake := newFakeDB()
	scriptRoles(fake)

	roles, err := NewIdentityBootstrapper(fake, testSource()).seedRoles(context.Background())
	if err != nil {
		t.Fatalf("seedRoles failed: %v", err)
	}

	inserts := fake.callsFor("INSERT INTO user_roles")
	if len(inserts) != 4 {
		t.Fatalf("Expected 4 role inserts, got %d", len(inserts))
	}
	wantOrder := []string{"admin", "manager", "client", "supplier"}
	for i, insert := range inserts {
		if insert.args[0] != wantOrder[i] {
			t.Errorf("Role %d: expected %q, got %v", i, wantOrder[i], insert.args[0])
		}
	}

	want := map[string]int32{"admin": 1, "manager": 2, "client": 3, "supplier": 4}
	for name, id := range want {
		if roles[name] != id {
			t.Errorf("Role %q: expected id %d, got %d", name, id, roles[name])
		}
	}
}

func TestUserRowValidateRejectsDualOwnership(t *testing.T) {
	supplierID := int32(1)
	clientID := int32(2)

	row := userRow{name: "broken", supplierID: &supplierID, clientID: &clientID}
	if err := row.validate(); !errors.Is(err, db.ErrIntegrity) {
		t.Errorf("Expected ErrIntegrity for dual ownership, got %v", err)
	}

	fake := newFakeDB()
	b := NewIdentityBootstrapper(fake, testSource())
	if err := b.insertUser(context.Background(), row); !errors.Is(err, db.ErrIntegrity) {
		t.Errorf("insertUser must fail fast on dual ownership, got %v", err)
	}
	if len(fake.callsFor("INSERT INTO users")) != 0 {
		t.Error("Invalid user row must never reach storage")
	}
}

func TestUserRowValidateAllowsSingleOwner(t *testing.T) {
	id := int32(1)
	cases := []userRow{
		{name: "none"},
		{name: "supplier-owned", supplierID: &id},
		{name: "client-owned", clientID: &id},
	}
	for _, row := range cases {
		if err := row.validate(); err != nil {
			t.Errorf("userRow %q should be valid, got %v", row.name, err)
		}
	}
}

func TestPasswordsPassThroughCrypt(t *testing.T) {
	fake := newFakeDB()
	scriptRoles(fake)
	fake.results[selectSupplierNames] = [][]any{{int32(1), "Baltic Grain"}}
	fake.results[selectClientNames] = [][]any{{int32(1), "Centrum Market"}}

	if err := NewIdentityBootstrapper(fake, testSource()).Seed(context.Background()); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	inserts := fake.callsFor("INSERT INTO users")
	if len(inserts) == 0 {
		t.Fatal("Expected user inserts")
	}
	for _, insert := range inserts {
		if !strings.Contains(insert.sql, "crypt(") || !strings.Contains(insert.sql, "gen_salt('md5')") {
			t.Errorf("User insert must hash the password in-statement: %s", insert.sql)
		}
	}
}

func TestSeedCreatesAllAccountKinds(t *testing.T) {
	fake := newFakeDB()
	scriptRoles(fake)
	fake.results[selectSupplierNames] = [][]any{
		{int32(11), "Baltic Grain"},
		{int32(12), "Vilnius Dairy"},
	}
	fake.results[selectClientNames] = [][]any{
		{int32(21), "Centrum Market"},
	}

	src := testSource()
	if err := NewIdentityBootstrapper(fake, src).Seed(context.Background()); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	inserts := fake.callsFor("INSERT INTO users")
	// admin + 2 managers + 2 supplier users + 1 client user
	if len(inserts) != 6 {
		t.Fatalf("Expected 6 user inserts, got %d", len(inserts))
	}

	// Admin first, bound to the admin role with no linkage.
	admin := inserts[0]
	if admin.args[0] != (*int32)(nil) || admin.args[1] != (*int32)(nil) {
		t.Errorf("Admin must not be linked to a supplier or client: %v", admin.args)
	}
	if admin.args[2] != int32(1) || admin.args[3] != "Gigachad" {
		t.Errorf("Admin row mismatch: %v", admin.args)
	}

	// Supplier users carry the supplier id and name, client id unset.
	supplierUser := inserts[3]
	if got := supplierUser.args[0].(*int32); got == nil || *got != 11 {
		t.Errorf("Supplier user must link supplier 11, got %v", supplierUser.args[0])
	}
	if supplierUser.args[1] != (*int32)(nil) {
		t.Errorf("Supplier user must leave client unset: %v", supplierUser.args[1])
	}
	if supplierUser.args[3] != "Baltic Grain" {
		t.Errorf("Supplier user name must match the supplier: %v", supplierUser.args[3])
	}

	// Client users are symmetric.
	clientUser := inserts[5]
	if clientUser.args[0] != (*int32)(nil) {
		t.Errorf("Client user must leave supplier unset: %v", clientUser.args[0])
	}
	if got := clientUser.args[1].(*int32); got == nil || *got != 21 {
		t.Errorf("Client user must link client 21, got %v", clientUser.args[1])
	}
}

func TestSeedWithNoSuppliersCreatesNoSupplierUsers(t *testing.T) {
	fake := newFakeDB()
	scriptRoles(fake)
	fake.results[selectSupplierNames] = nil
	fake.results[selectClientNames] = nil

	src := testSource()
	if err := NewIdentityBootstrapper(fake, src).Seed(context.Background()); err != nil {
		t.Fatalf("Seed over empty suppliers must not fail, got %v", err)
	}

	inserts := fake.callsFor("INSERT INTO users")
	// admin + managers only
	if want := 1 + len(src.Managers); len(inserts) != want {
		t.Errorf("Expected %d user inserts, got %d", want, len(inserts))
	}
	for _, insert := range inserts {
		if insert.args[0] != (*int32)(nil) || insert.args[1] != (*int32)(nil) {
			t.Errorf("No linked users expected, got %v", insert.args)
		}
	}
}
