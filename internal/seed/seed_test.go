package seed

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.Exec(`CREATE TABLE customers (
		id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		discord_id TEXT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`).Error
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

func testNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return node
}

func countCustomers(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Raw(`SELECT COUNT(1) FROM customers`).Scan(&count).Error; err != nil {
		t.Fatalf("count customers: %v", err)
	}
	return count
}

func TestEnsureDefaultCustomersSeedsEmptyDatabase(t *testing.T) {
	db := setupSeedTestDB(t)

	if err := EnsureDefaultCustomers(db, testNode(t)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if got := countCustomers(t, db); got != 4 {
		t.Fatalf("expected 4 seeded members, got %d", got)
	}
}

func TestEnsureDefaultCustomersLeavesExistingRows(t *testing.T) {
	db := setupSeedTestDB(t)

	if err := db.Exec(`INSERT INTO customers (id, name) VALUES (1, 'A')`).Error; err != nil {
		t.Fatalf("insert customer: %v", err)
	}
	if err := EnsureDefaultCustomers(db, testNode(t)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if got := countCustomers(t, db); got != 1 {
		t.Fatalf("seeding must not touch a populated table, got %d rows", got)
	}
}

func TestEnsureDefaultCustomersIsRepeatable(t *testing.T) {
	db := setupSeedTestDB(t)
	node := testNode(t)

	if err := EnsureDefaultCustomers(db, node); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := EnsureDefaultCustomers(db, node); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if got := countCustomers(t, db); got != 4 {
		t.Fatalf("expected 4 members after reseeding, got %d", got)
	}
}

func TestEnsureDefaultCustomersRequiresDependencies(t *testing.T) {
	db := setupSeedTestDB(t)

	if err := EnsureDefaultCustomers(nil, testNode(t)); err == nil {
		t.Fatal("expected an error for a nil database handle")
	}
	if err := EnsureDefaultCustomers(db, nil); err == nil {
		t.Fatal("expected an error for a nil id generator")
	}
}
