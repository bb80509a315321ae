package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/lisongmechlab/lsml-sub001/internal/catalog"
	"github.com/lisongmechlab/lsml-sub001/internal/catalog/catalogtest"
)

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	db, err := catalog.ConnectSQLite(path, false)
	if err != nil {
		t.Fatalf("ConnectSQLite() = %v", err)
	}
	if err := catalog.InitSQLite(ctx, db); err != nil {
		t.Fatalf("InitSQLite() = %v", err)
	}
	want := catalog.DocumentOf(catalogtest.New())
	// Writing twice must replace, not duplicate.
	for i := 0; i < 2; i++ {
		if err := catalog.WriteSQLite(ctx, db, want); err != nil {
			t.Fatalf("WriteSQLite() = %v", err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}

	m, err := catalog.LoadSQLite(ctx, path)
	if err != nil {
		t.Fatalf("LoadSQLite() = %v", err)
	}
	if got := catalog.DocumentOf(m); !reflect.DeepEqual(got, want) {
		t.Errorf("sqlite round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
	if _, err := m.Item("ECM"); err != nil {
		t.Errorf("alias lookup after load: %v", err)
	}
}

func TestPGStoreRoundTrip(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := catalog.ConnectPostgres(ctx, dsn)
	if err != nil {
		t.Fatalf("ConnectPostgres() = %v", err)
	}
	defer pool.Close()

	store := catalog.NewPGStore(pool)
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() = %v", err)
	}
	want := catalog.DocumentOf(catalogtest.New())
	if err := store.Upsert(ctx, want); err != nil {
		t.Fatalf("Upsert() = %v", err)
	}
	m, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	for _, c := range want.Chassis {
		if _, err := m.Chassis(c.Name); err != nil {
			t.Errorf("Chassis(%q) = %v", c.Name, err)
		}
	}
	for _, it := range want.Items {
		if _, err := m.Item(it.Name); err != nil {
			t.Errorf("Item(%q) = %v", it.Name, err)
		}
	}
}
