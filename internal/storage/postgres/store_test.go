package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/kristykoh/krispyledger-web/internal/storage/storetest"
)

func TestPostgresStore_Contract(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	store, err := New(ctx, url)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer store.Close()

	if err := store.RunMigrations(ctx); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}
	if _, err := store.pool.Exec(ctx, `DELETE FROM ledgers WHERE conversation_id LIKE 'contract-%'`); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}

	storetest.Run(t, store)
}
