package storage

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"jeopsu/internal/core"
)

func TestSQLiteRepositoryRoundTrip(t *testing.T) {
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "jeopsu.db"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	defer repo.Close()

	ctx := context.Background()
	want := sampleItems()

	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestSQLiteRepositoryEmptyDatabase(t *testing.T) {
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "jeopsu.db"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	defer repo.Close()

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty collection, got %+v", got)
	}
}

func TestSQLiteRepositorySaveReplacesAll(t *testing.T) {
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "jeopsu.db"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	defer repo.Close()

	ctx := context.Background()
	first := sampleItems()
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := first[:1]
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].ID != second[0].ID {
		t.Fatalf("expected only %s, got %+v", second[0].ID, got)
	}
}

func TestSQLiteRepositoryPreservesOrder(t *testing.T) {
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "jeopsu.db"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	defer repo.Close()

	ctx := context.Background()
	items := []core.ReceiptItem{
		{ID: "newest", Type: core.TypeRepair, Customer: "c", Issue: "i", Qty: 1, Status: core.StatusReceived, CreatedAt: 3},
		{ID: "middle", Type: core.TypeRepair, Customer: "c", Issue: "i", Qty: 1, Status: core.StatusReceived, CreatedAt: 2},
		{ID: "oldest", Type: core.TypeRepair, Customer: "c", Issue: "i", Qty: 1, Status: core.StatusReceived, CreatedAt: 1},
	}
	if err := repo.Save(ctx, items); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for i, id := range []string{"newest", "middle", "oldest"} {
		if got[i].ID != id {
			t.Fatalf("position %d = %s, want %s", i, got[i].ID, id)
		}
	}
}
