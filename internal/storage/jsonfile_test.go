package storage

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"jeopsu/internal/core"
)

func sampleItems() []core.ReceiptItem {
	return []core.ReceiptItem{
		{
			ID: "b", Type: core.TypeDev, Date: "2024-04-01", Customer: "KR Lab",
			Issue: "펌웨어 개발", Qty: 1, Status: core.StatusReceived,
			DevPeriod: "3w", DevCost: "1200", DevDue: "2024-05-01", CreatedAt: 200,
		},
		{
			ID: "a", Type: core.TypeRepair, Date: "2024-03-05", Customer: "ACME",
			Issue: "보드 수리", Qty: 3, Status: core.StatusRepairCompleted,
			DoneDate: "2024-03-10", CreatedAt: 100,
		},
	}
}

func TestFileRepositoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "receipts.json")
	repo, err := NewFileRepository(path)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}

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

func TestFileRepositoryMissingFileIsEmpty(t *testing.T) {
	repo, err := NewFileRepository(filepath.Join(t.TempDir(), "receipts.json"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load of missing file should not error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty collection, got %+v", got)
	}
}

func TestFileRepositoryCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipts.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	repo, err := NewFileRepository(path)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}

	if _, err := repo.Load(context.Background()); err == nil {
		t.Fatalf("expected decode error for corrupt file")
	}
}

func TestFileRepositorySaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipts.json")
	repo, err := NewFileRepository(path)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	ctx := context.Background()

	if err := repo.Save(ctx, sampleItems()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, nil); err != nil {
		t.Fatalf("save empty: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty collection after overwrite, got %+v", got)
	}
}
