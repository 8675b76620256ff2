package worker

import (
	"context"
	"fmt"
	"log/slog"

	"jeopsu/internal/amqp"
	"jeopsu/internal/register"
	"jeopsu/internal/sheets"
)

// SyncWorker mirrors receipt changes into an external spreadsheet. It is an
// append-only audit trail: every created/updated/status-changed event adds a
// row with the receipt's state at sync time; deletions are not propagated.
type SyncWorker struct {
	repo   register.Repository
	writer sheets.ReceiptWriter
}

func NewSyncWorker(repo register.Repository, writer sheets.ReceiptWriter) *SyncWorker {
	return &SyncWorker{repo: repo, writer: writer}
}

// HandleEvent processes one receipt change event from the queue.
func (w *SyncWorker) HandleEvent(ctx context.Context, event *amqp.ReceiptEvent) error {
	slog.InfoContext(ctx, "Processing receipt event",
		"receipt_id", event.ReceiptID,
		"action", event.Action,
		"version", event.Version)

	if event.Action == amqp.ActionDeleted {
		slog.InfoContext(ctx, "Skipping deleted receipt, mirror is append-only",
			"receipt_id", event.ReceiptID)
		return nil
	}

	items, err := w.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load receipts: %w", err)
	}

	for _, item := range items {
		if item.ID != event.ReceiptID {
			continue
		}
		ref, err := w.writer.Append(ctx, item)
		if err != nil {
			return fmt.Errorf("mirror receipt %s: %w", item.ID, err)
		}
		slog.InfoContext(ctx, "Receipt mirrored", "receipt_id", item.ID, "sheets_ref", ref)
		return nil
	}

	// The receipt may have been deleted between publish and consume.
	// Not worth a requeue loop.
	slog.WarnContext(ctx, "Receipt from event no longer exists, skipping",
		"receipt_id", event.ReceiptID,
		"action", event.Action)
	return nil
}
