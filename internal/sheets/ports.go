package sheets

import (
	"context"

	"jeopsu/internal/core"
)

// Ports for outbound mirror adapters.
type (
	// ReceiptWriter appends one receipt row to an external sheet.
	ReceiptWriter interface {
		Append(ctx context.Context, item core.ReceiptItem) (rowRef string, err error)
	}
)
