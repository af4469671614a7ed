package sheets

import (
	"context"

	"gastobot/internal/core"
)

// Ports for outbound export adapters.
type (
	// RecordWriter appends one transaction record to the export target.
	RecordWriter interface {
		Append(ctx context.Context, rec core.TransactionRecord) (rowRef string, err error)
	}
)
