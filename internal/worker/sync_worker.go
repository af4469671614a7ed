package worker

import (
	"context"
	"fmt"
	"log/slog"

	"gastobot/internal/amqp"
	"gastobot/internal/sheets"
	"gastobot/internal/storage"
)

// SyncWorker mirrors stored transactions to the export sheet, one record per
// consumed sync message.
type SyncWorker struct {
	store  storage.DocumentStore
	writer sheets.RecordWriter
}

func NewSyncWorker(store storage.DocumentStore, writer sheets.RecordWriter) *SyncWorker {
	return &SyncWorker{
		store:  store,
		writer: writer,
	}
}

// HandleSyncMessage processes a single record sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.RecordSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"message_id", msg.MessageID,
		"position", msg.Position)

	doc, err := w.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	if msg.Position < 0 || msg.Position >= len(doc.Transactions) {
		// The document was rewritten since the message was published;
		// there is nothing at this position anymore.
		slog.WarnContext(ctx, "Sync position out of range, dropping message",
			"position", msg.Position,
			"transactions", len(doc.Transactions))
		return nil
	}

	rec := doc.Transactions[msg.Position]
	rowRef, err := w.writer.Append(ctx, rec)
	if err != nil {
		return fmt.Errorf("append record to sheet: %w", err)
	}

	slog.InfoContext(ctx, "Record synced to sheet",
		"position", msg.Position,
		"row_ref", rowRef)
	return nil
}
