// Package google implements the sheets.RecordWriter port against the Google
// Sheets API. The sheet acts as a human-readable mirror of the stored
// transactions: one row per record, appended in storage order.
package google

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"gastobot/internal/core"
)

type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

// Options configures the export client.
type Options struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsFile string
	CredentialsJSON string
}

// New creates a Sheets export client using service-account credentials.
func New(ctx context.Context, opts Options) (*Client, error) {
	if opts.SpreadsheetID == "" || opts.SheetName == "" {
		return nil, fmt.Errorf("spreadsheet id and sheet name are required")
	}

	var clientOpt option.ClientOption
	switch {
	case opts.CredentialsJSON != "":
		clientOpt = option.WithCredentialsJSON([]byte(opts.CredentialsJSON))
	case opts.CredentialsFile != "":
		clientOpt = option.WithCredentialsFile(opts.CredentialsFile)
	default:
		return nil, fmt.Errorf("google credentials are required")
	}

	svc, err := sheets.NewService(ctx, clientOpt)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: opts.SpreadsheetID,
		sheetName:     opts.SheetName,
	}, nil
}

// Append implements sheets.RecordWriter.
func (c *Client) Append(ctx context.Context, rec core.TransactionRecord) (string, error) {
	amount := ""
	if rec.Amount != nil {
		amount = *rec.Amount
	}

	vr := &sheets.ValueRange{
		Values: [][]interface{}{{
			rec.Date,
			string(rec.Type),
			amount,
			rec.Concept,
			rec.Category,
			rec.CreatedAt.Format(time.RFC3339),
		}},
	}

	resp, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, c.sheetName, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("append row: %w", err)
	}

	rowRef := ""
	if resp.Updates != nil {
		rowRef = resp.Updates.UpdatedRange
	}

	slog.InfoContext(ctx, "Record appended to sheet",
		"spreadsheet_id", c.spreadsheetID,
		"sheet", c.sheetName,
		"range", rowRef)

	return rowRef, nil
}
