package ledger

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"lab-reservations/reservation"
)

// Sheets appends audit rows to the facility's reservation spreadsheet.
type Sheets struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

func NewSheets(ctx context.Context, credentialsFile, spreadsheetID, sheetName string) (*Sheets, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("new sheets service: %w", err)
	}
	return &Sheets{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

// Append writes one row at the end of the sheet. INSERT_ROWS keeps the
// trail append-only.
func (s *Sheets) Append(ctx context.Context, entry reservation.LedgerEntry) error {
	values := entry.Values()
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}

	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, s.sheetName, &sheets.ValueRange{Values: [][]any{row}}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}
