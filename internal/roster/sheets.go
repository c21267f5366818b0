package roster

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/spec-kit/internship-service/internal/config"
)

// SheetsSource reads the roster from a Google Sheets spreadsheet using a
// service-account credentials file. Built once at process start and read-only
// afterwards.
type SheetsSource struct {
	svc           *sheets.Service
	spreadsheetID string
}

var _ Source = (*SheetsSource)(nil)

// NewSheetsSource authenticates against the Sheets API.
func NewSheetsSource(ctx context.Context, cfg config.SheetsConfig) (*SheetsSource, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("init sheets client: %w", err)
	}
	return &SheetsSource{svc: svc, spreadsheetID: cfg.SpreadsheetID}, nil
}

// FirstSheetName resolves the title of the spreadsheet's first tab.
func (s *SheetsSource) FirstSheetName(ctx context.Context) (string, error) {
	meta, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("fetch spreadsheet metadata: %w", err)
	}
	if len(meta.Sheets) == 0 || meta.Sheets[0].Properties == nil {
		return "Sheet1", nil
	}
	return meta.Sheets[0].Properties.Title, nil
}

// Header returns the first row of the sheet.
func (s *SheetsSource) Header(ctx context.Context, sheet string) ([]string, error) {
	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, fmt.Sprintf("%s!A1:Z1", sheet)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetch header row: %w", err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}
	return cellStrings(resp.Values[0]), nil
}

// Rows returns data rows from fromRow to the end of the sheet.
func (s *SheetsSource) Rows(ctx context.Context, sheet string, fromRow int) ([][]string, error) {
	if fromRow < FirstDataRow {
		fromRow = FirstDataRow
	}
	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, fmt.Sprintf("%s!A%d:Z", sheet, fromRow)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetch data rows: %w", err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		rows = append(rows, cellStrings(raw))
	}
	return rows, nil
}

func cellStrings(cells []interface{}) []string {
	out := make([]string, len(cells))
	for i, cell := range cells {
		if s, ok := cell.(string); ok {
			out[i] = s
			continue
		}
		out[i] = fmt.Sprintf("%v", cell)
	}
	return out
}
