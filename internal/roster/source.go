// Package roster reads applicant rows from the external, operator-maintained
// spreadsheet and turns them into validated records for the sync engine.
package roster

import "context"

// FirstDataRow is the sheet row number of the first applicant entry; row 1 is
// the header.
const FirstDataRow = 2

// Source provides read-only access to the applicant roster. The service never
// writes back to the roster.
type Source interface {
	// FirstSheetName resolves the tab holding applicant data.
	FirstSheetName(ctx context.Context) (string, error)
	// Header returns the column-name row of the given sheet.
	Header(ctx context.Context, sheet string) ([]string, error)
	// Rows returns all data rows from sheet row fromRow to the end, in
	// source order. The i-th returned row corresponds to sheet row fromRow+i.
	Rows(ctx context.Context, sheet string, fromRow int) ([][]string, error)
}
