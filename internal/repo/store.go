// Package repo contains the row-store access logic for the trip site.
// Each resource has its own file with an interface and a sheet-backed
// implementation. No business logic lives here — only row mapping and the
// composition of row-store primitives.
package repo

import "context"

// RowStore is the minimal row-store surface the repositories need,
// satisfied by *google.SheetsClient. Accepting the interface instead of the
// concrete client lets unit tests substitute an in-memory fake.
//
// Row indices are 1-based sheet row numbers (the header row is row 1).
// Column indices are 1-based; GetColumnIndex reports an absent column as a
// value below 1, not an error.
type RowStore interface {
	GetRows(ctx context.Context, sheet string) ([]map[string]string, error)
	AppendRow(ctx context.Context, sheet string, headers []string, record map[string]string) error
	FindRowByColumn(ctx context.Context, sheet, column, value string) (map[string]string, int, error)
	GetColumnIndex(ctx context.Context, sheet, column string) (int, error)
	UpdateCell(ctx context.Context, sheet string, rowIndex, colIndex int, value string) error
}
