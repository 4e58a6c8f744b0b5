package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/utch-club/tripsite-api/internal/domain"
)

// ErrSheetMissing distinguishes "the named sheet does not exist in the
// spreadsheet" from other row-store failures, so callers that treat a
// missing sheet as empty (the settings reader) can tolerate it without
// swallowing real errors.
var ErrSheetMissing = errors.New("sheet not found")

// SheetsClient implements the row-store primitives over the Sheets values
// API for a single spreadsheet. Rows are addressed by sheet name and column
// header; the first row of every sheet is its header row.
type SheetsClient struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewSheetsClient constructs a client for the given spreadsheet. Production
// callers pass option.WithTokenSource; tests point opts at a local server.
func NewSheetsClient(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*SheetsClient, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("google.NewSheetsClient: %w", err)
	}
	return &SheetsClient{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// missingSheet reports whether the API refused the range because the named
// sheet does not exist ("Unable to parse range").
func missingSheet(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Code != http.StatusBadRequest {
		return false
	}
	return strings.Contains(strings.ToLower(gerr.Message+" "+gerr.Body), "unable to parse range")
}

// values fetches the raw cell grid for a sheet, header row included.
func (c *SheetsClient) values(ctx context.Context, sheet string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, sheet).Context(ctx).Do()
	if err != nil {
		if missingSheet(err) {
			return nil, fmt.Errorf("%w: %s", ErrSheetMissing, sheet)
		}
		return nil, fmt.Errorf("read sheet %s: %w", sheet, integrationError(err))
	}

	grid := make([][]string, 0, len(resp.Values))
	for _, cells := range resp.Values {
		row := make([]string, len(cells))
		for i, cell := range cells {
			row[i] = cellString(cell)
		}
		grid = append(grid, row)
	}
	return grid, nil
}

// cellString renders one cell. Formatted-value responses carry strings, but
// the wire type admits any JSON scalar.
func cellString(cell any) string {
	if s, ok := cell.(string); ok {
		return s
	}
	return fmt.Sprint(cell)
}

// GetRows returns every data row of a sheet as a header→cell map.
// Rows shorter than the header row read as empty strings for the missing
// trailing cells.
func (c *SheetsClient) GetRows(ctx context.Context, sheet string) ([]map[string]string, error) {
	grid, err := c.values(ctx, sheet)
	if err != nil {
		return nil, fmt.Errorf("google.SheetsClient.GetRows: %w", err)
	}
	if len(grid) == 0 {
		return []map[string]string{}, nil
	}

	headers := grid[0]
	rows := make([]map[string]string, 0, len(grid)-1)
	for _, cells := range grid[1:] {
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(cells) {
				row[header] = cells[i]
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AppendRow appends one record to the sheet, ordering cells by headers.
func (c *SheetsClient) AppendRow(ctx context.Context, sheet string, headers []string, record map[string]string) error {
	cells := make([]any, len(headers))
	for i, header := range headers {
		cells[i] = record[header]
	}

	body := &sheets.ValueRange{Values: [][]any{cells}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, sheet, body).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("google.SheetsClient.AppendRow: append to %s: %w", sheet, integrationError(err))
	}
	return nil
}

// FindRowByColumn scans the sheet for the first row whose column equals
// value. The returned row index is the 1-based sheet row number (header row
// is row 1, first data row is row 2), ready for UpdateCell.
// Returns domain.ErrNotFound when no row matches.
func (c *SheetsClient) FindRowByColumn(ctx context.Context, sheet, column, value string) (map[string]string, int, error) {
	rows, err := c.GetRows(ctx, sheet)
	if err != nil {
		return nil, 0, fmt.Errorf("google.SheetsClient.FindRowByColumn: %w", err)
	}
	for i, row := range rows {
		if strings.TrimSpace(row[column]) == value {
			return row, i + 2, nil
		}
	}
	return nil, 0, fmt.Errorf("google.SheetsClient.FindRowByColumn: %w", domain.ErrNotFound)
}

// GetColumnIndex returns the 1-based index of the named column in the
// sheet's header row, or 0 when the column is absent.
func (c *SheetsClient) GetColumnIndex(ctx context.Context, sheet, column string) (int, error) {
	grid, err := c.values(ctx, sheet)
	if err != nil {
		return 0, fmt.Errorf("google.SheetsClient.GetColumnIndex: %w", err)
	}
	if len(grid) == 0 {
		return 0, nil
	}
	for i, header := range grid[0] {
		if header == column {
			return i + 1, nil
		}
	}
	return 0, nil
}

// UpdateCell overwrites a single cell addressed by 1-based row and column
// indices.
func (c *SheetsClient) UpdateCell(ctx context.Context, sheet string, rowIndex, colIndex int, value string) error {
	ref := fmt.Sprintf("%s!%s%d", sheet, columnLetter(colIndex), rowIndex)
	body := &sheets.ValueRange{Values: [][]any{{value}}}

	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, ref, body).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("google.SheetsClient.UpdateCell: update %s: %w", ref, integrationError(err))
	}
	return nil
}

// columnLetter converts a 1-based column index to its A1 letter form
// (1→A, 26→Z, 27→AA).
func columnLetter(index int) string {
	letters := ""
	for index > 0 {
		index--
		letters = string(rune('A'+index%26)) + letters
		index /= 26
	}
	return letters
}
