package repo_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/utch-club/tripsite-api/internal/domain"
	"github.com/utch-club/tripsite-api/internal/google"
	"github.com/utch-club/tripsite-api/internal/repo"
)

// fakeStore is an in-memory row store. Each sheet is a cell grid whose first
// row is the header row, mirroring how the spreadsheet client reads one.
type fakeStore struct {
	sheets map[string][][]string

	appendErr error
	updateErr error
}

var _ repo.RowStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{sheets: map[string][][]string{}}
}

func (f *fakeStore) addSheet(sheet string, headers []string, rows ...[]string) {
	grid := [][]string{headers}
	grid = append(grid, rows...)
	f.sheets[sheet] = grid
}

func (f *fakeStore) grid(sheet string) ([][]string, error) {
	grid, ok := f.sheets[sheet]
	if !ok {
		return nil, fmt.Errorf("%w: %s", google.ErrSheetMissing, sheet)
	}
	return grid, nil
}

func (f *fakeStore) GetRows(_ context.Context, sheet string) ([]map[string]string, error) {
	grid, err := f.grid(sheet)
	if err != nil {
		return nil, err
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

func (f *fakeStore) AppendRow(_ context.Context, sheet string, headers []string, record map[string]string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	grid, ok := f.sheets[sheet]
	if !ok {
		grid = [][]string{headers}
	}
	cells := make([]string, len(headers))
	for i, header := range headers {
		cells[i] = record[header]
	}
	f.sheets[sheet] = append(grid, cells)
	return nil
}

func (f *fakeStore) FindRowByColumn(ctx context.Context, sheet, column, value string) (map[string]string, int, error) {
	rows, err := f.GetRows(ctx, sheet)
	if err != nil {
		return nil, 0, err
	}
	for i, row := range rows {
		if strings.TrimSpace(row[column]) == value {
			return row, i + 2, nil
		}
	}
	return nil, 0, domain.ErrNotFound
}

func (f *fakeStore) GetColumnIndex(_ context.Context, sheet, column string) (int, error) {
	grid, err := f.grid(sheet)
	if err != nil {
		return 0, err
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

func (f *fakeStore) UpdateCell(_ context.Context, sheet string, rowIndex, colIndex int, value string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	grid, ok := f.sheets[sheet]
	if !ok || rowIndex < 1 || rowIndex > len(grid) || colIndex < 1 {
		return fmt.Errorf("cell %s!%d:%d out of range", sheet, rowIndex, colIndex)
	}
	row := grid[rowIndex-1]
	for len(row) < colIndex {
		row = append(row, "")
	}
	row[colIndex-1] = value
	grid[rowIndex-1] = row
	return nil
}

// cell reads one cell back out for assertions, by header name.
func (f *fakeStore) cell(sheet string, rowIndex int, column string) string {
	grid := f.sheets[sheet]
	for i, header := range grid[0] {
		if header == column {
			row := grid[rowIndex-1]
			if i < len(row) {
				return row[i]
			}
			return ""
		}
	}
	return ""
}
