package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/utch-club/tripsite-api/internal/domain"
	"github.com/utch-club/tripsite-api/internal/google"
)

// SettingsSheet is the sheet holding one key/value row per overridden
// site setting.
const SettingsSheet = "SiteSettings"

// SettingsHeaders is the column layout of the settings sheet.
var SettingsHeaders = []string{"key", "value", "updatedAt"}

// SettingRow is one stored override with its 1-based sheet row number, kept
// so the service can write back to the same row.
type SettingRow struct {
	Key      string
	Value    string
	RowIndex int
}

// SettingsRepo defines the persistence operations for site settings.
type SettingsRepo interface {
	// Rows returns every stored override. A missing settings sheet reads
	// as "no overrides yet" — an empty slice — while any other read
	// failure propagates.
	Rows(ctx context.Context) ([]SettingRow, error)

	// Append stores a new override row.
	Append(ctx context.Context, key, value, updatedAt string) error

	// UpdateValue overwrites the value and updatedAt cells of an existing
	// override row. Returns domain.ErrDataIntegrity when the sheet lacks
	// either column.
	UpdateValue(ctx context.Context, rowIndex int, value, updatedAt string) error
}

type sheetSettingsRepo struct {
	store RowStore
}

// NewSettingsRepo constructs a SettingsRepo backed by the provided row store.
func NewSettingsRepo(store RowStore) SettingsRepo {
	return &sheetSettingsRepo{store: store}
}

func (r *sheetSettingsRepo) Rows(ctx context.Context) ([]SettingRow, error) {
	rows, err := r.store.GetRows(ctx, SettingsSheet)
	if errors.Is(err, google.ErrSheetMissing) {
		return []SettingRow{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("repo.SettingsRepo.Rows: %w", err)
	}

	settings := make([]SettingRow, 0, len(rows))
	for i, row := range rows {
		key := strings.TrimSpace(row["key"])
		if key == "" {
			continue
		}
		settings = append(settings, SettingRow{
			Key:      key,
			Value:    row["value"],
			RowIndex: i + 2,
		})
	}
	return settings, nil
}

func (r *sheetSettingsRepo) Append(ctx context.Context, key, value, updatedAt string) error {
	record := map[string]string{"key": key, "value": value, "updatedAt": updatedAt}
	if err := r.store.AppendRow(ctx, SettingsSheet, SettingsHeaders, record); err != nil {
		return fmt.Errorf("repo.SettingsRepo.Append: %w", err)
	}
	return nil
}

func (r *sheetSettingsRepo) UpdateValue(ctx context.Context, rowIndex int, value, updatedAt string) error {
	valueCol, err := r.store.GetColumnIndex(ctx, SettingsSheet, "value")
	if err != nil {
		return fmt.Errorf("repo.SettingsRepo.UpdateValue: %w", err)
	}
	updatedAtCol, err := r.store.GetColumnIndex(ctx, SettingsSheet, "updatedAt")
	if err != nil {
		return fmt.Errorf("repo.SettingsRepo.UpdateValue: %w", err)
	}
	if valueCol < 1 || updatedAtCol < 1 {
		return fmt.Errorf("repo.SettingsRepo.UpdateValue: %w: settings sheet is missing value or updatedAt column",
			domain.ErrDataIntegrity)
	}

	if err := r.store.UpdateCell(ctx, SettingsSheet, rowIndex, valueCol, value); err != nil {
		return fmt.Errorf("repo.SettingsRepo.UpdateValue: %w", err)
	}
	if err := r.store.UpdateCell(ctx, SettingsSheet, rowIndex, updatedAtCol, updatedAt); err != nil {
		return fmt.Errorf("repo.SettingsRepo.UpdateValue: %w", err)
	}
	return nil
}
