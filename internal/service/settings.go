package service

import (
	"context"
	"fmt"
	"time"

	"github.com/utch-club/tripsite-api/internal/domain"
	"github.com/utch-club/tripsite-api/internal/repo"
)

// SettingsService implements the schema-validated site settings store.
type SettingsService struct {
	settings repo.SettingsRepo
}

// NewSettingsService constructs a SettingsService backed by the provided repo.
func NewSettingsService(settings repo.SettingsRepo) *SettingsService {
	return &SettingsService{settings: settings}
}

// Get returns the authoritative merged settings: hard-coded defaults
// overlaid with any stored overrides. Unknown or duplicate stored keys are
// corrupt state, not input errors.
func (s *SettingsService) Get(ctx context.Context) (domain.SiteSettings, error) {
	rows, err := s.settings.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.SettingsService.Get: %w", err)
	}
	merged, err := mergeSettingRows(rows)
	if err != nil {
		return nil, fmt.Errorf("service.SettingsService.Get: %w", err)
	}
	return merged, nil
}

// Update validates every incoming key and value before writing anything,
// then appends or updates one row per key and re-reads the full settings to
// return the authoritative merged view.
func (s *SettingsService) Update(ctx context.Context, incoming map[string]string) (domain.SiteSettings, error) {
	if len(incoming) == 0 {
		return nil, fmt.Errorf("%w: settings must include at least one key", domain.ErrValidation)
	}

	normalized := make(map[domain.SettingKey]string, len(incoming))
	for raw, value := range incoming {
		key, err := domain.ParseSettingKey(raw)
		if err != nil {
			return nil, err
		}
		clean, err := domain.NormalizeSettingValue(key, value)
		if err != nil {
			return nil, err
		}
		normalized[key] = clean
	}

	rows, err := s.settings.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.SettingsService.Update: %w", err)
	}
	rowIndexByKey := make(map[string]int, len(rows))
	for _, row := range rows {
		rowIndexByKey[row.Key] = row.RowIndex
	}

	now := time.Now().UTC().Format(time.RFC3339)
	// Iterate the fixed key order so multi-key updates touch the sheet
	// deterministically.
	for _, key := range domain.SettingKeys {
		value, ok := normalized[key]
		if !ok {
			continue
		}
		if rowIndex, exists := rowIndexByKey[string(key)]; exists {
			err = s.settings.UpdateValue(ctx, rowIndex, value, now)
		} else {
			err = s.settings.Append(ctx, string(key), value, now)
		}
		if err != nil {
			return nil, fmt.Errorf("service.SettingsService.Update: %w", err)
		}
	}

	return s.Get(ctx)
}

// mergeSettingRows overlays stored rows onto the defaults, rejecting
// unknown keys, duplicate keys, and values the key's normalizer refuses —
// all of which mean the sheet was corrupted outside the API.
func mergeSettingRows(rows []repo.SettingRow) (domain.SiteSettings, error) {
	settings := domain.DefaultSiteSettings()
	seen := make(map[string]bool, len(rows))

	for _, row := range rows {
		key, err := domain.ParseSettingKey(row.Key)
		if err != nil {
			return nil, fmt.Errorf("%w: settings sheet has unsupported key %q at row %d",
				domain.ErrDataIntegrity, row.Key, row.RowIndex)
		}
		if seen[row.Key] {
			return nil, fmt.Errorf("%w: settings sheet has duplicate key %q at row %d",
				domain.ErrDataIntegrity, row.Key, row.RowIndex)
		}
		seen[row.Key] = true

		value, err := domain.NormalizeSettingValue(key, row.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: settings sheet has invalid value for %q at row %d: %v",
				domain.ErrDataIntegrity, row.Key, row.RowIndex, err)
		}
		settings[key] = value
	}
	return settings, nil
}
