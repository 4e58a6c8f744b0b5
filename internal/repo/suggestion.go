package repo

import (
	"context"
	"fmt"

	"github.com/utch-club/tripsite-api/internal/domain"
)

// SuggestionsSheet collects member trip ideas; the site only ever appends.
const SuggestionsSheet = "Suggestions"

// SuggestionHeaders is the column layout of the suggestions sheet.
var SuggestionHeaders = []string{
	"submittedAt", "name", "email", "willingToLead",
	"idea", "location", "timing", "notes",
}

// SuggestionRepo stores member trip suggestions.
type SuggestionRepo interface {
	Append(ctx context.Context, submittedAt string, suggestion domain.SuggestionInput) error
}

type sheetSuggestionRepo struct {
	store RowStore
}

// NewSuggestionRepo constructs a SuggestionRepo backed by the provided row store.
func NewSuggestionRepo(store RowStore) SuggestionRepo {
	return &sheetSuggestionRepo{store: store}
}

func (r *sheetSuggestionRepo) Append(ctx context.Context, submittedAt string, suggestion domain.SuggestionInput) error {
	record := map[string]string{
		"submittedAt":   submittedAt,
		"name":          suggestion.Name,
		"email":         suggestion.Email,
		"willingToLead": suggestion.WillingToLead,
		"idea":          suggestion.Idea,
		"location":      suggestion.Location,
		"timing":        suggestion.Timing,
		"notes":         suggestion.Notes,
	}
	if err := r.store.AppendRow(ctx, SuggestionsSheet, SuggestionHeaders, record); err != nil {
		return fmt.Errorf("repo.SuggestionRepo.Append: %w", err)
	}
	return nil
}
