package service

import (
	"context"
	"fmt"
	"time"

	"github.com/utch-club/tripsite-api/internal/domain"
	"github.com/utch-club/tripsite-api/internal/repo"
)

// SuggestionService stores member trip suggestions.
type SuggestionService struct {
	suggestions repo.SuggestionRepo
}

// NewSuggestionService constructs a SuggestionService backed by the provided repo.
func NewSuggestionService(suggestions repo.SuggestionRepo) *SuggestionService {
	return &SuggestionService{suggestions: suggestions}
}

// Submit validates and appends a suggestion. Name and idea are required;
// the rest is optional color.
func (s *SuggestionService) Submit(ctx context.Context, input domain.SuggestionInput) error {
	name, err := requiredString(input.Name, "name")
	if err != nil {
		return err
	}
	idea, err := requiredString(input.Idea, "idea")
	if err != nil {
		return err
	}

	suggestion := domain.SuggestionInput{
		Name:          name,
		Email:         optionalString(input.Email),
		WillingToLead: optionalString(input.WillingToLead),
		Idea:          idea,
		Location:      optionalString(input.Location),
		Timing:        optionalString(input.Timing),
		Notes:         optionalString(input.Notes),
	}
	submittedAt := time.Now().UTC().Format(time.RFC3339)
	if err := s.suggestions.Append(ctx, submittedAt, suggestion); err != nil {
		return fmt.Errorf("service.SuggestionService.Submit: %w", err)
	}
	return nil
}
