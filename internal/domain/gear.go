package domain

import "strings"

// GearVocabulary is the fixed set of club gear items that may appear in a
// trip's gearAvailable list or a request's gearNeeded list.
var GearVocabulary = []string{"tent", "sleeping bag", "sleeping pad", "stove", "headlamp"}

var gearSet = func() map[string]bool {
	m := make(map[string]bool, len(GearVocabulary))
	for _, g := range GearVocabulary {
		m[g] = true
	}
	return m
}()

// NormalizeGearList filters items against the gear vocabulary.
// Matching is case-insensitive, duplicates are collapsed, and unrecognized
// items are silently dropped. The input order of first occurrences is kept.
func NormalizeGearList(items []string) []string {
	result := []string{}
	seen := make(map[string]bool)
	for _, item := range items {
		normalized := strings.ToLower(strings.TrimSpace(item))
		if gearSet[normalized] && !seen[normalized] {
			result = append(result, normalized)
			seen[normalized] = true
		}
	}
	return result
}

// SplitGearCell parses a comma-joined gear cell from the row store back into
// a normalized list. Empty cells yield an empty list.
func SplitGearCell(cell string) []string {
	return NormalizeGearList(strings.Split(cell, ","))
}
