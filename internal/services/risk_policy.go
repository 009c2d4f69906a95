package services

import (
	"strings"

	"github.com/marisolfit/coachdesk/internal/models"
)

const (
	// UrgentAdherenceThreshold marks a check-in urgent even without keyword
	// hits; HighAdherenceThreshold escalates to high below it.
	UrgentAdherenceThreshold = 70
	HighAdherenceThreshold   = 85
)

// MatchRiskKeywords scans the free-text wins and struggles for the coach's
// risk keywords. Matching is case-insensitive substring, but flags keep the
// keyword's original casing. Each keyword appears at most once.
func MatchRiskKeywords(payload models.CheckinPayload, keywords []string) []string {
	haystack := strings.ToLower(payload.Wins + " " + payload.Struggles)

	flags := make([]string, 0, len(keywords))
	seen := make(map[string]bool, len(keywords))
	for _, keyword := range keywords {
		trimmed := strings.TrimSpace(keyword)
		if trimmed == "" {
			continue
		}
		lowered := strings.ToLower(trimmed)
		if seen[lowered] {
			continue
		}
		if strings.Contains(haystack, lowered) {
			flags = append(flags, trimmed)
			seen[lowered] = true
		}
	}
	return flags
}

// DerivePriority classifies a review task from the check-in's risk flags and
// reported adherence. Low is never produced here; it is reserved for tasks a
// coach files by hand.
func DerivePriority(riskFlags []string, adherencePercent int) string {
	if len(riskFlags) > 0 || adherencePercent < UrgentAdherenceThreshold {
		return models.TaskPriorityUrgent
	}
	if adherencePercent < HighAdherenceThreshold {
		return models.TaskPriorityHigh
	}
	return models.TaskPriorityMedium
}
