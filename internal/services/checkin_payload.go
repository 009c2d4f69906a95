package services

import (
	"math"
	"strings"
	"time"

	"github.com/marisolfit/coachdesk/internal/models"
)

// CheckinSubmission is the wire shape of a client check-in. Clients built at
// different times send the numeric fields under different names, so every
// historical alias is accepted and normalized here, at the boundary.
type CheckinSubmission struct {
	Wins      string `json:"wins"`
	Struggles string `json:"struggles"`

	Adherence      *int `json:"adherence"`
	AdherenceScore *int `json:"adherence_score"`

	TrainingSessions  *float64 `json:"training_sessions"`
	Sessions          *float64 `json:"sessions"`
	SessionsCompleted *float64 `json:"sessions_completed"`

	AvgSteps *float64 `json:"avg_steps"`
	Steps    *float64 `json:"steps"`

	AvgSleepHours *float64 `json:"avg_sleep_hours"`
	AvgSleep      *float64 `json:"avg_sleep"`
	Sleep         *float64 `json:"sleep"`

	FocusAreas []string `json:"focus_areas"`
}

// NormalizeCheckinSubmission validates a raw submission and produces the
// canonical payload stored with the check-in. The first present alias wins;
// missing optional metrics default to zero. Focus areas are trimmed, blank
// entries dropped, and the list padded or truncated to exactly three slots.
func NormalizeCheckinSubmission(submission CheckinSubmission, submittedAt time.Time) (models.CheckinPayload, error) {
	wins := strings.TrimSpace(submission.Wins)
	struggles := strings.TrimSpace(submission.Struggles)
	if wins == "" && struggles == "" {
		return models.CheckinPayload{}, NewValidationError("wins", "share at least a win or a struggle")
	}

	adherence := firstInt(submission.Adherence, submission.AdherenceScore)
	if adherence == nil {
		return models.CheckinPayload{}, NewValidationError("adherence", "adherence percent is required")
	}
	if *adherence < 0 || *adherence > 100 {
		return models.CheckinPayload{}, NewValidationError("adherence", "adherence percent must be between 0 and 100")
	}

	focus := make([]string, 0, models.CheckinFocusAreaCount)
	for _, area := range submission.FocusAreas {
		trimmed := strings.TrimSpace(area)
		if trimmed == "" {
			continue
		}
		focus = append(focus, trimmed)
		if len(focus) == models.CheckinFocusAreaCount {
			break
		}
	}
	for len(focus) < models.CheckinFocusAreaCount {
		focus = append(focus, "")
	}

	return models.CheckinPayload{
		Wins:             wins,
		Struggles:        struggles,
		AdherencePercent: *adherence,
		TrainingSessions: roundToCount(firstFloat(submission.TrainingSessions, submission.Sessions, submission.SessionsCompleted)),
		AvgSteps:         roundToCount(firstFloat(submission.AvgSteps, submission.Steps)),
		AvgSleepHours:    firstFloat(submission.AvgSleepHours, submission.AvgSleep, submission.Sleep),
		FocusAreas:       focus,
		SubmittedAt:      submittedAt,
	}, nil
}

func firstInt(candidates ...*int) *int {
	for _, candidate := range candidates {
		if candidate != nil {
			return candidate
		}
	}
	return nil
}

// roundToCount collapses averaged wire values to the whole-number counts the
// payload stores for sessions and steps.
func roundToCount(value float64) int {
	return int(math.Round(value))
}

func firstFloat(candidates ...*float64) float64 {
	for _, candidate := range candidates {
		if candidate != nil {
			return *candidate
		}
	}
	return 0
}
