package services

import (
	"encoding/json"
	"fmt"

	"github.com/marisolfit/coachdesk/internal/models"
)

// DefaultToolkitState is what a brand-new client starts from.
func DefaultToolkitState() models.ToolkitState {
	return models.ToolkitState{
		SchemaVersion: models.ToolkitSchemaVersion,
		Goals: models.ToolkitGoals{
			MetricType:   "adherence",
			FocusActions: []string{"", "", ""},
			Milestones:   []string{},
		},
		Habits: models.ToolkitHabits{
			List: []string{
				"Protein target hit",
				"Steps goal hit",
				"Workout completed",
				"Sleep 7+ hours",
				"Balanced plate (2 meals)",
			},
			Tracking: models.TrackingMap{},
		},
		Checkins:       []models.ToolkitCheckin{},
		CurrentCheckin: emptyCheckinDraft(),
	}
}

// rawToolkitState defers the fields whose shape changed between schema
// versions: in v1 "checkins" is an object holding the draft and a history
// array, in v2 it is a flat array with the draft at top level.
type rawToolkitState struct {
	SchemaVersion  int                  `json:"schemaVersion"`
	Goals          models.ToolkitGoals  `json:"goals"`
	Habits         models.ToolkitHabits `json:"habits"`
	Checkins       json.RawMessage      `json:"checkins"`
	CurrentCheckin json.RawMessage      `json:"currentCheckin"`
}

type legacyCheckinBlock struct {
	CurrentCheckin *legacyCheckinDraft  `json:"currentCheckin"`
	History        []legacyHistoryEntry `json:"history"`
}

type legacyCheckinDraft struct {
	Wins      string   `json:"wins"`
	Struggles string   `json:"struggles"`
	Adherence string   `json:"adherence"`
	Steps     string   `json:"steps"`
	Focus     []string `json:"focus"`
}

type legacyHistoryEntry struct {
	Date      string `json:"date"`
	Wins      string `json:"wins"`
	Struggles string `json:"struggles"`
	Stats     struct {
		Adherence json.RawMessage `json:"adherence"`
		Steps     json.RawMessage `json:"steps"`
	} `json:"stats"`
}

// MigrateToolkitState lifts any stored toolkit layout to the current schema.
// It is total (malformed or absent input yields the default state) and
// idempotent (current data passes through unchanged).
func MigrateToolkitState(raw []byte) models.ToolkitState {
	if len(raw) == 0 {
		return DefaultToolkitState()
	}

	var parsed rawToolkitState
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return DefaultToolkitState()
	}

	state := models.ToolkitState{
		SchemaVersion: models.ToolkitSchemaVersion,
		Goals:         parsed.Goals,
		Habits:        parsed.Habits,
	}

	if parsed.SchemaVersion == 0 {
		state.Checkins, state.CurrentCheckin = liftLegacyCheckins(parsed.Checkins)
	} else {
		if len(parsed.Checkins) > 0 {
			_ = json.Unmarshal(parsed.Checkins, &state.Checkins)
		}
		if len(parsed.CurrentCheckin) > 0 {
			_ = json.Unmarshal(parsed.CurrentCheckin, &state.CurrentCheckin)
		}
	}

	if state.Goals.FocusActions == nil {
		state.Goals.FocusActions = []string{"", "", ""}
	}
	if state.Goals.Milestones == nil {
		state.Goals.Milestones = []string{}
	}
	if state.Habits.List == nil {
		state.Habits.List = []string{}
	}
	if state.Habits.Tracking == nil {
		state.Habits.Tracking = models.TrackingMap{}
	}
	if state.Checkins == nil {
		state.Checkins = []models.ToolkitCheckin{}
	}
	state.CurrentCheckin.Focus = padFocus(state.CurrentCheckin.Focus)
	return state
}

func liftLegacyCheckins(raw json.RawMessage) ([]models.ToolkitCheckin, models.ToolkitCheckinDraft) {
	checkins := []models.ToolkitCheckin{}
	draft := emptyCheckinDraft()
	if len(raw) == 0 {
		return checkins, draft
	}

	var block legacyCheckinBlock
	if err := json.Unmarshal(raw, &block); err != nil {
		return checkins, draft
	}

	if block.CurrentCheckin != nil {
		draft.Wins = block.CurrentCheckin.Wins
		draft.Struggles = block.CurrentCheckin.Struggles
		draft.Adherence = block.CurrentCheckin.Adherence
		draft.Steps = block.CurrentCheckin.Steps
		draft.Focus = padFocus(block.CurrentCheckin.Focus)
	}

	for index, entry := range block.History {
		checkins = append(checkins, models.ToolkitCheckin{
			ID:               fmt.Sprintf("legacy-%d", index),
			WeekStart:        entry.Date,
			WeekEnd:          entry.Date,
			Wins:             entry.Wins,
			Struggles:        entry.Struggles,
			AdherencePercent: textValue(entry.Stats.Adherence),
			AvgSteps:         textValue(entry.Stats.Steps),
			CreatedAt:        entry.Date,
		})
	}
	return checkins, draft
}

func emptyCheckinDraft() models.ToolkitCheckinDraft {
	return models.ToolkitCheckinDraft{Focus: []string{"", "", ""}}
}

func padFocus(focus []string) []string {
	padded := make([]string, models.CheckinFocusAreaCount)
	for index := 0; index < models.CheckinFocusAreaCount && index < len(focus); index++ {
		padded[index] = focus[index]
	}
	return padded
}

// textValue reads a JSON scalar that older clients stored sometimes as a
// string and sometimes as a number.
func textValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}
	var asNumber json.Number
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return asNumber.String()
	}
	return ""
}
