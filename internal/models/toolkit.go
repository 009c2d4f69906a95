package models

import "time"

// ToolkitSchemaVersion is the current on-device toolkit state layout.
// Version 1 predates the version field entirely.
const ToolkitSchemaVersion = 2

// TrackingMap is a sparse calendar-day -> habit ordinal -> completed mapping.
// Absence of an entry means "not completed"; there is no tri-state.
type TrackingMap map[string]map[int]bool

type ToolkitGoals struct {
	Title        string   `json:"title"`
	MetricType   string   `json:"metricType"`
	Baseline     string   `json:"baseline"`
	Target       string   `json:"target"`
	Deadline     string   `json:"deadline"`
	FocusActions []string `json:"focusActions"`
	Progress     int      `json:"progress"`
	Milestones   []string `json:"milestones"`
}

type ToolkitHabits struct {
	List     []string    `json:"list"`
	Tracking TrackingMap `json:"tracking"`
}

// ToolkitCheckin is a locally saved weekly review. Numeric fields stay as the
// raw text the client typed; the server-side CheckinPayload is the canonical
// numeric shape.
type ToolkitCheckin struct {
	ID                string `json:"id"`
	WeekStart         string `json:"week_start"`
	WeekEnd           string `json:"week_end"`
	Wins              string `json:"wins"`
	Struggles         string `json:"struggles"`
	AdherencePercent  string `json:"adherence_percent"`
	SessionsCompleted string `json:"sessions_completed"`
	AvgSteps          string `json:"avg_steps"`
	AvgSleep          string `json:"avg_sleep"`
	NextFocus1        string `json:"next_focus_1"`
	NextFocus2        string `json:"next_focus_2"`
	NextFocus3        string `json:"next_focus_3"`
	CreatedAt         string `json:"created_at"`
}

type ToolkitCheckinDraft struct {
	Wins      string   `json:"wins"`
	Struggles string   `json:"struggles"`
	Adherence string   `json:"adherence"`
	Steps     string   `json:"steps"`
	Sessions  string   `json:"sessions"`
	Sleep     string   `json:"sleep"`
	Focus     []string `json:"focus"`
}

type ToolkitState struct {
	SchemaVersion  int                 `json:"schemaVersion"`
	Goals          ToolkitGoals        `json:"goals"`
	Habits         ToolkitHabits       `json:"habits"`
	Checkins       []ToolkitCheckin    `json:"checkins"`
	CurrentCheckin ToolkitCheckinDraft `json:"currentCheckin"`
}

// ToolkitRecord is the per-client server copy of the toolkit state.
type ToolkitRecord struct {
	ClientID      uint   `gorm:"primaryKey"`
	SchemaVersion int    `gorm:"not null"`
	State         []byte `gorm:"not null"`
	UpdatedAt     time.Time
}
