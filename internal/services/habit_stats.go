package services

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/marisolfit/coachdesk/internal/models"
)

const (
	// streakLookbackDays bounds the backwards walk; anything older than a
	// year no longer counts toward a current streak.
	streakLookbackDays = 365

	WeeklyAdherenceWindowDays  = 7
	MonthlyAdherenceWindowDays = 28
)

// CurrentStreak counts consecutive completed days ending at today. Today
// itself being unlogged does not break the streak (it simply is not counted
// yet); any earlier unlogged or false day terminates the walk.
func CurrentStreak(tracking models.TrackingMap, habitIndex int, today time.Time) int {
	streak := 0
	for offset := 0; offset < streakLookbackDays; offset++ {
		key := DateKey(today.AddDate(0, 0, -offset))
		if tracking[key][habitIndex] {
			streak++
		} else if offset == 0 {
			continue
		} else {
			break
		}
	}
	return streak
}

// BestStreak scans every tracked date in ascending order and returns the
// longest run of consecutive completed days for the habit.
func BestStreak(tracking models.TrackingMap, habitIndex int) int {
	if len(tracking) == 0 {
		return 0
	}

	dates := make([]string, 0, len(tracking))
	for key := range tracking {
		dates = append(dates, key)
	}
	sort.Strings(dates)

	best := 0
	running := 0
	previous := ""
	for _, key := range dates {
		if !tracking[key][habitIndex] {
			running = 0
			previous = ""
			continue
		}
		if previous != "" && isNextCalendarDay(previous, key) {
			running++
		} else {
			running = 1
		}
		if running > best {
			best = running
		}
		previous = key
	}
	return best
}

// PeriodAdherence is the completed share of the most recent windowDays days
// (inclusive of today) as a round-half-up integer percent.
func PeriodAdherence(tracking models.TrackingMap, habitIndex int, windowDays int, today time.Time) int {
	if windowDays <= 0 {
		return 0
	}
	completed := 0
	for offset := 0; offset < windowDays; offset++ {
		if tracking[DateKey(today.AddDate(0, 0, -offset))][habitIndex] {
			completed++
		}
	}
	return roundedPercent(completed, windowDays)
}

// OverallAdherence averages the 28-day adherence of every non-blank habit;
// 0 when none are configured.
func OverallAdherence(habitList []string, tracking models.TrackingMap, today time.Time) int {
	total := 0
	active := 0
	for index, name := range habitList {
		if strings.TrimSpace(name) == "" {
			continue
		}
		active++
		total += PeriodAdherence(tracking, index, MonthlyAdherenceWindowDays, today)
	}
	if active == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(active)))
}

type HabitSummary struct {
	Name             string `json:"name"`
	CurrentStreak    int    `json:"current_streak"`
	BestStreak       int    `json:"best_streak"`
	WeeklyAdherence  int    `json:"weekly_adherence"`
	MonthlyAdherence int    `json:"monthly_adherence"`
}

// BuildHabitSummaries flattens the tracking map into per-habit figures for
// the coach-facing client detail view. Blank habit slots are skipped.
func BuildHabitSummaries(habits models.ToolkitHabits, today time.Time) []HabitSummary {
	summaries := make([]HabitSummary, 0, len(habits.List))
	for index, name := range habits.List {
		if strings.TrimSpace(name) == "" {
			continue
		}
		summaries = append(summaries, HabitSummary{
			Name:             name,
			CurrentStreak:    CurrentStreak(habits.Tracking, index, today),
			BestStreak:       BestStreak(habits.Tracking, index),
			WeeklyAdherence:  PeriodAdherence(habits.Tracking, index, WeeklyAdherenceWindowDays, today),
			MonthlyAdherence: PeriodAdherence(habits.Tracking, index, MonthlyAdherenceWindowDays, today),
		})
	}
	return summaries
}

func isNextCalendarDay(previous string, current string) bool {
	previousDay, firstErr := time.Parse(DateKeyLayout, previous)
	currentDay, secondErr := time.Parse(DateKeyLayout, current)
	if firstErr != nil || secondErr != nil {
		return false
	}
	return previousDay.AddDate(0, 0, 1).Equal(currentDay)
}

func roundedPercent(part int, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
