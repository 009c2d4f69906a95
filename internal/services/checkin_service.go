package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/marisolfit/coachdesk/internal/models"
	"github.com/marisolfit/coachdesk/internal/security"
)

type CheckinClientRepository interface {
	FindActiveByTokenHash(tokenHash string) (models.Client, bool, error)
}

type CheckinStore interface {
	CreateWithTask(checkin *models.Checkin, task *models.Task) error
	ListByClient(clientID uint) ([]models.Checkin, error)
}

type CheckinSettingsRepository interface {
	FindByCoach(coachID uint) (models.CoachSettings, bool, error)
}

// CheckinService ingests weekly client check-ins: it resolves the submission
// token, normalizes the payload, flags risk language, and files the review
// task for the client's coach in the same transaction as the check-in row.
type CheckinService struct {
	clients  CheckinClientRepository
	checkins CheckinStore
	settings CheckinSettingsRepository
}

func NewCheckinService(clients CheckinClientRepository, checkins CheckinStore, settings CheckinSettingsRepository) *CheckinService {
	return &CheckinService{
		clients:  clients,
		checkins: checkins,
		settings: settings,
	}
}

// Submit stores a check-in for the client behind rawToken. The covered week
// is always derived from the submission instant, never from client-supplied
// dates. Repeated submissions for the same week insert additional rows.
func (service *CheckinService) Submit(rawToken string, submission CheckinSubmission, now time.Time, location *time.Location) (models.Checkin, models.Task, error) {
	if strings.TrimSpace(rawToken) == "" {
		return models.Checkin{}, models.Task{}, ErrInvalidToken
	}

	client, found, err := service.clients.FindActiveByTokenHash(security.HashToken(rawToken))
	if err != nil {
		return models.Checkin{}, models.Task{}, err
	}
	if !found {
		return models.Checkin{}, models.Task{}, ErrInvalidToken
	}

	payload, err := NormalizeCheckinSubmission(submission, now)
	if err != nil {
		return models.Checkin{}, models.Task{}, err
	}

	keywords, err := service.riskKeywordsForCoach(client.CoachID)
	if err != nil {
		return models.Checkin{}, models.Task{}, err
	}
	riskFlags := MatchRiskKeywords(payload, keywords)
	weekStart, weekEnd := WeekRangeContaining(now, location)

	checkin := models.Checkin{
		ClientID:    client.ID,
		CoachID:     client.CoachID,
		WeekStart:   weekStart,
		WeekEnd:     weekEnd,
		Payload:     payload,
		RiskFlags:   riskFlags,
		Status:      models.CheckinStatusNew,
		SubmittedAt: now,
	}
	task := models.Task{
		CoachID:   client.CoachID,
		ClientID:  client.ID,
		Type:      models.TaskTypeReviewCheckin,
		Title:     ReviewTaskTitle(client.FullName, weekStart, weekEnd),
		Priority:  DerivePriority(riskFlags, payload.AdherencePercent),
		State:     models.TaskStateNew,
		CreatedAt: now,
	}

	if err := service.checkins.CreateWithTask(&checkin, &task); err != nil {
		return models.Checkin{}, models.Task{}, err
	}
	return checkin, task, nil
}

// HistoryForClient lists a client's check-ins, newest first.
func (service *CheckinService) HistoryForClient(clientID uint) ([]models.Checkin, error) {
	return service.checkins.ListByClient(clientID)
}

// ReviewTaskTitle names the routing task a submitted check-in creates.
func ReviewTaskTitle(clientName string, weekStart time.Time, weekEnd time.Time) string {
	return fmt.Sprintf("Review check-in: %s (%s – %s)",
		clientName, weekStart.Format(DateKeyLayout), weekEnd.Format(DateKeyLayout))
}

func (service *CheckinService) riskKeywordsForCoach(coachID uint) ([]string, error) {
	settings, found, err := service.settings.FindByCoach(coachID)
	if err != nil {
		return nil, err
	}
	if !found || len(settings.RiskKeywords) == 0 {
		return models.DefaultRiskKeywords(), nil
	}
	return settings.RiskKeywords, nil
}
