package services

import (
	"strings"
	"time"

	"github.com/marisolfit/coachdesk/internal/models"
	"github.com/marisolfit/coachdesk/internal/security"
)

// ClientListQuery narrows ClientRepository.ListPage. Status and Search are
// optional.
type ClientListQuery struct {
	Scope  CoachScope
	Status string
	Search string
	Offset int
	Limit  int
}

type ClientRepository interface {
	ListPage(listQuery ClientListQuery) ([]models.Client, int64, error)
	FindByID(clientID uint) (models.Client, bool, error)
	Create(client *models.Client) error
	UpdateByID(clientID uint, updates map[string]any) error
	RotateToken(clientID uint, tokenHash string, generatedAt time.Time) error
}

type ClientCheckinReader interface {
	LatestByClients(clientIDs []uint) (map[uint]models.Checkin, error)
	ListByClient(clientID uint) ([]models.Checkin, error)
}

type ClientTaskReader interface {
	OpenCountsByClients(clientIDs []uint) (map[uint]int64, error)
	ListOpenByClient(clientID uint) ([]models.Task, error)
}

type ClientToolkitReader interface {
	FindByClient(clientID uint) (models.ToolkitRecord, bool, error)
}

// ClientOverview is one roster list row with the aggregates the coach list
// view renders next to the name.
type ClientOverview struct {
	Client        models.Client   `json:"client"`
	LatestCheckin *models.Checkin `json:"latest_checkin"`
	OpenTasks     int64           `json:"open_tasks"`
	HasRisk       bool            `json:"has_risk"`
}

// ClientDetail is the full coach view of one client.
type ClientDetail struct {
	Client           models.Client    `json:"client"`
	Checkins         []models.Checkin `json:"checkins"`
	OpenTasks        []models.Task    `json:"open_tasks"`
	Habits           []HabitSummary   `json:"habits"`
	OverallAdherence int              `json:"overall_adherence"`
}

type CreateClientInput struct {
	FullName string
	Email    string
	Notes    string
}

type UpdateClientInput struct {
	FullName *string
	Email    *string
	Notes    *string
}

// ClientService manages a coach's roster and the per-client submission token.
type ClientService struct {
	clients  ClientRepository
	checkins ClientCheckinReader
	tasks    ClientTaskReader
	toolkits ClientToolkitReader
}

func NewClientService(clients ClientRepository, checkins ClientCheckinReader, tasks ClientTaskReader, toolkits ClientToolkitReader) *ClientService {
	return &ClientService{
		clients:  clients,
		checkins: checkins,
		tasks:    tasks,
		toolkits: toolkits,
	}
}

// List returns one roster page, newest first, with latest-checkin, open-task
// and risk aggregates per row and the exact total for the filter.
func (service *ClientService) List(listQuery ClientListQuery) ([]ClientOverview, int64, error) {
	clients, total, err := service.clients.ListPage(listQuery)
	if err != nil {
		return nil, 0, err
	}

	clientIDs := make([]uint, 0, len(clients))
	for _, client := range clients {
		clientIDs = append(clientIDs, client.ID)
	}
	latest, err := service.checkins.LatestByClients(clientIDs)
	if err != nil {
		return nil, 0, err
	}
	openCounts, err := service.tasks.OpenCountsByClients(clientIDs)
	if err != nil {
		return nil, 0, err
	}

	overviews := make([]ClientOverview, 0, len(clients))
	for _, client := range clients {
		overview := ClientOverview{
			Client:    client,
			OpenTasks: openCounts[client.ID],
		}
		if checkin, ok := latest[client.ID]; ok {
			copied := checkin
			overview.LatestCheckin = &copied
			overview.HasRisk = len(checkin.RiskFlags) > 0
		}
		overviews = append(overviews, overview)
	}
	return overviews, total, nil
}

// Create adds a client to the scope coach's roster and mints the submission
// token. The raw token is returned exactly once; only its hash is stored.
func (service *ClientService) Create(scope CoachScope, input CreateClientInput, now time.Time) (models.Client, string, error) {
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return models.Client{}, "", NewValidationError("full_name", "full name is required")
	}

	rawToken, tokenHash, err := security.NewClientToken()
	if err != nil {
		return models.Client{}, "", err
	}

	client := models.Client{
		CoachID:          scope.CoachID,
		FullName:         fullName,
		Email:            strings.TrimSpace(input.Email),
		Status:           models.ClientStatusActive,
		Notes:            strings.TrimSpace(input.Notes),
		TokenHash:        tokenHash,
		TokenGeneratedAt: now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := service.clients.Create(&client); err != nil {
		return models.Client{}, "", err
	}
	return client, rawToken, nil
}

// Detail assembles the coach's view of one client, including the habit
// figures computed from the synced toolkit state.
func (service *ClientService) Detail(scope CoachScope, clientID uint, today time.Time) (ClientDetail, error) {
	client, err := service.fetchScoped(scope, clientID)
	if err != nil {
		return ClientDetail{}, err
	}

	checkins, err := service.checkins.ListByClient(client.ID)
	if err != nil {
		return ClientDetail{}, err
	}
	openTasks, err := service.tasks.ListOpenByClient(client.ID)
	if err != nil {
		return ClientDetail{}, err
	}

	state := DefaultToolkitState()
	if record, found, err := service.toolkits.FindByClient(client.ID); err != nil {
		return ClientDetail{}, err
	} else if found {
		state = MigrateToolkitState(record.State)
	}

	return ClientDetail{
		Client:           client,
		Checkins:         checkins,
		OpenTasks:        openTasks,
		Habits:           BuildHabitSummaries(state.Habits, today),
		OverallAdherence: OverallAdherence(state.Habits.List, state.Habits.Tracking, today),
	}, nil
}

func (service *ClientService) Update(scope CoachScope, clientID uint, input UpdateClientInput, now time.Time) (models.Client, error) {
	client, err := service.fetchScoped(scope, clientID)
	if err != nil {
		return models.Client{}, err
	}

	updates := map[string]any{"updated_at": now}
	if input.FullName != nil {
		fullName := strings.TrimSpace(*input.FullName)
		if fullName == "" {
			return models.Client{}, NewValidationError("full_name", "full name is required")
		}
		updates["full_name"] = fullName
		client.FullName = fullName
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		updates["email"] = email
		client.Email = email
	}
	if input.Notes != nil {
		notes := strings.TrimSpace(*input.Notes)
		updates["notes"] = notes
		client.Notes = notes
	}

	if err := service.clients.UpdateByID(client.ID, updates); err != nil {
		return models.Client{}, err
	}
	client.UpdatedAt = now
	return client, nil
}

// Archive retires a client without deleting history; their token stops
// resolving while archived.
func (service *ClientService) Archive(scope CoachScope, clientID uint, now time.Time) (models.Client, error) {
	return service.setStatus(scope, clientID, models.ClientStatusArchived, now)
}

func (service *ClientService) Unarchive(scope CoachScope, clientID uint, now time.Time) (models.Client, error) {
	return service.setStatus(scope, clientID, models.ClientStatusActive, now)
}

// RegenerateToken mints a replacement submission token. The old token stops
// working the moment the new hash is stored.
func (service *ClientService) RegenerateToken(scope CoachScope, clientID uint, now time.Time) (string, error) {
	client, err := service.fetchScoped(scope, clientID)
	if err != nil {
		return "", err
	}

	rawToken, tokenHash, err := security.NewClientToken()
	if err != nil {
		return "", err
	}
	if err := service.clients.RotateToken(client.ID, tokenHash, now); err != nil {
		return "", err
	}
	return rawToken, nil
}

func (service *ClientService) setStatus(scope CoachScope, clientID uint, status string, now time.Time) (models.Client, error) {
	client, err := service.fetchScoped(scope, clientID)
	if err != nil {
		return models.Client{}, err
	}

	if client.Status != status {
		if err := service.clients.UpdateByID(client.ID, map[string]any{
			"status":     status,
			"updated_at": now,
		}); err != nil {
			return models.Client{}, err
		}
		client.Status = status
		client.UpdatedAt = now
	}
	return client, nil
}

func (service *ClientService) fetchScoped(scope CoachScope, clientID uint) (models.Client, error) {
	client, found, err := service.clients.FindByID(clientID)
	if err != nil {
		return models.Client{}, err
	}
	if !found {
		return models.Client{}, ErrNotFound
	}
	if !scope.CanAccess(client.CoachID) {
		return models.Client{}, ErrUnauthorized
	}
	return client, nil
}
