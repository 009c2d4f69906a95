package services

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/marisolfit/coachdesk/internal/models"
	"github.com/marisolfit/coachdesk/internal/security"
)

type ToolkitRepository interface {
	FindByClient(clientID uint) (models.ToolkitRecord, bool, error)
	Upsert(record *models.ToolkitRecord) error
}

// ToolkitService syncs the client-side toolkit state. Loads always pass
// through the schema migration, so a device that last synced on an older
// layout reads back current-shape data.
type ToolkitService struct {
	clients  CheckinClientRepository
	toolkits ToolkitRepository
}

func NewToolkitService(clients CheckinClientRepository, toolkits ToolkitRepository) *ToolkitService {
	return &ToolkitService{
		clients:  clients,
		toolkits: toolkits,
	}
}

func (service *ToolkitService) Load(rawToken string) (models.ToolkitState, error) {
	client, err := service.resolveClient(rawToken)
	if err != nil {
		return models.ToolkitState{}, err
	}

	record, found, err := service.toolkits.FindByClient(client.ID)
	if err != nil {
		return models.ToolkitState{}, err
	}
	if !found {
		return DefaultToolkitState(), nil
	}
	return MigrateToolkitState(record.State), nil
}

// Save validates the submitted schema version, lifts the state to the current
// layout, and stores the canonical encoding.
func (service *ToolkitService) Save(rawToken string, raw []byte, now time.Time) (models.ToolkitState, error) {
	client, err := service.resolveClient(rawToken)
	if err != nil {
		return models.ToolkitState{}, err
	}

	var versioned struct {
		SchemaVersion int `json:"schemaVersion"`
	}
	if err := json.Unmarshal(raw, &versioned); err != nil {
		return models.ToolkitState{}, NewValidationError("state", "state must be a JSON object")
	}
	if versioned.SchemaVersion > models.ToolkitSchemaVersion {
		return models.ToolkitState{}, NewValidationError("schemaVersion", "unsupported schema version")
	}

	state := MigrateToolkitState(raw)
	encoded, err := json.Marshal(state)
	if err != nil {
		return models.ToolkitState{}, err
	}

	record := models.ToolkitRecord{
		ClientID:      client.ID,
		SchemaVersion: state.SchemaVersion,
		State:         encoded,
		UpdatedAt:     now,
	}
	if err := service.toolkits.Upsert(&record); err != nil {
		return models.ToolkitState{}, err
	}
	return state, nil
}

func (service *ToolkitService) resolveClient(rawToken string) (models.Client, error) {
	if strings.TrimSpace(rawToken) == "" {
		return models.Client{}, ErrInvalidToken
	}
	client, found, err := service.clients.FindActiveByTokenHash(security.HashToken(rawToken))
	if err != nil {
		return models.Client{}, err
	}
	if !found {
		return models.Client{}, ErrInvalidToken
	}
	return client, nil
}
