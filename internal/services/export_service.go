package services

import (
	"bytes"
	"encoding/csv"

	"github.com/marisolfit/coachdesk/internal/models"
)

// ExportCSVHeaders is the fixed column set for a client's check-in export.
var ExportCSVHeaders = []string{
	"week_start",
	"week_end",
	"wins",
	"struggles",
	"adherence_percent",
	"sessions_completed",
	"avg_steps",
	"avg_sleep",
	"next_focus_1",
	"next_focus_2",
	"next_focus_3",
	"created_at",
}

type ExportClientRepository interface {
	FindByID(clientID uint) (models.Client, bool, error)
}

type ExportToolkitReader interface {
	FindByClient(clientID uint) (models.ToolkitRecord, bool, error)
}

// ExportService renders a roster client's synced toolkit data for download.
type ExportService struct {
	clients  ExportClientRepository
	toolkits ExportToolkitReader
}

func NewExportService(clients ExportClientRepository, toolkits ExportToolkitReader) *ExportService {
	return &ExportService{
		clients:  clients,
		toolkits: toolkits,
	}
}

// StateForExport loads a client's toolkit state through the migration path.
// The JSON export is this state verbatim.
func (service *ExportService) StateForExport(scope CoachScope, clientID uint) (models.ToolkitState, error) {
	state, _, err := service.loadState(scope, clientID)
	return state, err
}

// BuildCheckinCSV renders the client's saved check-ins. Fields containing a
// comma, quote, CR or LF come out quoted with internal quotes doubled.
func (service *ExportService) BuildCheckinCSV(scope CoachScope, clientID uint) ([]byte, error) {
	state, _, err := service.loadState(scope, clientID)
	if err != nil {
		return nil, err
	}

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(ExportCSVHeaders); err != nil {
		return nil, err
	}
	for _, checkin := range state.Checkins {
		if err := writer.Write(checkinCSVColumns(checkin)); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return output.Bytes(), nil
}

func (service *ExportService) loadState(scope CoachScope, clientID uint) (models.ToolkitState, models.Client, error) {
	client, found, err := service.clients.FindByID(clientID)
	if err != nil {
		return models.ToolkitState{}, models.Client{}, err
	}
	if !found {
		return models.ToolkitState{}, models.Client{}, ErrNotFound
	}
	if !scope.CanAccess(client.CoachID) {
		return models.ToolkitState{}, models.Client{}, ErrUnauthorized
	}

	record, found, err := service.toolkits.FindByClient(client.ID)
	if err != nil {
		return models.ToolkitState{}, models.Client{}, err
	}
	if !found {
		return DefaultToolkitState(), client, nil
	}
	return MigrateToolkitState(record.State), client, nil
}

func checkinCSVColumns(checkin models.ToolkitCheckin) []string {
	return []string{
		checkin.WeekStart,
		checkin.WeekEnd,
		checkin.Wins,
		checkin.Struggles,
		checkin.AdherencePercent,
		checkin.SessionsCompleted,
		checkin.AvgSteps,
		checkin.AvgSleep,
		checkin.NextFocus1,
		checkin.NextFocus2,
		checkin.NextFocus3,
		checkin.CreatedAt,
	}
}
