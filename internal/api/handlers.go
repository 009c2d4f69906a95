package api

import (
	"time"

	"github.com/marisolfit/coachdesk/internal/db"
	"github.com/marisolfit/coachdesk/internal/services"
)

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
)

const (
	loginAttemptsLimit   = 10
	loginAttemptsWindow  = 15 * time.Minute
	submitAttemptsLimit  = 30
	submitAttemptsWindow = time.Hour
)

type Handler struct {
	secretKey        []byte
	location         *time.Location
	cookieSecure     bool
	authService      *services.AuthService
	clientService    *services.ClientService
	checkinService   *services.CheckinService
	taskService      *services.TaskService
	settingsService  *services.SettingsService
	toolkitService   *services.ToolkitService
	exportService    *services.ExportService
	dashboardService *services.DashboardService
	loginLimiter     *attemptLimiter
	submitLimiter    *attemptLimiter
}

func NewHandler(repositories *db.Repositories, secretKey string, location *time.Location, cookieSecure bool) *Handler {
	if location == nil {
		location = time.UTC
	}

	handler := &Handler{
		secretKey:     []byte(secretKey),
		location:      location,
		cookieSecure:  cookieSecure,
		loginLimiter:  newAttemptLimiter(),
		submitLimiter: newAttemptLimiter(),
	}

	handler.authService = services.NewAuthService(repositories.Coaches, repositories.Invites)
	handler.clientService = services.NewClientService(repositories.Clients, repositories.Checkins, repositories.Tasks, repositories.Toolkits)
	handler.checkinService = services.NewCheckinService(repositories.Clients, repositories.Checkins, repositories.Settings)
	handler.taskService = services.NewTaskService(repositories.Tasks, repositories.Clients)
	handler.settingsService = services.NewSettingsService(repositories.Settings)
	handler.toolkitService = services.NewToolkitService(repositories.Clients, repositories.Toolkits)
	handler.exportService = services.NewExportService(repositories.Clients, repositories.Toolkits)
	handler.dashboardService = services.NewDashboardService(repositories.Tasks, repositories.Clients)

	return handler
}

type credentialsInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	RememberMe  bool   `json:"remember_me"`
}

type acceptInviteInput struct {
	Token       string `json:"token"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type clientInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Notes    string `json:"notes"`
}

type clientPatchInput struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Notes    *string `json:"notes"`
}

type manualTaskInput struct {
	ClientID uint       `json:"client_id"`
	Title    string     `json:"title"`
	Priority string     `json:"priority"`
	DueAt    *time.Time `json:"due_at"`
	Notes    string     `json:"notes"`
}

type taskPatchInput struct {
	Notes *string    `json:"notes"`
	DueAt *time.Time `json:"due_at"`
}

type bulkTaskInput struct {
	TaskIDs []uint     `json:"task_ids"`
	DueAt   *time.Time `json:"due_at"`
}

type settingsInput struct {
	DefaultCheckinDay        int      `json:"default_checkin_day"`
	DefaultDueHour           int      `json:"default_due_hour"`
	DefaultOverdueAfterHours int      `json:"default_overdue_after_hours"`
	RiskKeywords             []string `json:"risk_keywords"`
}

type inviteInput struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}
