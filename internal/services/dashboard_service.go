package services

import (
	"time"

	"github.com/marisolfit/coachdesk/internal/models"
)

// DashboardUrgentLaneSize caps how many urgent tasks the dashboard embeds.
const DashboardUrgentLaneSize = 10

type DashboardTaskReader interface {
	ListPage(listQuery TaskListQuery) ([]models.Task, int64, error)
	CountByState(scope CoachScope, state string) (int64, error)
}

type DashboardClientReader interface {
	ListPage(listQuery ClientListQuery) ([]models.Client, int64, error)
}

type DashboardSummary struct {
	ActiveClients int64         `json:"active_clients"`
	NewTasks      int64         `json:"new_tasks"`
	FollowUpTasks int64         `json:"follow_up_tasks"`
	OverdueTasks  int64         `json:"overdue_tasks"`
	UrgentLane    []models.Task `json:"urgent_lane"`
	UrgentTotal   int64         `json:"urgent_total"`
}

// DashboardService aggregates the numbers the coach landing view shows.
type DashboardService struct {
	tasks   DashboardTaskReader
	clients DashboardClientReader
}

func NewDashboardService(tasks DashboardTaskReader, clients DashboardClientReader) *DashboardService {
	return &DashboardService{
		tasks:   tasks,
		clients: clients,
	}
}

func (service *DashboardService) Build(scope CoachScope, now time.Time) (DashboardSummary, error) {
	summary := DashboardSummary{}

	_, activeClients, err := service.clients.ListPage(ClientListQuery{
		Scope:  scope,
		Status: models.ClientStatusActive,
		Limit:  1,
	})
	if err != nil {
		return DashboardSummary{}, err
	}
	summary.ActiveClients = activeClients

	if summary.NewTasks, err = service.tasks.CountByState(scope, models.TaskStateNew); err != nil {
		return DashboardSummary{}, err
	}
	if summary.FollowUpTasks, err = service.tasks.CountByState(scope, models.TaskStateFollowUpNeeded); err != nil {
		return DashboardSummary{}, err
	}

	_, overdue, err := service.tasks.ListPage(TaskListQuery{
		Scope:           scope,
		ExcludeResolved: true,
		DueBefore:       &now,
		Limit:           1,
	})
	if err != nil {
		return DashboardSummary{}, err
	}
	summary.OverdueTasks = overdue

	lane, urgentTotal, err := service.tasks.ListPage(TaskListQuery{
		Scope:           scope,
		ExcludeResolved: true,
		UrgentOrDue:     true,
		Now:             now,
		Limit:           DashboardUrgentLaneSize,
	})
	if err != nil {
		return DashboardSummary{}, err
	}
	summary.UrgentLane = lane
	summary.UrgentTotal = urgentTotal
	return summary, nil
}
