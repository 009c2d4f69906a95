package db

import "gorm.io/gorm"

type Repositories struct {
	Coaches  *CoachRepository
	Clients  *ClientRepository
	Checkins *CheckinRepository
	Tasks    *TaskRepository
	Settings *SettingsRepository
	Invites  *InviteRepository
	Toolkits *ToolkitRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Coaches:  NewCoachRepository(database),
		Clients:  NewClientRepository(database),
		Checkins: NewCheckinRepository(database),
		Tasks:    NewTaskRepository(database),
		Settings: NewSettingsRepository(database),
		Invites:  NewInviteRepository(database),
		Toolkits: NewToolkitRepository(database),
	}
}
