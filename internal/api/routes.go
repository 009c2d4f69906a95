package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/accept-invite", handler.AcceptInvite)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	// Client-token endpoints, no coach session.
	api.Post("/checkin/submit", handler.SubmitCheckin)
	api.Get("/toolkit", handler.GetToolkit)
	api.Put("/toolkit", handler.SaveToolkit)

	clients := api.Group("/clients", handler.AuthRequired)
	clients.Get("", handler.ListClients)
	clients.Post("", handler.CreateClient)
	clients.Get("/:id", handler.GetClient)
	clients.Patch("/:id", handler.UpdateClient)
	clients.Post("/:id/archive", handler.ArchiveClient)
	clients.Post("/:id/unarchive", handler.UnarchiveClient)
	clients.Post("/:id/regenerate-token", handler.RegenerateClientToken)
	clients.Get("/:id/export/csv", handler.ExportClientCSV)
	clients.Get("/:id/export/json", handler.ExportClientJSON)

	tasks := api.Group("/tasks", handler.AuthRequired)
	tasks.Get("", handler.ListTasks)
	tasks.Get("/urgent", handler.UrgentTasks)
	tasks.Post("", handler.CreateTask)
	tasks.Post("/bulk/resolve", handler.BulkResolveTasks)
	tasks.Post("/bulk/due", handler.BulkSetTasksDue)
	tasks.Patch("/:id", handler.UpdateTask)
	tasks.Post("/:id/resolve", handler.ResolveTask)
	tasks.Post("/:id/follow-up", handler.FollowUpTask)
	tasks.Post("/:id/mark-reviewed", handler.MarkTaskReviewed)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Get("", handler.GetSettings)
	settings.Put("", handler.UpdateSettings)

	api.Get("/dashboard", handler.AuthRequired, handler.Dashboard)

	team := api.Group("/team", handler.AuthRequired, handler.AdminOnly)
	team.Get("/coaches", handler.ListTeamCoaches)
	team.Post("/invites", handler.CreateTeamInvite)
}
