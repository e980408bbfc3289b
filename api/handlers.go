package api

import (
	"time"

	"github.com/rpupo63/developer-portfolio-backend/database"
	"github.com/rpupo63/developer-portfolio-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, notifier services.Notifier, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		healthHandler:  newHealthHandler(database, startupTime),
		profileHandler: newProfileHandler(database.ProfileRepo()),
		skillHandler:   newSkillHandler(database.SkillRepo()),
		projectHandler: newProjectHandler(database.ProjectRepo()),
		contactHandler: newContactHandler(database.ContactMessageRepo(), database.ContactInfoRepo(), notifier),
	}
}
