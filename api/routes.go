package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupRoutes registers the REST routes and the RPC endpoint. Both call the
// same operations.
func setupRoutes(r chi.Router, handlers *routeHandlers, requestLogger func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(requestLogger)

		r.Get("/healthcheck", handlers.healthHandler.healthcheck())

		// Profile Handler endpoints
		profile := handlers.profileHandler
		r.Get("/profile", serve(profile.responder, profile.getProfile(), http.StatusOK, ""))
		r.Put("/profile", serve(profile.responder, profile.updateProfile(), http.StatusOK, ""))

		// Skill Handler endpoints
		skill := handlers.skillHandler
		r.Get("/skills", serve(skill.responder, skill.getSkills(), http.StatusOK, ""))
		r.Post("/skill", serve(skill.responder, skill.createSkill(), http.StatusCreated, ""))
		r.Put("/skill/{skillID}", serve(skill.responder, skill.updateSkill(), http.StatusOK, "skillID"))
		r.Delete("/skill/{skillID}", serve(skill.responder, skill.deleteSkill(), http.StatusOK, "skillID"))

		// Project Handler endpoints
		project := handlers.projectHandler
		r.Get("/projects", serve(project.responder, project.getProjects(), http.StatusOK, ""))
		r.Get("/projects/featured", serve(project.responder, project.getFeaturedProjects(), http.StatusOK, ""))
		r.Post("/project", serve(project.responder, project.createProject(), http.StatusCreated, ""))
		r.Put("/project/{projectID}", serve(project.responder, project.updateProject(), http.StatusOK, "projectID"))
		r.Delete("/project/{projectID}", serve(project.responder, project.deleteProject(), http.StatusOK, "projectID"))

		// Contact Handler endpoints
		contact := handlers.contactHandler
		r.Get("/contact-messages", serve(contact.responder, contact.getContactMessages(), http.StatusOK, ""))
		r.Post("/contact-message", serve(contact.responder, contact.createContactMessage(), http.StatusCreated, ""))
		r.Put("/contact-message/{messageID}/read", serve(contact.responder, contact.markMessageRead(), http.StatusOK, "messageID"))
		r.Get("/contact-info", serve(contact.responder, contact.getContactInfo(), http.StatusOK, ""))
		r.Put("/contact-info", serve(contact.responder, contact.updateContactInfo(), http.StatusOK, ""))

		// RPC endpoint
		rpc := rpcHandler(handlers.procedures())
		r.Get("/rpc/{procedure}", rpc)
		r.Post("/rpc/{procedure}", rpc)
	})
}
