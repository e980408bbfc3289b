package api

import (
	"context"

	"github.com/rpupo63/developer-portfolio-backend/database"
	"github.com/rpupo63/developer-portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
	}
}

// getProjects retrieves all projects ordered by display_order
// @Summary Get all projects
// @Tags Projects
// @Produce json
// @Success 200 {array} models.Project
// @Failure 500 {object} ErrorResponse
// @Router /projects [get]
func (h projectHandler) getProjects() operation {
	return func(ctx context.Context, _ []byte, _ *int64) (any, error) {
		projects, err := h.projectRepo.FindAll(ctx)
		if err != nil {
			return nil, wrapDatabaseError("find", "projects", err)
		}
		return projects, nil
	}
}

// getFeaturedProjects retrieves the projects flagged is_featured
// @Summary Get featured projects
// @Tags Projects
// @Produce json
// @Success 200 {array} models.Project
// @Failure 500 {object} ErrorResponse
// @Router /projects/featured [get]
func (h projectHandler) getFeaturedProjects() operation {
	return func(ctx context.Context, _ []byte, _ *int64) (any, error) {
		projects, err := h.projectRepo.FindFeatured(ctx)
		if err != nil {
			return nil, wrapDatabaseError("find", "featured projects", err)
		}
		return projects, nil
	}
}

// createProject creates a new project
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body models.CreateProjectInput true "Project data"
// @Success 201 {object} models.Project
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /project [post]
func (h projectHandler) createProject() operation {
	return func(ctx context.Context, payload []byte, _ *int64) (any, error) {
		in, err := decodeInput[models.CreateProjectInput](payload, nil, nil)
		if err != nil {
			return nil, err
		}

		project, err := h.projectRepo.Add(ctx, in)
		if err != nil {
			return nil, wrapDatabaseError("create", "project", err)
		}
		h.logger.Info().Int64("projectID", project.ID).Msg("Project created")
		return project, nil
	}
}

// updateProject changes the supplied fields of an existing project
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path int true "Project ID"
// @Param project body models.UpdateProjectInput true "Fields to change"
// @Success 200 {object} models.Project
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse
// @Router /project/{projectID} [put]
func (h projectHandler) updateProject() operation {
	return func(ctx context.Context, payload []byte, pathID *int64) (any, error) {
		in, err := decodeInput(payload, pathID, func(in *models.UpdateProjectInput, id int64) { in.ID = id })
		if err != nil {
			return nil, err
		}

		project, err := h.projectRepo.Update(ctx, in)
		if err != nil {
			return nil, wrapDatabaseError("update", "project", err)
		}
		return project, nil
	}
}

// deleteProject deletes a project; a missing id is not an error
// @Summary Delete project
// @Tags Projects
// @Param projectID path int true "Project ID"
// @Success 200 {object} successResponse
// @Failure 500 {object} ErrorResponse
// @Router /project/{projectID} [delete]
func (h projectHandler) deleteProject() operation {
	return func(ctx context.Context, payload []byte, pathID *int64) (any, error) {
		in, err := decodeInput(payload, pathID, setIDInput)
		if err != nil {
			return nil, err
		}

		if err := h.projectRepo.Delete(ctx, in.ID); err != nil {
			return nil, wrapDatabaseError("delete", "project", err)
		}
		return successResponse{Success: true}, nil
	}
}
