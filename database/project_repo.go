package database

import (
	"context"
	"time"

	"github.com/rpupo63/developer-portfolio-backend/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns all projects ordered by display_order
func (r *ProjectRepo) FindAll(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	err := r.db.WithContext(ctx).Order("display_order ASC, id ASC").Find(&projects).Error
	return projects, err
}

// FindFeatured returns the featured subset in the same order as FindAll
func (r *ProjectRepo) FindFeatured(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	err := r.db.WithContext(ctx).
		Where("is_featured = ?", true).
		Order("display_order ASC, id ASC").
		Find(&projects).Error
	return projects, err
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(ctx context.Context, in models.CreateProjectInput) (*models.Project, error) {
	project := &models.Project{
		Title:            in.Title,
		Description:      in.Description,
		ShortDescription: in.ShortDescription,
		LiveDemoURL:      in.LiveDemoURL,
		GithubURL:        in.GithubURL,
		ImageURL:         in.ImageURL,
	}
	if in.TechnologiesUsed != nil {
		project.TechnologiesUsed = *in.TechnologiesUsed
	}
	if in.DisplayOrder != nil {
		project.DisplayOrder = *in.DisplayOrder
	}
	if in.IsFeatured != nil {
		project.IsFeatured = *in.IsFeatured
	}

	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// Update changes only the supplied fields and refreshes updated_at
func (r *ProjectRepo) Update(ctx context.Context, in models.UpdateProjectInput) (*models.Project, error) {
	changes := map[string]any{"updated_at": time.Now()}
	if in.Title.Set {
		changes["title"] = in.Title.Value
	}
	if in.Description.Set {
		changes["description"] = in.Description.Value
	}
	if in.ShortDescription.Set {
		changes["short_description"] = in.ShortDescription.Value
	}
	if in.TechnologiesUsed.Set {
		changes["technologies_used"] = in.TechnologiesUsed.Value
	}
	if in.LiveDemoURL.Set {
		changes["live_demo_url"] = in.LiveDemoURL.Ptr()
	}
	if in.GithubURL.Set {
		changes["github_url"] = in.GithubURL.Ptr()
	}
	if in.ImageURL.Set {
		changes["image_url"] = in.ImageURL.Ptr()
	}
	if in.DisplayOrder.Set {
		changes["display_order"] = in.DisplayOrder.Value
	}
	if in.IsFeatured.Set {
		changes["is_featured"] = in.IsFeatured.Value
	}
	return updateByID[models.Project](ctx, r.db, "project", in.ID, changes)
}

// Delete removes a project from the database by id
func (r *ProjectRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Project{}, id).Error
}
