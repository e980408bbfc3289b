package database

import (
	"context"
	"time"

	"github.com/rpupo63/developer-portfolio-backend/models"
	"gorm.io/gorm"
)

type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db}
}

// Get returns the profile, or nil when it has never been written.
func (r *ProfileRepo) Get(ctx context.Context) (*models.DeveloperProfile, error) {
	return firstSingleton[models.DeveloperProfile](ctx, r.db)
}

// Upsert merges the supplied fields into the profile, creating it with
// default name, title and bio when it does not exist yet.
func (r *ProfileRepo) Upsert(ctx context.Context, in models.UpdateProfileInput) (*models.DeveloperProfile, error) {
	return upsertSingleton(ctx, r.db, "profile",
		func(p *models.DeveloperProfile) int64 { return p.ID },
		profileChanges(in),
		func() *models.DeveloperProfile { return newProfile(in) },
	)
}

func profileChanges(in models.UpdateProfileInput) map[string]any {
	changes := map[string]any{"updated_at": time.Now()}
	if in.Name.Set {
		changes["name"] = in.Name.Value
	}
	if in.Title.Set {
		changes["title"] = in.Title.Value
	}
	if in.Bio.Set {
		changes["bio"] = in.Bio.Value
	}
	if in.ExperienceYears.Set {
		changes["experience_years"] = in.ExperienceYears.Value
	}
	if in.Aspirations.Set {
		changes["aspirations"] = in.Aspirations.Ptr()
	}
	if in.ProfileImageURL.Set {
		changes["profile_image_url"] = in.ProfileImageURL.Ptr()
	}
	return changes
}

func newProfile(in models.UpdateProfileInput) *models.DeveloperProfile {
	p := &models.DeveloperProfile{
		SingletonKey:    1,
		Name:            models.DefaultProfileName,
		Title:           models.DefaultProfileTitle,
		Bio:             models.DefaultProfileBio,
		ExperienceYears: 0,
		Aspirations:     in.Aspirations.Ptr(),
		ProfileImageURL: in.ProfileImageURL.Ptr(),
	}
	if in.Name.Set {
		p.Name = in.Name.Value
	}
	if in.Title.Set {
		p.Title = in.Title.Value
	}
	if in.Bio.Set {
		p.Bio = in.Bio.Value
	}
	if in.ExperienceYears.Set {
		p.ExperienceYears = in.ExperienceYears.Value
	}
	return p
}
