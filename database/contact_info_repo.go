package database

import (
	"context"
	"time"

	"github.com/rpupo63/developer-portfolio-backend/models"
	"gorm.io/gorm"
)

type ContactInfoRepo struct {
	db *gorm.DB
}

func NewContactInfoRepo(db *gorm.DB) *ContactInfoRepo {
	return &ContactInfoRepo{db}
}

// Get returns the contact card, or nil when it has never been written.
func (r *ContactInfoRepo) Get(ctx context.Context) (*models.ContactInfo, error) {
	return firstSingleton[models.ContactInfo](ctx, r.db)
}

func (r *ContactInfoRepo) Upsert(ctx context.Context, in models.UpdateContactInfoInput) (*models.ContactInfo, error) {
	return upsertSingleton(ctx, r.db, "contact info",
		func(c *models.ContactInfo) int64 { return c.ID },
		contactInfoChanges(in),
		func() *models.ContactInfo { return newContactInfo(in) },
	)
}

func contactInfoChanges(in models.UpdateContactInfoInput) map[string]any {
	changes := map[string]any{"updated_at": time.Now()}
	if in.Email.Set {
		changes["email"] = in.Email.Value
	}
	nullable := map[string]models.Nullable[string]{
		"phone":        in.Phone,
		"location":     in.Location,
		"linkedin_url": in.LinkedinURL,
		"github_url":   in.GithubURL,
		"twitter_url":  in.TwitterURL,
		"website_url":  in.WebsiteURL,
	}
	for column, field := range nullable {
		if field.Set {
			changes[column] = field.Ptr()
		}
	}
	return changes
}

func newContactInfo(in models.UpdateContactInfoInput) *models.ContactInfo {
	c := &models.ContactInfo{
		SingletonKey: 1,
		Email:        models.DefaultContactEmail,
		Phone:        in.Phone.Ptr(),
		Location:     in.Location.Ptr(),
		LinkedinURL:  in.LinkedinURL.Ptr(),
		GithubURL:    in.GithubURL.Ptr(),
		TwitterURL:   in.TwitterURL.Ptr(),
		WebsiteURL:   in.WebsiteURL.Ptr(),
	}
	if in.Email.Set {
		c.Email = in.Email.Value
	}
	return c
}
