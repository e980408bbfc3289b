package database

import (
	"context"

	"github.com/rpupo63/developer-portfolio-backend/models"
	"gorm.io/gorm"
)

type SkillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) *SkillRepo {
	return &SkillRepo{db}
}

// FindAll returns every skill ordered by display_order, ties broken by id
func (r *SkillRepo) FindAll(ctx context.Context) ([]models.Skill, error) {
	skills := []models.Skill{}
	err := r.db.WithContext(ctx).Order("display_order ASC, id ASC").Find(&skills).Error
	return skills, err
}

func (r *SkillRepo) Add(ctx context.Context, in models.CreateSkillInput) (*models.Skill, error) {
	skill := &models.Skill{
		Name:             in.Name,
		Category:         in.Category,
		ProficiencyLevel: in.ProficiencyLevel,
		IconURL:          in.IconURL,
	}
	if in.DisplayOrder != nil {
		skill.DisplayOrder = *in.DisplayOrder
	}

	if err := r.db.WithContext(ctx).Create(skill).Error; err != nil {
		return nil, err
	}
	return skill, nil
}

// Update changes only the supplied fields. Fails with a not found error
// when no skill has the given id.
func (r *SkillRepo) Update(ctx context.Context, in models.UpdateSkillInput) (*models.Skill, error) {
	changes := map[string]any{}
	if in.Name.Set {
		changes["name"] = in.Name.Value
	}
	if in.Category.Set {
		changes["category"] = in.Category.Value
	}
	if in.ProficiencyLevel.Set {
		changes["proficiency_level"] = in.ProficiencyLevel.Value
	}
	if in.IconURL.Set {
		changes["icon_url"] = in.IconURL.Ptr()
	}
	if in.DisplayOrder.Set {
		changes["display_order"] = in.DisplayOrder.Value
	}
	return updateByID[models.Skill](ctx, r.db, "skill", in.ID, changes)
}

// Delete removes a skill by id; a missing id is not an error
func (r *SkillRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Skill{}, id).Error
}
