package models

import "time"

// Skill is one entry of the skills list, rated on a 1-5 scale
type Skill struct {
	ID               int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Name             string    `json:"name" db:"name" gorm:"type:text;not null"`
	Category         string    `json:"category" db:"category" gorm:"type:text;not null"`
	ProficiencyLevel int       `json:"proficiency_level" db:"proficiency_level" gorm:"type:integer;not null;check:chk_skills_proficiency,proficiency_level BETWEEN 1 AND 5"`
	IconURL          *string   `json:"icon_url" db:"icon_url" gorm:"type:text"`
	DisplayOrder     int       `json:"display_order" db:"display_order" gorm:"type:integer;not null;default:0;index:idx_skills_display_order"`
	CreatedAt        time.Time `json:"created_at" db:"created_at" gorm:"not null;autoCreateTime"`
}

func (Skill) TableName() string {
	return "skills"
}
