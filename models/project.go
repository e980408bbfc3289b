package models

import "time"

// Project represents a showcased project.
// TechnologiesUsed is kept verbatim; clients decide how to encode the list.
type Project struct {
	ID               int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Title            string    `json:"title" db:"title" gorm:"type:text;not null"`
	Description      string    `json:"description" db:"description" gorm:"type:text;not null"`
	ShortDescription string    `json:"short_description" db:"short_description" gorm:"type:text;not null"`
	TechnologiesUsed string    `json:"technologies_used" db:"technologies_used" gorm:"type:text;not null"`
	LiveDemoURL      *string   `json:"live_demo_url" db:"live_demo_url" gorm:"type:text"`
	GithubURL        *string   `json:"github_url" db:"github_url" gorm:"type:text"`
	ImageURL         *string   `json:"image_url" db:"image_url" gorm:"type:text"`
	DisplayOrder     int       `json:"display_order" db:"display_order" gorm:"type:integer;not null;default:0;index:idx_projects_display_order"`
	IsFeatured       bool      `json:"is_featured" db:"is_featured" gorm:"not null;default:false;index:idx_projects_is_featured"`
	CreatedAt        time.Time `json:"created_at" db:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at" gorm:"not null;autoUpdateTime"`
}

func (Project) TableName() string {
	return "projects"
}
