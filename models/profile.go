package models

import "time"

// Defaults applied when the profile is created by its first update.
const (
	DefaultProfileName  = "Developer"
	DefaultProfileTitle = "Software Developer"
	DefaultProfileBio   = "Passionate developer building amazing things."
)

// DeveloperProfile is the single profile shown on the portfolio landing page
type DeveloperProfile struct {
	ID              int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	SingletonKey    int       `json:"-" db:"singleton_key" gorm:"column:singleton_key;not null;default:1;uniqueIndex:idx_developer_profile_singleton"`
	Name            string    `json:"name" db:"name" gorm:"type:text;not null"`
	Title           string    `json:"title" db:"title" gorm:"type:text;not null"`
	Bio             string    `json:"bio" db:"bio" gorm:"type:text;not null"`
	ExperienceYears int       `json:"experience_years" db:"experience_years" gorm:"type:integer;not null"`
	Aspirations     *string   `json:"aspirations" db:"aspirations" gorm:"type:text"`
	ProfileImageURL *string   `json:"profile_image_url" db:"profile_image_url" gorm:"type:text"`
	CreatedAt       time.Time `json:"created_at" db:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at" gorm:"not null;autoUpdateTime"`
}

func (DeveloperProfile) TableName() string {
	return "developer_profile"
}
