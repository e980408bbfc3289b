package models

import "time"

// DefaultContactEmail is stored when contact info is created without an email.
const DefaultContactEmail = "developer@example.com"

// ContactInfo holds the public contact card. At most one row exists.
type ContactInfo struct {
	ID           int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	SingletonKey int       `json:"-" db:"singleton_key" gorm:"column:singleton_key;not null;default:1;uniqueIndex:idx_contact_info_singleton"`
	Email        string    `json:"email" db:"email" gorm:"type:text;not null"`
	Phone        *string   `json:"phone" db:"phone" gorm:"type:text"`
	Location     *string   `json:"location" db:"location" gorm:"type:text"`
	LinkedinURL  *string   `json:"linkedin_url" db:"linkedin_url" gorm:"type:text"`
	GithubURL    *string   `json:"github_url" db:"github_url" gorm:"type:text"`
	TwitterURL   *string   `json:"twitter_url" db:"twitter_url" gorm:"type:text"`
	WebsiteURL   *string   `json:"website_url" db:"website_url" gorm:"type:text"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at" gorm:"not null;autoUpdateTime"`
}

func (ContactInfo) TableName() string {
	return "contact_info"
}
