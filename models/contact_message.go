package models

import "time"

// ContactMessage is a message left through the contact form
type ContactMessage struct {
	ID        int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email     string    `json:"email" db:"email" gorm:"type:text;not null"`
	Subject   *string   `json:"subject" db:"subject" gorm:"type:text"`
	Message   string    `json:"message" db:"message" gorm:"type:text;not null"`
	IsRead    bool      `json:"is_read" db:"is_read" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"not null;autoCreateTime;index:idx_contact_messages_created_at"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
