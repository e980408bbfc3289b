package database

import (
	"context"

	"github.com/rpupo63/developer-portfolio-backend/errs"
	"github.com/rpupo63/developer-portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContactMessageRepo struct {
	db *gorm.DB
}

func NewContactMessageRepo(db *gorm.DB) *ContactMessageRepo {
	return &ContactMessageRepo{db}
}

// FindAll returns messages newest first
func (r *ContactMessageRepo) FindAll(ctx context.Context) ([]models.ContactMessage, error) {
	messages := []models.ContactMessage{}
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&messages).Error
	return messages, err
}

// Add stores a new message. Messages always start unread.
func (r *ContactMessageRepo) Add(ctx context.Context, in models.CreateContactMessageInput) (*models.ContactMessage, error) {
	message := &models.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
		IsRead:  false,
	}
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

func (r *ContactMessageRepo) MarkRead(ctx context.Context, id int64) (*models.ContactMessage, error) {
	var message models.ContactMessage
	result := r.db.WithContext(ctx).
		Model(&message).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewNotFound("contact message", id)
	}
	return &message, nil
}
