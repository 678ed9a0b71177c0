package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/wearly/supportbot/internal/models"
	"github.com/wearly/supportbot/internal/utils"
	"gorm.io/gorm"
)

type ConversationRepo interface {
	Create(ctx context.Context, conv *models.Conversation) error
	GetByID(ctx context.Context, conversationID string) (*models.Conversation, error)
	ListActiveByUser(ctx context.Context, userID string, limit int) ([]models.Conversation, error)
	Touch(ctx context.Context, conversationID string, at time.Time) error
	Close(ctx context.Context, conversationID string) error
	Delete(ctx context.Context, conversationID string) error
}

type conversationRepo struct {
	db *gorm.DB
}

func NewConversationRepo(db *gorm.DB) ConversationRepo {
	return &conversationRepo{db: db}
}

func (r *conversationRepo) Create(ctx context.Context, conv *models.Conversation) error {
	return r.db.WithContext(ctx).Create(conv).Error
}

func (r *conversationRepo) GetByID(ctx context.Context, conversationID string) (*models.Conversation, error) {
	var row models.Conversation
	err := r.db.WithContext(ctx).Where("conversation_id = ?", conversationID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *conversationRepo) ListActiveByUser(ctx context.Context, userID string, limit int) ([]models.Conversation, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []models.Conversation
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("updated_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *conversationRepo) Touch(ctx context.Context, conversationID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("conversation_id = ?", conversationID).
		Update("updated_at", at).Error
}

func (r *conversationRepo) Close(ctx context.Context, conversationID string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("conversation_id = ?", conversationID).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// Delete removes the conversation and, via the FK cascade, all its messages.
func (r *conversationRepo) Delete(ctx context.Context, conversationID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// explicit message delete keeps the cascade working on databases
		// migrated without FK enforcement (sqlite in tests)
		if err := tx.Where("conversation_id = ?", conversationID).
			Delete(&models.Message{}).Error; err != nil {
			return err
		}
		res := tx.Where("conversation_id = ?", conversationID).
			Delete(&models.Conversation{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrNotFound
		}
		return nil
	})
}
