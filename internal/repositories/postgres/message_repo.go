package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/wearly/supportbot/internal/models"
	"gorm.io/gorm"
)

type MessageRepo interface {
	// AppendPair stores the user and assistant turns of one exchange in a
	// single transaction and bumps the conversation's updated_at. Either both
	// rows land or neither does.
	AppendPair(ctx context.Context, conversationID string, userMsg, assistantMsg *models.Message) error
	ListChronological(ctx context.Context, conversationID string, limit int) ([]models.Message, error)
	Count(ctx context.Context, conversationID string) (int64, error)
	Last(ctx context.Context, conversationID string) (*models.Message, error)
}

type messageRepo struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) MessageRepo {
	return &messageRepo{db: db}
}

func (r *messageRepo) AppendPair(ctx context.Context, conversationID string, userMsg, assistantMsg *models.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(userMsg).Error; err != nil {
			return err
		}
		if err := tx.Create(assistantMsg).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("conversation_id = ?", conversationID).
			Update("updated_at", time.Now().UTC()).Error
	})
}

// ListChronological returns the most recent messages in chronological order:
// fetched newest-first under the limit, then reversed.
func (r *messageRepo) ListChronological(ctx context.Context, conversationID string, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}

func (r *messageRepo) Count(ctx context.Context, conversationID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("conversation_id = ?", conversationID).
		Count(&n).Error
	return n, err
}

func (r *messageRepo) Last(ctx context.Context, conversationID string) (*models.Message, error) {
	var row models.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Order("id DESC").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
