package services

import (
	"context"
	"errors"
	"time"

	"github.com/wearly/supportbot/internal/models"
	pgrepo "github.com/wearly/supportbot/internal/repositories/postgres"
	"github.com/wearly/supportbot/internal/utils"
)

type ConversationService interface {
	Create(ctx context.Context, userID, title string) (*models.Conversation, error)
	Get(ctx context.Context, conversationID string) (*models.Conversation, error)
	History(ctx context.Context, conversationID string, limit int) ([]models.Message, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]models.ConversationSummary, error)
	Summary(ctx context.Context, conversationID string) (*models.ConversationSummary, error)
	Close(ctx context.Context, conversationID string) error
	Delete(ctx context.Context, conversationID string) error
}

type conversationService struct {
	users  pgrepo.UserRepo
	convos pgrepo.ConversationRepo
	msgs   pgrepo.MessageRepo
}

func NewConversationService(users pgrepo.UserRepo, convos pgrepo.ConversationRepo, msgs pgrepo.MessageRepo) ConversationService {
	return &conversationService{users: users, convos: convos, msgs: msgs}
}

func (s *conversationService) Create(ctx context.Context, userID, title string) (*models.Conversation, error) {
	const op = "ConversationService.Create"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	if title == "" {
		title = "Conversation " + time.Now().UTC().Format("2006-01-02 15:04")
	}

	// owner row is created lazily; callers only hand us an opaque user id
	if _, err := s.users.CreateOrGet(ctx, userID, "", ""); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to ensure user", err)
	}

	conv := &models.Conversation{
		ConversationID: models.NewConversationID(),
		UserID:         userID,
		Title:          title,
		IsActive:       true,
	}
	if err := s.convos.Create(ctx, conv); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create conversation", err)
	}
	return conv, nil
}

func (s *conversationService) Get(ctx context.Context, conversationID string) (*models.Conversation, error) {
	const op = "ConversationService.Get"

	if conversationID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "conversation_id is required", nil)
	}
	conv, err := s.convos.GetByID(ctx, conversationID)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeNotFound, op, "conversation not found", err)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load conversation", err)
	}
	return conv, nil
}

func (s *conversationService) History(ctx context.Context, conversationID string, limit int) ([]models.Message, error) {
	const op = "ConversationService.History"

	if _, err := s.Get(ctx, conversationID); err != nil {
		return nil, err
	}
	rows, err := s.msgs.ListChronological(ctx, conversationID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list messages", err)
	}
	return rows, nil
}

func (s *conversationService) ListByUser(ctx context.Context, userID string, limit int) ([]models.ConversationSummary, error) {
	const op = "ConversationService.ListByUser"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	convos, err := s.convos.ListActiveByUser(ctx, userID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list conversations", err)
	}

	out := make([]models.ConversationSummary, 0, len(convos))
	for i := range convos {
		summary, err := s.summarize(ctx, &convos[i])
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to summarize conversation", err)
		}
		out = append(out, *summary)
	}
	return out, nil
}

func (s *conversationService) Summary(ctx context.Context, conversationID string) (*models.ConversationSummary, error) {
	const op = "ConversationService.Summary"

	conv, err := s.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	summary, err := s.summarize(ctx, conv)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to summarize conversation", err)
	}
	return summary, nil
}

func (s *conversationService) summarize(ctx context.Context, conv *models.Conversation) (*models.ConversationSummary, error) {
	count, err := s.msgs.Count(ctx, conv.ConversationID)
	if err != nil {
		return nil, err
	}
	last, err := s.msgs.Last(ctx, conv.ConversationID)
	if err != nil {
		return nil, err
	}

	summary := &models.ConversationSummary{
		ConversationID: conv.ConversationID,
		Title:          conv.Title,
		UserID:         conv.UserID,
		CreatedAt:      conv.CreatedAt,
		UpdatedAt:      conv.UpdatedAt,
		IsActive:       conv.IsActive,
		MessageCount:   int(count),
	}
	if last != nil {
		summary.LastMessage = &last.Content
		summary.LastMessageTime = &last.CreatedAt
	}
	return summary, nil
}

func (s *conversationService) Close(ctx context.Context, conversationID string) error {
	const op = "ConversationService.Close"

	if conversationID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "conversation_id is required", nil)
	}
	err := s.convos.Close(ctx, conversationID)
	if errors.Is(err, utils.ErrNotFound) {
		return utils.E(utils.CodeNotFound, op, "conversation not found", err)
	}
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to close conversation", err)
	}
	return nil
}

func (s *conversationService) Delete(ctx context.Context, conversationID string) error {
	const op = "ConversationService.Delete"

	if conversationID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "conversation_id is required", nil)
	}
	err := s.convos.Delete(ctx, conversationID)
	if errors.Is(err, utils.ErrNotFound) {
		return utils.E(utils.CodeNotFound, op, "conversation not found", err)
	}
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to delete conversation", err)
	}
	return nil
}
