package service

import (
	"context"

	"github.com/yuuuuuuu2333-collab/online-chat/internal/domain"
)

// HistoryService exposes stored chat history to the REST layer.
type HistoryService struct {
	messageRepo IMessageRepository
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(messageRepo IMessageRepository) *HistoryService {
	return &HistoryService{messageRepo: messageRepo}
}

// Recent returns the last messages in chronological order, oldest first.
func (s *HistoryService) Recent(ctx context.Context, limit int64) ([]*domain.StoredMessage, error) {
	messages, err := s.messageRepo.RecentMessages(ctx, limit)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []*domain.StoredMessage{}
	}
	return messages, nil
}

// Clear removes all stored messages.
func (s *HistoryService) Clear(ctx context.Context) error {
	return s.messageRepo.PurgeMessages(ctx)
}
