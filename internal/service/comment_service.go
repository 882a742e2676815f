package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sefazor/classgather-backend/internal/models"
	"github.com/sefazor/classgather-backend/internal/repository"
)

type CommentService struct {
	commentRepo *repository.CommentRepository
	eventRepo   *repository.EventRepository
	now         func() time.Time
}

func NewCommentService(commentRepo *repository.CommentRepository, eventRepo *repository.EventRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		eventRepo:   eventRepo,
		now:         time.Now,
	}
}

func (s *CommentService) AddComment(ctx context.Context, session models.Session, eventID, content string) (*models.Comment, error) {
	if session.IsAnonymous() {
		return nil, ErrLoginRequired
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		ID:        uuid.NewString(),
		EventID:   eventID,
		UserName:  session.UserName,
		Content:   content,
		Timestamp: s.now().UnixMilli(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) GetEventComments(ctx context.Context, eventID string) ([]models.Comment, error) {
	return s.commentRepo.ListByEvent(ctx, eventID)
}
