package repository

import (
	"context"
	"sort"

	"github.com/sefazor/classgather-backend/internal/models"
	"github.com/sefazor/classgather-backend/pkg/kvstore"
)

type CommentRepository struct {
	kv kv
}

func NewCommentRepository(store kvstore.Store) *CommentRepository {
	return &CommentRepository{kv: kv{store: store}}
}

func commentKey(id string) string {
	return key(keyComments, id)
}

func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.kv.insert(ctx, commentKey(comment.ID), comment, key(keyComments, byEvent, comment.EventID), comment.ID, true)
}

// ListByEvent her zaman timestamp'e göre azalan sırada döner
func (r *CommentRepository) ListByEvent(ctx context.Context, eventID string) ([]models.Comment, error) {
	index, err := r.kv.loadIndex(ctx, key(keyComments, byEvent, eventID))
	if err != nil {
		return nil, err
	}
	comments, err := loadMembers[models.Comment](ctx, r.kv, index, commentKey)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].Timestamp > comments[j].Timestamp
	})
	return comments, nil
}
