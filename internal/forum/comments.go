package forum

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/openagora/agora/internal/models"
	"github.com/openagora/agora/pkg/logging"
)

const minCommentLen = 1

// CommentService handles comments on posts. The post's comment_count is a
// denormalized counter maintained in the same transaction as the comment
// row, mirroring how the vote ledger maintains vote_count.
type CommentService struct {
	db     *gorm.DB
	votes  *VoteService
	logger *zap.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(database *gorm.DB, votes *VoteService) *CommentService {
	return &CommentService{
		db:     database,
		votes:  votes,
		logger: logging.GetLogger().With(zap.String("component", "comment-service")),
	}
}

// Create adds a comment to a post and bumps the post's comment counter.
func (s *CommentService) Create(ctx context.Context, actorID, postID int64, content string) (*models.Comment, error) {
	if actorID <= 0 {
		return nil, ErrUnauthorized
	}
	if len(content) < minCommentLen {
		return nil, fmt.Errorf("%w: comment content is required", ErrValidation)
	}

	var comment models.Comment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if post.IsDeleted {
			return ErrNotFound
		}

		comment = models.Comment{
			PostID:  postID,
			UserID:  sql.NullInt64{Int64: actorID, Valid: true},
			Content: content,
		}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}

		return tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	return &comment, nil
}

// ListByPost returns a post's live comments oldest-first, with the actor's
// votes overlaid when authenticated.
func (s *CommentService) ListByPost(ctx context.Context, actorID, postID int64, limit, offset int) ([]models.Comment, map[int64]int, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ? AND is_deleted = ?", postID, false).
		Order("created_at ASC").Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, nil, err
	}

	ids := make([]int64, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}
	votes, err := s.votes.VotesForComments(ctx, actorID, ids)
	if err != nil {
		return nil, nil, err
	}

	return comments, votes, nil
}

// Update mutates a comment's content. Owner only.
func (s *CommentService) Update(ctx context.Context, actorID, commentID int64, content string) (*models.Comment, error) {
	if actorID <= 0 {
		return nil, ErrUnauthorized
	}
	if len(content) < minCommentLen {
		return nil, fmt.Errorf("%w: comment content is required", ErrValidation)
	}

	comment, err := s.get(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !comment.UserID.Valid || comment.UserID.Int64 != actorID {
		return nil, ErrForbidden
	}

	if err := s.db.WithContext(ctx).Model(comment).Update("content", content).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete soft-deletes a comment, drops its votes, and decrements the post's
// comment counter. Owner or moderator.
func (s *CommentService) Delete(ctx context.Context, actorID int64, actorRole string, commentID int64) error {
	if actorID <= 0 {
		return ErrUnauthorized
	}

	comment, err := s.get(ctx, commentID)
	if err != nil {
		return err
	}
	owner := comment.UserID.Valid && comment.UserID.Int64 == actorID
	if !owner && !models.IsModerator(actorRole) {
		return ErrForbidden
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Comment{}).
			Where("id = ?", commentID).
			Updates(map[string]interface{}{"is_deleted": true, "vote_count": 0}).Error
		if err != nil {
			return err
		}
		if err := tx.Where("comment_id = ?", commentID).Delete(&models.CommentVote{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", comment.PostID).
			UpdateColumn("comment_count", gorm.Expr("comment_count - 1")).Error
	})
}

func (s *CommentService) get(ctx context.Context, commentID int64) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if comment.IsDeleted {
		return nil, ErrNotFound
	}
	return &comment, nil
}
