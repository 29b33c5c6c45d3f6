package forum

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/openagora/agora/internal/models"
	"github.com/openagora/agora/pkg/logging"
	"github.com/openagora/agora/pkg/telemetry"
)

// VoteResult is what a vote submission returns: the target's new cumulative
// score and the actor's effective vote after the call.
type VoteResult struct {
	Score    int `json:"score"`
	UserVote int `json:"user_vote"`
}

// voteAction is the ledger mutation a submission resolves to.
type voteAction int

const (
	actionNone voteAction = iota
	actionInsert
	actionUpdate
	actionDelete
)

// voteTransition describes the ledger change and score delta for one
// submission, derived purely from the prior and requested values.
type voteTransition struct {
	action   voteAction
	delta    int
	userVote int
}

// resolveTransition implements the vote transition table:
//
//	prior 0,  requested ±1  → insert row, score += requested
//	prior 0,  requested 0   → no-op
//	prior v,  requested v   → delete row (toggle off), score -= v
//	prior v,  requested 0   → delete row, score -= v
//	prior v,  requested -v  → update row in place, score -= 2v
//
// Anything outside {-1, 0, 1} is rejected. Replaying the same request is
// idempotent only in the sense that it yields a well-defined state; the
// toggle rule means a repeated ±1 undoes itself by design.
func resolveTransition(prior, requested int) (voteTransition, error) {
	if requested != models.VoteUp && requested != models.VoteDown && requested != models.VoteNone {
		return voteTransition{}, ErrInvalidVoteValue
	}

	switch {
	case prior == models.VoteNone && requested == models.VoteNone:
		return voteTransition{action: actionNone}, nil
	case prior == models.VoteNone:
		return voteTransition{action: actionInsert, delta: requested, userVote: requested}, nil
	case requested == models.VoteNone, requested == prior:
		return voteTransition{action: actionDelete, delta: -prior}, nil
	default: // direction flip
		return voteTransition{action: actionUpdate, delta: -2 * prior, userVote: requested}, nil
	}
}

// VoteService is the vote ledger and score maintainer. Every submission for
// a given target runs under a SELECT ... FOR UPDATE row lock on that target,
// so the ledger write and the denormalized score update form one atomic
// unit per post (or comment) while different targets proceed concurrently.
type VoteService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewVoteService creates a new vote service
func NewVoteService(database *gorm.DB) *VoteService {
	return &VoteService{
		db:     database,
		logger: logging.GetLogger().With(zap.String("component", "vote-service")),
	}
}

// SubmitVote records an actor's vote intent for a post and reconciles the
// post's vote_count with the ledger change in a single transaction.
func (s *VoteService) SubmitVote(ctx context.Context, actorID, postID int64, value int) (*VoteResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "votes.submit_post_vote")
	defer span.End()

	if actorID <= 0 {
		return nil, ErrUnauthorized
	}
	if _, err := resolveTransition(models.VoteNone, value); err != nil {
		return nil, err
	}

	var result VoteResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&post, postID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if post.IsDeleted {
			return ErrNotFound
		}

		prior := models.VoteNone
		var existing models.PostVote
		err = tx.Where("user_id = ? AND post_id = ?", actorID, postID).First(&existing).Error
		switch {
		case err == nil:
			prior = existing.Value
		case errors.Is(err, gorm.ErrRecordNotFound):
			// no live vote
		default:
			return err
		}

		tr, err := resolveTransition(prior, value)
		if err != nil {
			return err
		}

		switch tr.action {
		case actionInsert:
			vote := models.PostVote{UserID: actorID, PostID: postID, Value: value}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
		case actionUpdate:
			err := tx.Model(&models.PostVote{}).
				Where("user_id = ? AND post_id = ?", actorID, postID).
				Update("value", value).Error
			if err != nil {
				return err
			}
		case actionDelete:
			err := tx.Where("user_id = ? AND post_id = ?", actorID, postID).
				Delete(&models.PostVote{}).Error
			if err != nil {
				return err
			}
		}

		if tr.delta != 0 {
			// Relative increment, never read-then-write-back. Safe under
			// the row lock taken above.
			err := tx.Model(&models.Post{}).
				Where("id = ?", postID).
				UpdateColumn("vote_count", gorm.Expr("vote_count + ?", tr.delta)).Error
			if err != nil {
				return err
			}
		}

		result = VoteResult{Score: post.VoteCount + tr.delta, UserVote: tr.userVote}
		return nil
	})
	if err != nil {
		return nil, translateVoteErr(err)
	}

	s.logger.Debug("vote recorded",
		zap.Int64("actor_id", actorID),
		zap.Int64("post_id", postID),
		zap.Int("value", value),
		zap.Int("score", result.Score))

	return &result, nil
}

// SubmitCommentVote is SubmitVote for comments.
func (s *VoteService) SubmitCommentVote(ctx context.Context, actorID, commentID int64, value int) (*VoteResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "votes.submit_comment_vote")
	defer span.End()

	if actorID <= 0 {
		return nil, ErrUnauthorized
	}
	if _, err := resolveTransition(models.VoteNone, value); err != nil {
		return nil, err
	}

	var result VoteResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&comment, commentID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if comment.IsDeleted {
			return ErrNotFound
		}

		prior := models.VoteNone
		var existing models.CommentVote
		err = tx.Where("user_id = ? AND comment_id = ?", actorID, commentID).First(&existing).Error
		switch {
		case err == nil:
			prior = existing.Value
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return err
		}

		tr, err := resolveTransition(prior, value)
		if err != nil {
			return err
		}

		switch tr.action {
		case actionInsert:
			vote := models.CommentVote{UserID: actorID, CommentID: commentID, Value: value}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
		case actionUpdate:
			err := tx.Model(&models.CommentVote{}).
				Where("user_id = ? AND comment_id = ?", actorID, commentID).
				Update("value", value).Error
			if err != nil {
				return err
			}
		case actionDelete:
			err := tx.Where("user_id = ? AND comment_id = ?", actorID, commentID).
				Delete(&models.CommentVote{}).Error
			if err != nil {
				return err
			}
		}

		if tr.delta != 0 {
			err := tx.Model(&models.Comment{}).
				Where("id = ?", commentID).
				UpdateColumn("vote_count", gorm.Expr("vote_count + ?", tr.delta)).Error
			if err != nil {
				return err
			}
		}

		result = VoteResult{Score: comment.VoteCount + tr.delta, UserVote: tr.userVote}
		return nil
	})
	if err != nil {
		return nil, translateVoteErr(err)
	}

	return &result, nil
}

// VotesForPosts returns the actor's live votes for a set of posts, keyed by
// post ID. Posts the actor has not voted on are absent from the map.
func (s *VoteService) VotesForPosts(ctx context.Context, actorID int64, postIDs []int64) (map[int64]int, error) {
	votes := make(map[int64]int, len(postIDs))
	if actorID <= 0 || len(postIDs) == 0 {
		return votes, nil
	}

	var rows []models.PostVote
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id IN ?", actorID, postIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, v := range rows {
		votes[v.PostID] = v.Value
	}
	return votes, nil
}

// VotesForComments returns the actor's live votes for a set of comments.
func (s *VoteService) VotesForComments(ctx context.Context, actorID int64, commentIDs []int64) (map[int64]int, error) {
	votes := make(map[int64]int, len(commentIDs))
	if actorID <= 0 || len(commentIDs) == 0 {
		return votes, nil
	}

	var rows []models.CommentVote
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND comment_id IN ?", actorID, commentIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, v := range rows {
		votes[v.CommentID] = v.Value
	}
	return votes, nil
}

// translateVoteErr maps retryable Postgres failures to ErrConflict so
// callers know the submission can be replayed as a whole. Serialization
// failures, deadlocks, and unique violations (two first-votes racing on the
// same pair) all qualify; the transaction has already rolled back, so state
// is untouched either way.
func translateVoteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "23505":
			return ErrConflict
		}
	}
	return err
}
