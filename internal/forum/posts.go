package forum

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/openagora/agora/internal/cache"
	"github.com/openagora/agora/internal/models"
	"github.com/openagora/agora/internal/ranking"
	"github.com/openagora/agora/pkg/logging"
	"github.com/openagora/agora/pkg/telemetry"
)

// Post validation bounds, from the product requirements.
const (
	minTitleLen    = 5
	maxTitleLen    = 255
	minContentLen  = 10
	minSearchQuery = 3
)

// PostCreate carries the fields for creating a post.
type PostCreate struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	TopicID int64  `json:"topic_id"`
}

// PostUpdate carries the optional fields for updating a post.
type PostUpdate struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	TopicID *int64  `json:"topic_id"`
}

// FeedParams selects a page of the feed.
type FeedParams struct {
	Sort    string
	TopicID int64 // 0 means all topics
	Limit   int
	Offset  int
}

// FeedPost is the feed/search representation of a post. UserVote is only
// populated for authenticated callers.
type FeedPost struct {
	ID           int64     `json:"id"`
	UserID       *int64    `json:"user_id"`
	TopicID      *int64    `json:"topic_id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	VoteCount    int       `json:"vote_count"`
	ViewCount    int       `json:"view_count"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UserVote     int       `json:"user_vote"`
}

// PostService handles post CRUD, feeds, and search.
type PostService struct {
	db     *gorm.DB
	cache  *cache.Cache
	votes  *VoteService
	logger *zap.Logger
}

// NewPostService creates a new post service
func NewPostService(database *gorm.DB, redisCache *cache.Cache, votes *VoteService) *PostService {
	return &PostService{
		db:     database,
		cache:  redisCache,
		votes:  votes,
		logger: logging.GetLogger().With(zap.String("component", "post-service")),
	}
}

// Create creates a post owned by the actor. The topic must exist and be
// active.
func (s *PostService) Create(ctx context.Context, actorID int64, data PostCreate) (*models.Post, error) {
	if actorID <= 0 {
		return nil, ErrUnauthorized
	}
	if err := validatePostFields(data.Title, data.Content); err != nil {
		return nil, err
	}

	var topic models.Topic
	err := s.db.WithContext(ctx).Where("is_active = ?", true).First(&topic, data.TopicID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: topic %d", ErrValidation, data.TopicID)
		}
		return nil, err
	}

	post := models.Post{
		UserID:  sql.NullInt64{Int64: actorID, Valid: true},
		TopicID: sql.NullInt64{Int64: topic.ID, Valid: true},
		Title:   data.Title,
		Content: data.Content,
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, err
	}

	s.logger.Info("post created", zap.Int64("post_id", post.ID), zap.Int64("user_id", actorID))
	return &post, nil
}

// Get retrieves a post with its author and topic loaded.
func (s *PostService) Get(ctx context.Context, postID int64) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Topic").
		First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if post.IsDeleted {
		return nil, ErrNotFound
	}
	return &post, nil
}

// Update mutates title/body/topic. Owner only.
func (s *PostService) Update(ctx context.Context, actorID, postID int64, data PostUpdate) (*models.Post, error) {
	if actorID <= 0 {
		return nil, ErrUnauthorized
	}

	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.UserID.Valid || post.UserID.Int64 != actorID {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}
	if data.Title != nil {
		if err := validatePostFields(*data.Title, post.Content); err != nil {
			return nil, err
		}
		updates["title"] = *data.Title
	}
	if data.Content != nil {
		if err := validatePostFields(post.Title, *data.Content); err != nil {
			return nil, err
		}
		updates["content"] = *data.Content
	}
	if data.TopicID != nil {
		var topic models.Topic
		err := s.db.WithContext(ctx).Where("is_active = ?", true).First(&topic, *data.TopicID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: topic %d", ErrValidation, *data.TopicID)
			}
			return nil, err
		}
		updates["topic_id"] = topic.ID
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(post).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, postID)
}

// Delete soft-deletes a post and cascades its ledger state: vote and report
// rows go away with the post, and the cached score is zeroed so the score
// invariant holds for the hidden row too. Owner or moderator.
func (s *PostService) Delete(ctx context.Context, actorID int64, actorRole string, postID int64) error {
	if actorID <= 0 {
		return ErrUnauthorized
	}

	post, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	owner := post.UserID.Valid && post.UserID.Int64 == actorID
	if !owner && !models.IsModerator(actorRole) {
		return ErrForbidden
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Post{}).
			Where("id = ?", postID).
			Updates(map[string]interface{}{"is_deleted": true, "vote_count": 0}).Error
		if err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostVote{}).Error; err != nil {
			return err
		}
		return tx.Where("reportable_type = ? AND reportable_id = ?", models.ReportablePost, postID).
			Delete(&models.Report{}).Error
	})
}

// Feed returns a page of posts ordered per the requested mode. Results for
// anonymous callers are cached with per-sort TTLs; the per-user vote overlay
// is applied by the caller via AttachUserVotes so cached pages stay shared.
func (s *PostService) Feed(ctx context.Context, params FeedParams) ([]FeedPost, error) {
	ctx, span := telemetry.StartSpan(ctx, "posts.feed")
	defer span.End()

	if !ranking.ValidMode(params.Sort) {
		return nil, fmt.Errorf("%w: sort %q", ErrValidation, params.Sort)
	}

	cacheKey := cache.HashKey("feed", params.Sort,
		fmt.Sprintf("%d", params.TopicID),
		fmt.Sprintf("%d", params.Limit),
		fmt.Sprintf("%d", params.Offset))

	if s.cache != nil {
		var cached []FeedPost
		if err := s.cache.GetJSON(cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	query := s.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("is_deleted = ?", false)

	if params.TopicID != 0 {
		query = query.Where("topic_id = ?", params.TopicID)
	}

	switch ranking.Mode(params.Sort) {
	case ranking.ModeHot:
		// SQL twin of ranking.HotScore: score / (ageHours + 2)^1.5 with the
		// age clamped at zero.
		query = query.Order("vote_count / POWER(GREATEST(EXTRACT(EPOCH FROM (NOW() - created_at)) / 3600.0, 0) + 2, 1.5) DESC")
	case ranking.ModeNew:
		query = query.Order("created_at DESC")
	case ranking.ModeTop:
		query = query.Order("vote_count DESC")
	}
	query = query.Order("created_at DESC").Order("id DESC")

	var posts []models.Post
	if err := query.Offset(params.Offset).Limit(params.Limit).Find(&posts).Error; err != nil {
		return nil, err
	}

	feed := toFeedPosts(posts)

	if s.cache != nil {
		if err := s.cache.SetJSON(cacheKey, feed, feedCacheTTL(params.Sort)); err != nil &&
			!errors.Is(err, cache.ErrCacheDisabled) {
			s.logger.Warn("feed cache write failed", zap.Error(err))
		}
	}

	return feed, nil
}

// Search finds posts by title and content with ILIKE matching. Title
// matches rank before content matches, then score, then recency.
func (s *PostService) Search(ctx context.Context, query string, limit, offset int) ([]FeedPost, error) {
	ctx, span := telemetry.StartSpan(ctx, "posts.search")
	defer span.End()

	if len(query) < minSearchQuery {
		return nil, fmt.Errorf("%w: search query must be at least %d characters", ErrValidation, minSearchQuery)
	}

	pattern := "%" + query + "%"
	var posts []models.Post
	err := s.db.WithContext(ctx).
		Model(&models.Post{}).
		Select("*, (title ILIKE ?) AS title_match", pattern).
		Where("is_deleted = ?", false).
		Where("title ILIKE ? OR content ILIKE ?", pattern, pattern).
		Order("title_match DESC").
		Order("vote_count DESC").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return toFeedPosts(posts), nil
}

// AttachUserVotes overlays the actor's live votes onto a feed page.
func (s *PostService) AttachUserVotes(ctx context.Context, actorID int64, feed []FeedPost) error {
	if actorID <= 0 || len(feed) == 0 {
		return nil
	}

	ids := make([]int64, len(feed))
	for i, p := range feed {
		ids[i] = p.ID
	}
	votes, err := s.votes.VotesForPosts(ctx, actorID, ids)
	if err != nil {
		return err
	}
	for i := range feed {
		feed[i].UserVote = votes[feed[i].ID]
	}
	return nil
}

// IncrementViewCount bumps a post's view counter. Relative increment; safe
// under concurrency without locking.
func (s *PostService) IncrementViewCount(ctx context.Context, postID int64) error {
	return s.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func validatePostFields(title, content string) error {
	if len(title) < minTitleLen || len(title) > maxTitleLen {
		return fmt.Errorf("%w: title must be %d-%d characters", ErrValidation, minTitleLen, maxTitleLen)
	}
	if len(content) < minContentLen {
		return fmt.Errorf("%w: content must be at least %d characters", ErrValidation, minContentLen)
	}
	return nil
}

func toFeedPosts(posts []models.Post) []FeedPost {
	feed := make([]FeedPost, len(posts))
	for i, p := range posts {
		fp := FeedPost{
			ID:           p.ID,
			Title:        p.Title,
			Content:      p.Content,
			VoteCount:    p.VoteCount,
			ViewCount:    p.ViewCount,
			CommentCount: p.CommentCount,
			CreatedAt:    p.CreatedAt,
		}
		if p.UserID.Valid {
			id := p.UserID.Int64
			fp.UserID = &id
		}
		if p.TopicID.Valid {
			id := p.TopicID.Int64
			fp.TopicID = &id
		}
		feed[i] = fp
	}
	return feed
}

// feedCacheTTL returns the cache TTL per sort: the new feed churns fastest,
// hot and top tolerate staleness.
func feedCacheTTL(sort string) time.Duration {
	switch ranking.Mode(sort) {
	case ranking.ModeNew:
		return 3 * time.Second
	case ranking.ModeHot:
		return 300 * time.Second
	default:
		return 60 * time.Second
	}
}
