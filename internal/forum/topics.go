package forum

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/openagora/agora/internal/models"
	"github.com/openagora/agora/pkg/logging"
)

// TopicCreate carries the fields for creating a topic.
type TopicCreate struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// TopicWithCount is a topic plus its live post count.
type TopicWithCount struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	PostCount   int64     `json:"post_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// TopicService handles topic listing and management.
type TopicService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewTopicService creates a new topic service
func NewTopicService(database *gorm.DB) *TopicService {
	return &TopicService{
		db:     database,
		logger: logging.GetLogger().With(zap.String("component", "topic-service")),
	}
}

// List returns topics ordered by name, each with its count of live posts.
func (s *TopicService) List(ctx context.Context, onlyActive bool) ([]TopicWithCount, error) {
	query := s.db.WithContext(ctx).
		Model(&models.Topic{}).
		Select(`forum_topics.id, forum_topics.name, forum_topics.slug,
			COALESCE(forum_topics.description, '') AS description,
			forum_topics.is_active, forum_topics.created_at,
			COUNT(forum_posts.id) AS post_count`).
		Joins("LEFT JOIN forum_posts ON forum_posts.topic_id = forum_topics.id AND forum_posts.is_deleted = false").
		Group("forum_topics.id").
		Order("forum_topics.name")

	if onlyActive {
		query = query.Where("forum_topics.is_active = ?", true)
	}

	var topics []TopicWithCount
	if err := query.Scan(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

// Get retrieves a topic by ID.
func (s *TopicService) Get(ctx context.Context, topicID int64) (*models.Topic, error) {
	var topic models.Topic
	if err := s.db.WithContext(ctx).First(&topic, topicID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &topic, nil
}

// Create creates a topic. Admin only; name and slug must be unique.
func (s *TopicService) Create(ctx context.Context, actorID int64, actorRole string, data TopicCreate) (*models.Topic, error) {
	if actorID <= 0 {
		return nil, ErrUnauthorized
	}
	if actorRole != models.RoleAdmin {
		return nil, ErrForbidden
	}
	if data.Name == "" || data.Slug == "" {
		return nil, fmt.Errorf("%w: topic name and slug are required", ErrValidation)
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&models.Topic{}).
		Where("name = ? OR slug = ?", data.Name, data.Slug).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: topic with the same name or slug exists", ErrConflict)
	}

	topic := models.Topic{
		Name:     data.Name,
		Slug:     data.Slug,
		IsActive: true,
	}
	if data.Description != "" {
		topic.Description = sql.NullString{String: data.Description, Valid: true}
	}
	if err := s.db.WithContext(ctx).Create(&topic).Error; err != nil {
		return nil, err
	}

	s.logger.Info("topic created", zap.Int64("topic_id", topic.ID), zap.String("slug", topic.Slug))
	return &topic, nil
}

// Delete removes a topic and detaches its posts (topic_id set to null by
// the FK), leaving the posts themselves intact. Admin only.
func (s *TopicService) Delete(ctx context.Context, actorID int64, actorRole string, topicID int64) error {
	if actorID <= 0 {
		return ErrUnauthorized
	}
	if actorRole != models.RoleAdmin {
		return ErrForbidden
	}

	result := s.db.WithContext(ctx).Delete(&models.Topic{}, topicID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
