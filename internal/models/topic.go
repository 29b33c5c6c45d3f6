package models

import (
	"database/sql"
	"time"
)

// Topic is a static reference entity for categorizing posts. Deleting a
// topic detaches its posts (topic_id set to null) rather than deleting them.
type Topic struct {
	ID          int64          `gorm:"primaryKey;autoIncrement;column:id"`
	Name        string         `gorm:"type:varchar(100);not null;uniqueIndex:forum_topics_ux1;column:name"`
	Slug        string         `gorm:"type:varchar(100);not null;uniqueIndex:forum_topics_ux2;column:slug"`
	Description sql.NullString `gorm:"type:text;column:description"`
	IsActive    bool           `gorm:"not null;default:true;index;column:is_active"`
	CreatedAt   time.Time      `gorm:"not null;column:created_at"`
	UpdatedAt   time.Time      `gorm:"not null;column:updated_at"`
}

// TableName specifies the table name for Topic
func (Topic) TableName() string {
	return "forum_topics"
}
