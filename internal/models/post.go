package models

import (
	"database/sql"
	"time"
)

// Post represents a forum post.
//
// VoteCount is a denormalized cache of the sum of live vote rows for this
// post; it is only ever changed inside the same transaction as the vote
// ledger write that justifies the change. UserID and TopicID are nullable:
// deleting an author or a topic detaches the post instead of deleting it.
type Post struct {
	ID           int64         `gorm:"primaryKey;autoIncrement;column:id"`
	UserID       sql.NullInt64 `gorm:"index;column:user_id"`
	TopicID      sql.NullInt64 `gorm:"index;column:topic_id"`
	Title        string        `gorm:"type:varchar(255);not null;column:title"`
	Content      string        `gorm:"type:text;not null;column:content"`
	VoteCount    int           `gorm:"not null;default:0;index:forum_posts_ix_vote_count;column:vote_count"`
	ViewCount    int           `gorm:"not null;default:0;column:view_count"`
	CommentCount int           `gorm:"not null;default:0;column:comment_count"`
	IsDeleted    bool          `gorm:"not null;default:false;index;column:is_deleted"`
	CreatedAt    time.Time     `gorm:"not null;index:forum_posts_ix_created_at;column:created_at"`
	UpdatedAt    time.Time     `gorm:"not null;column:updated_at"`

	// Relationships
	Author *User  `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:SET NULL"`
	Topic  *Topic `gorm:"foreignKey:TopicID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "forum_posts"
}
