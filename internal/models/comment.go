package models

import (
	"database/sql"
	"time"
)

// Comment represents a reply on a post. Like posts, comments carry a
// denormalized vote_count maintained by the vote ledger.
type Comment struct {
	ID        int64         `gorm:"primaryKey;autoIncrement;column:id"`
	PostID    int64         `gorm:"not null;index:forum_comments_ix_post;column:post_id"`
	UserID    sql.NullInt64 `gorm:"index;column:user_id"`
	Content   string        `gorm:"type:text;not null;column:content"`
	VoteCount int           `gorm:"not null;default:0;column:vote_count"`
	IsDeleted bool          `gorm:"not null;default:false;column:is_deleted"`
	CreatedAt time.Time     `gorm:"not null;column:created_at"`
	UpdatedAt time.Time     `gorm:"not null;column:updated_at"`

	Post   *Post `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
	Author *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "forum_comments"
}
