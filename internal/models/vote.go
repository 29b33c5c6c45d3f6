package models

import (
	"time"
)

// Vote values. "No vote" is the absence of a row, never a stored zero.
const (
	VoteUp   = 1
	VoteDown = -1
	VoteNone = 0
)

// PostVote is one signed vote by one user on one post. The unique index
// on (user_id, post_id) is what makes "at most one live vote per pair"
// a database guarantee rather than an application convention.
type PostVote struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	UserID    int64     `gorm:"not null;uniqueIndex:forum_post_votes_ux1;column:user_id"`
	PostID    int64     `gorm:"not null;uniqueIndex:forum_post_votes_ux1;index:forum_post_votes_ix_post;column:post_id"`
	Value     int       `gorm:"type:smallint;not null;check:value IN (1, -1);column:value"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at"`

	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Post *Post `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for PostVote
func (PostVote) TableName() string {
	return "forum_post_votes"
}

// CommentVote mirrors PostVote for comments.
type CommentVote struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	UserID    int64     `gorm:"not null;uniqueIndex:forum_comment_votes_ux1;column:user_id"`
	CommentID int64     `gorm:"not null;uniqueIndex:forum_comment_votes_ux1;index:forum_comment_votes_ix_comment;column:comment_id"`
	Value     int       `gorm:"type:smallint;not null;check:value IN (1, -1);column:value"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at"`

	User    *User    `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Comment *Comment `gorm:"foreignKey:CommentID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for CommentVote
func (CommentVote) TableName() string {
	return "forum_comment_votes"
}
