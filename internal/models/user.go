package models

import (
	"time"
)

// User roles, in ascending order of privilege.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// User represents a forum account. Credential issuance lives in the
// external identity service; this table only mirrors what the forum
// needs for ownership and moderation checks.
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Username     string    `gorm:"type:varchar(50);not null;uniqueIndex:forum_users_ux1;column:username"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:forum_users_ux2;column:email"`
	PasswordHash string    `gorm:"type:varchar(1000);not null;column:password_hash"`
	Role         string    `gorm:"type:varchar(20);not null;default:'user';column:role"`
	CreatedAt    time.Time `gorm:"not null;column:created_at"`
	UpdatedAt    time.Time `gorm:"not null;column:updated_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "forum_users"
}

// IsModerator reports whether the role grants moderation rights.
func IsModerator(role string) bool {
	return role == RoleModerator || role == RoleAdmin
}
