package models

import (
	"database/sql"
	"time"
)

// Reportable content types.
const (
	ReportablePost    = "post"
	ReportableComment = "comment"
)

// Report statuses.
const (
	ReportStatusPending   = "pending"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

// Report reasons accepted from clients.
var ReportReasons = map[string]bool{
	"spam":           true,
	"harassment":     true,
	"inappropriate":  true,
	"misinformation": true,
	"other":          true,
}

// Report flags a post or comment for moderation. At most one live report
// per (reporter, target) pair; reports are independent of vote state.
type Report struct {
	ID             int64          `gorm:"primaryKey;autoIncrement;column:id"`
	ReporterID     sql.NullInt64  `gorm:"uniqueIndex:forum_reports_ux1;column:reporter_id"`
	ReportableType string         `gorm:"type:varchar(20);not null;uniqueIndex:forum_reports_ux1;check:reportable_type IN ('post', 'comment');column:reportable_type"`
	ReportableID   int64          `gorm:"not null;uniqueIndex:forum_reports_ux1;index:forum_reports_ix_target;column:reportable_id"`
	Reason         string         `gorm:"type:varchar(50);not null;column:reason"`
	Details        sql.NullString `gorm:"type:text;column:details"`
	Status         string         `gorm:"type:varchar(20);not null;default:'pending';index;check:status IN ('pending', 'resolved', 'dismissed');column:status"`
	ResolvedBy     sql.NullInt64  `gorm:"column:resolved_by"`
	ModeratorNote  sql.NullString `gorm:"type:text;column:moderator_note"`
	ResolvedAt     sql.NullTime   `gorm:"column:resolved_at"`
	CreatedAt      time.Time      `gorm:"not null;column:created_at"`
	UpdatedAt      time.Time      `gorm:"not null;column:updated_at"`

	Reporter *User `gorm:"foreignKey:ReporterID;references:ID;constraint:OnDelete:SET NULL"`
	Resolver *User `gorm:"foreignKey:ResolvedBy;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name for Report
func (Report) TableName() string {
	return "forum_reports"
}
