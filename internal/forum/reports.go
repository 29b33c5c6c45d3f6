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
	"github.com/openagora/agora/pkg/logging"
)

// reportDuplicateWindow is how long a reporter is blocked from re-reporting
// the same content.
const reportDuplicateWindow = 24 * time.Hour

// ReportCreate carries the fields for filing a report.
type ReportCreate struct {
	ReportableType string `json:"reportable_type"`
	ReportableID   int64  `json:"reportable_id"`
	Reason         string `json:"reason"`
	Details        string `json:"details"`
}

// ReportResolve carries a moderator's resolution.
type ReportResolve struct {
	Status        string `json:"status"`
	ModeratorNote string `json:"moderator_note"`
}

// ReportService handles content reporting and the moderation workflow.
// Duplicate detection goes through Redis first (fast 24h window) with the
// database unique constraint and a timestamp check as the fallback.
type ReportService struct {
	db     *gorm.DB
	cache  *cache.Cache
	logger *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(database *gorm.DB, redisCache *cache.Cache) *ReportService {
	return &ReportService{
		db:     database,
		cache:  redisCache,
		logger: logging.GetLogger().With(zap.String("component", "report-service")),
	}
}

// Create files a report against a post or comment.
func (s *ReportService) Create(ctx context.Context, reporterID int64, data ReportCreate) (*models.Report, error) {
	if reporterID <= 0 {
		return nil, ErrUnauthorized
	}
	if data.ReportableType != models.ReportablePost && data.ReportableType != models.ReportableComment {
		return nil, fmt.Errorf("%w: reportable_type must be post or comment", ErrValidation)
	}
	if !models.ReportReasons[data.Reason] {
		return nil, fmt.Errorf("%w: unknown report reason %q", ErrValidation, data.Reason)
	}
	if data.Reason == "other" && data.Details == "" {
		return nil, fmt.Errorf("%w: details are required when reason is other", ErrValidation)
	}

	if err := s.targetExists(ctx, data.ReportableType, data.ReportableID); err != nil {
		return nil, err
	}

	dupKey := fmt.Sprintf("report:duplicate:%d:%s:%d", reporterID, data.ReportableType, data.ReportableID)
	if s.cache != nil {
		if exists, err := s.cache.Exists(dupKey); err == nil && exists {
			return nil, fmt.Errorf("%w: content already reported in the last 24 hours", ErrConflict)
		}
	}

	// Redis may be disabled or have lost the key; the database is the
	// source of truth for the window.
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Report{}).
		Where("reporter_id = ? AND reportable_type = ? AND reportable_id = ? AND created_at > ?",
			reporterID, data.ReportableType, data.ReportableID, time.Now().Add(-reportDuplicateWindow)).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: content already reported recently", ErrConflict)
	}

	report := models.Report{
		ReporterID:     sql.NullInt64{Int64: reporterID, Valid: true},
		ReportableType: data.ReportableType,
		ReportableID:   data.ReportableID,
		Reason:         data.Reason,
		Status:         models.ReportStatusPending,
	}
	if data.Details != "" {
		report.Details = sql.NullString{String: data.Details, Valid: true}
	}
	if err := s.db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(dupKey, "1", reportDuplicateWindow); err != nil &&
			!errors.Is(err, cache.ErrCacheDisabled) {
			// The report is stored; a missing dedup key only weakens the
			// fast path.
			s.logger.Warn("report dedup key write failed", zap.Error(err))
		}
	}

	s.logger.Info("report filed",
		zap.Int64("reporter_id", reporterID),
		zap.String("type", data.ReportableType),
		zap.Int64("target_id", data.ReportableID),
		zap.String("reason", data.Reason))

	return &report, nil
}

// ListPending returns unresolved reports, oldest first. Moderator only.
func (s *ReportService) ListPending(ctx context.Context, actorID int64, actorRole string, limit, offset int) ([]models.Report, error) {
	if actorID <= 0 {
		return nil, ErrUnauthorized
	}
	if !models.IsModerator(actorRole) {
		return nil, ErrForbidden
	}

	var reports []models.Report
	err := s.db.WithContext(ctx).
		Preload("Reporter").
		Where("status = ?", models.ReportStatusPending).
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// Resolve closes a report as resolved or dismissed. Moderator only.
func (s *ReportService) Resolve(ctx context.Context, actorID int64, actorRole string, reportID int64, data ReportResolve) (*models.Report, error) {
	if actorID <= 0 {
		return nil, ErrUnauthorized
	}
	if !models.IsModerator(actorRole) {
		return nil, ErrForbidden
	}
	if data.Status != models.ReportStatusResolved && data.Status != models.ReportStatusDismissed {
		return nil, fmt.Errorf("%w: status must be resolved or dismissed", ErrValidation)
	}

	var report models.Report
	if err := s.db.WithContext(ctx).First(&report, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"status":      data.Status,
		"resolved_by": actorID,
		"resolved_at": time.Now().UTC(),
	}
	if data.ModeratorNote != "" {
		updates["moderator_note"] = data.ModeratorNote
	}
	if err := s.db.WithContext(ctx).Model(&report).Updates(updates).Error; err != nil {
		return nil, err
	}

	return &report, nil
}

func (s *ReportService) targetExists(ctx context.Context, reportableType string, id int64) error {
	var count int64
	var err error
	switch reportableType {
	case models.ReportablePost:
		err = s.db.WithContext(ctx).Model(&models.Post{}).
			Where("id = ? AND is_deleted = ?", id, false).Count(&count).Error
	case models.ReportableComment:
		err = s.db.WithContext(ctx).Model(&models.Comment{}).
			Where("id = ? AND is_deleted = ?", id, false).Count(&count).Error
	}
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
