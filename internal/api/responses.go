package api

import (
	"time"

	"github.com/openagora/agora/internal/models"
)

// Response shapes for entities whose models carry nullable SQL types. The
// feed path has its own shape in the forum package; these cover single
// entities.

type authorResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type topicRefResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type postResponse struct {
	ID           int64             `json:"id"`
	Author       *authorResponse   `json:"author"`
	Topic        *topicRefResponse `json:"topic"`
	Title        string            `json:"title"`
	Content      string            `json:"content"`
	VoteCount    int               `json:"vote_count"`
	ViewCount    int               `json:"view_count"`
	CommentCount int               `json:"comment_count"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	UserVote     int               `json:"user_vote"`
}

type commentResponse struct {
	ID        int64           `json:"id"`
	PostID    int64           `json:"post_id"`
	Author    *authorResponse `json:"author"`
	Content   string          `json:"content"`
	VoteCount int             `json:"vote_count"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	UserVote  int             `json:"user_vote"`
}

type reportResponse struct {
	ID             int64      `json:"id"`
	ReporterID     *int64     `json:"reporter_id"`
	ReportableType string     `json:"reportable_type"`
	ReportableID   int64      `json:"reportable_id"`
	Reason         string     `json:"reason"`
	Details        string     `json:"details"`
	Status         string     `json:"status"`
	ResolvedBy     *int64     `json:"resolved_by"`
	ModeratorNote  string     `json:"moderator_note"`
	ResolvedAt     *time.Time `json:"resolved_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

type topicResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func toPostResponse(post *models.Post, userVote int) postResponse {
	resp := postResponse{
		ID:           post.ID,
		Title:        post.Title,
		Content:      post.Content,
		VoteCount:    post.VoteCount,
		ViewCount:    post.ViewCount,
		CommentCount: post.CommentCount,
		CreatedAt:    post.CreatedAt,
		UpdatedAt:    post.UpdatedAt,
		UserVote:     userVote,
	}
	if post.Author != nil {
		resp.Author = &authorResponse{ID: post.Author.ID, Username: post.Author.Username}
	}
	if post.Topic != nil {
		resp.Topic = &topicRefResponse{ID: post.Topic.ID, Name: post.Topic.Name, Slug: post.Topic.Slug}
	}
	return resp
}

func toCommentResponse(comment *models.Comment, userVote int) commentResponse {
	resp := commentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		Content:   comment.Content,
		VoteCount: comment.VoteCount,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
		UserVote:  userVote,
	}
	if comment.Author != nil {
		resp.Author = &authorResponse{ID: comment.Author.ID, Username: comment.Author.Username}
	}
	return resp
}

func toReportResponse(report *models.Report) reportResponse {
	resp := reportResponse{
		ID:             report.ID,
		ReportableType: report.ReportableType,
		ReportableID:   report.ReportableID,
		Reason:         report.Reason,
		Status:         report.Status,
		CreatedAt:      report.CreatedAt,
	}
	if report.ReporterID.Valid {
		id := report.ReporterID.Int64
		resp.ReporterID = &id
	}
	if report.Details.Valid {
		resp.Details = report.Details.String
	}
	if report.ResolvedBy.Valid {
		id := report.ResolvedBy.Int64
		resp.ResolvedBy = &id
	}
	if report.ModeratorNote.Valid {
		resp.ModeratorNote = report.ModeratorNote.String
	}
	if report.ResolvedAt.Valid {
		at := report.ResolvedAt.Time
		resp.ResolvedAt = &at
	}
	return resp
}

func toTopicResponse(topic *models.Topic) topicResponse {
	return topicResponse{
		ID:          topic.ID,
		Name:        topic.Name,
		Slug:        topic.Slug,
		Description: topic.Description.String,
		IsActive:    topic.IsActive,
		CreatedAt:   topic.CreatedAt,
	}
}
