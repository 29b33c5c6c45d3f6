package forum

import (
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/openagora/agora/internal/models"
)

func TestValidatePostFields(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		content string
		wantErr bool
	}{
		{
			name:    "valid",
			title:   "A reasonable title",
			content: "Content long enough to pass.",
		},
		{
			name:    "title too short",
			title:   "Hi",
			content: "Content long enough to pass.",
			wantErr: true,
		},
		{
			name:    "title at minimum",
			title:   "12345",
			content: "Content long enough to pass.",
		},
		{
			name:    "title too long",
			title:   strings.Repeat("x", maxTitleLen+1),
			content: "Content long enough to pass.",
			wantErr: true,
		},
		{
			name:    "content too short",
			title:   "A reasonable title",
			content: "short",
			wantErr: true,
		},
		{
			name:    "content at minimum",
			title:   "A reasonable title",
			content: strings.Repeat("x", minContentLen),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePostFields(tt.title, tt.content)
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Errorf("validatePostFields() = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Errorf("validatePostFields() unexpected error: %v", err)
			}
		})
	}
}

func TestToFeedPosts(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	posts := []models.Post{
		{
			ID:        1,
			UserID:    sql.NullInt64{Int64: 9, Valid: true},
			TopicID:   sql.NullInt64{Int64: 4, Valid: true},
			Title:     "With author and topic",
			Content:   "body",
			VoteCount: 3,
			CreatedAt: created,
		},
		{
			ID:      2,
			Title:   "Detached post",
			Content: "author and topic deleted",
		},
	}

	feed := toFeedPosts(posts)

	if len(feed) != 2 {
		t.Fatalf("toFeedPosts() returned %d posts, want 2", len(feed))
	}
	if feed[0].UserID == nil || *feed[0].UserID != 9 {
		t.Errorf("feed[0].UserID = %v, want 9", feed[0].UserID)
	}
	if feed[0].TopicID == nil || *feed[0].TopicID != 4 {
		t.Errorf("feed[0].TopicID = %v, want 4", feed[0].TopicID)
	}
	if feed[0].VoteCount != 3 {
		t.Errorf("feed[0].VoteCount = %d, want 3", feed[0].VoteCount)
	}
	if !feed[0].CreatedAt.Equal(created) {
		t.Errorf("feed[0].CreatedAt = %v, want %v", feed[0].CreatedAt, created)
	}

	// A post whose author or topic was deleted stays listable with nils.
	if feed[1].UserID != nil {
		t.Errorf("feed[1].UserID = %v, want nil", feed[1].UserID)
	}
	if feed[1].TopicID != nil {
		t.Errorf("feed[1].TopicID = %v, want nil", feed[1].TopicID)
	}
}

func TestFeedCacheTTL(t *testing.T) {
	tests := []struct {
		sort string
		want time.Duration
	}{
		{sort: "new", want: 3 * time.Second},
		{sort: "hot", want: 300 * time.Second},
		{sort: "top", want: 60 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			if got := feedCacheTTL(tt.sort); got != tt.want {
				t.Errorf("feedCacheTTL(%q) = %v, want %v", tt.sort, got, tt.want)
			}
		})
	}
}
