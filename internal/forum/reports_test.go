package forum

import (
	"context"
	"errors"
	"testing"
)

// Validation runs before any database access, so a zero service is enough
// to exercise the rejection paths.
func TestReportCreateValidation(t *testing.T) {
	svc := &ReportService{}

	tests := []struct {
		name       string
		reporterID int64
		data       ReportCreate
		wantErr    error
	}{
		{
			name:       "anonymous reporter",
			reporterID: 0,
			data:       ReportCreate{ReportableType: "post", ReportableID: 1, Reason: "spam"},
			wantErr:    ErrUnauthorized,
		},
		{
			name:       "unknown reportable type",
			reporterID: 1,
			data:       ReportCreate{ReportableType: "user", ReportableID: 1, Reason: "spam"},
			wantErr:    ErrValidation,
		},
		{
			name:       "unknown reason",
			reporterID: 1,
			data:       ReportCreate{ReportableType: "post", ReportableID: 1, Reason: "disagreeable"},
			wantErr:    ErrValidation,
		},
		{
			name:       "other without details",
			reporterID: 1,
			data:       ReportCreate{ReportableType: "post", ReportableID: 1, Reason: "other"},
			wantErr:    ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.reporterID, tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReportResolveValidation(t *testing.T) {
	svc := &ReportService{}

	tests := []struct {
		name    string
		actorID int64
		role    string
		data    ReportResolve
		wantErr error
	}{
		{
			name:    "anonymous",
			actorID: 0,
			role:    "",
			data:    ReportResolve{Status: "resolved"},
			wantErr: ErrUnauthorized,
		},
		{
			name:    "plain user",
			actorID: 1,
			role:    "user",
			data:    ReportResolve{Status: "resolved"},
			wantErr: ErrForbidden,
		},
		{
			name:    "invalid status",
			actorID: 1,
			role:    "moderator",
			data:    ReportResolve{Status: "ignored"},
			wantErr: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Resolve(context.Background(), tt.actorID, tt.role, 1, tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Resolve() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
