package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/openagora/agora/internal/forum"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "unauthorized",
			err:  forum.ErrUnauthorized,
			want: http.StatusUnauthorized,
		},
		{
			name: "forbidden",
			err:  forum.ErrForbidden,
			want: http.StatusForbidden,
		},
		{
			name: "not found",
			err:  forum.ErrNotFound,
			want: http.StatusNotFound,
		},
		{
			name: "invalid vote value",
			err:  forum.ErrInvalidVoteValue,
			want: http.StatusBadRequest,
		},
		{
			name: "validation",
			err:  forum.ErrValidation,
			want: http.StatusBadRequest,
		},
		{
			name: "conflict",
			err:  forum.ErrConflict,
			want: http.StatusConflict,
		},
		{
			name: "wrapped sentinel",
			err:  fmt.Errorf("%w: title too short", forum.ErrValidation),
			want: http.StatusBadRequest,
		},
		{
			name: "unknown error",
			err:  fmt.Errorf("connection reset"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusForError(tt.err); got != tt.want {
				t.Errorf("statusForError() = %d, want %d", got, tt.want)
			}
		})
	}
}
