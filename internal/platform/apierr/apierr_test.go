package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"sarpras-backend/internal/platform/db"
)

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid", ErrInvalid("bad"), http.StatusBadRequest},
		{"not found", ErrNotFound("missing"), http.StatusNotFound},
		{"conflict", ErrConflict("dup"), http.StatusConflict},
		{"wrapped not found", fmt.Errorf("loading: %w", ErrNotFound("missing")), http.StatusNotFound},
		{"lock timeout", fmt.Errorf("%w: busy", db.ErrLockTimeout), http.StatusServiceUnavailable},
		{"plain", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := ToHTTPStatus(tt.err); got != tt.want {
			t.Errorf("%s: ToHTTPStatus = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestFromErrHidesInternalMessages(t *testing.T) {
	body := FromErr(errors.New("password=hunter2"))
	if body.Error.Code != CodeInternal {
		t.Errorf("expected INTERNAL, got %s", body.Error.Code)
	}
	if body.Error.Message != "internal error" {
		t.Errorf("internal message leaked: %q", body.Error.Message)
	}

	body = FromErr(ErrInvalid("Jumlah pinjam harus lebih dari 0"))
	if body.Error.Message != "Jumlah pinjam harus lebih dari 0" {
		t.Errorf("unexpected message %q", body.Error.Message)
	}
}
