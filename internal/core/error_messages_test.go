package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bartekmp/osmosmjerka-sub000/internal/phrase"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error", nil, ""},
		{"no separator", phrase.ErrNoSeparatorDetected, "SEP001"},
		{"wrapped mismatch", fmt.Errorf("%w: ',' does not split", phrase.ErrSeparatorMismatch), "SEP002"},
		{"unknown separator", fmt.Errorf("parse mode: %w", phrase.ErrUnknownSeparator), "SEP003"},
		{"invalid row", fmt.Errorf("%w on line 3", phrase.ErrInvalidRow), "ROW001"},
		{"empty content", phrase.ErrEmptyContent, "IMP001"},
		{"limiter", ErrTooManyImports, "IMP002"},
		{"too large", fmt.Errorf("%w: limit is 10 bytes", ErrContentTooLarge), "IMP003"},
		{"cancelled", fmt.Errorf("insert chunk: %w", context.Canceled), "IMP004"},
		{"deadline", context.DeadlineExceeded, "IMP005"},
		{"set not found", ErrLanguageSetNotFound, "SET001"},
		{"duplicate key", errors.New("ERROR: duplicate key value violates unique constraint"), "DB001"},
		{"unique constraint", errors.New("unique constraint violated"), "DB002"},
		{"foreign key", errors.New("insert violates foreign key constraint"), "DB003"},
		{"connection refused", errors.New("dial tcp 127.0.0.1:5432: connection refused"), "DB004"},
		{"deadlock", errors.New("deadlock detected"), "DB006"},
		{"rate limit", errors.New("rate limit exceeded"), "RATE001"},
		{"case insensitive", errors.New("DUPLICATE KEY"), "DB001"},
		{"unknown", errors.New("something odd"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapError(tt.err).Code; got != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestMapError_SentinelBeatsPattern(t *testing.T) {
	// The text mentions a timeout, but the wrapped sentinel decides.
	err := fmt.Errorf("waited for timeout: %w", ErrTooManyImports)
	if got := MapError(err).Code; got != "IMP002" {
		t.Errorf("MapError() code = %q, want IMP002", got)
	}
}

func TestMapError_UserErrorPassesThrough(t *testing.T) {
	ue := &UserError{Technical: errors.New("x"), User: UserMessage{Message: "custom", Code: "SET001"}}
	if got := MapError(fmt.Errorf("handler: %w", ue)); got.Message != "custom" {
		t.Errorf("MapError() = %+v, want the wrapped UserError message", got)
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(phrase.ErrNoSeparatorDetected)
	want := "No separator detected (Code: SEP001). Choose the separator explicitly or check that each line has three columns"
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sentinel", phrase.ErrSeparatorMismatch, true},
		{"pattern", errors.New("duplicate key"), true},
		{"unknown", errors.New("random internal error"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	if got := NewUserError(nil); got != nil {
		t.Errorf("NewUserError(nil) = %v, want nil", got)
	}

	ue := NewUserError(ErrLanguageSetNotFound)
	if ue.Error() != "Language set not found" {
		t.Errorf("Error() = %q", ue.Error())
	}
	if ue.User.Code != "SET001" {
		t.Errorf("Code = %q, want SET001", ue.User.Code)
	}
	if !errors.Is(ue, ErrLanguageSetNotFound) {
		t.Error("UserError should unwrap to the technical error")
	}
}
