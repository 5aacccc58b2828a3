package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "wrapped empty input",
			err:         fmt.Errorf("paste is blank: %w", ErrEmptyInput),
			wantCode:    "INP001",
			wantMessage: "No usable data was pasted",
		},
		{
			name:        "placeholder text",
			err:         fmt.Errorf("paste contains %q: %w", "Click here", ErrPlaceholderRejected),
			wantCode:    "INP002",
			wantMessage: "The pasted text looks like a status message, not spreadsheet data",
		},
		{
			name:        "too many rows",
			err:         fmt.Errorf("30000 rows requested, limit is 20000: %w", ErrTooManyRows),
			wantCode:    "PAR002",
			wantMessage: "This would generate more rows than the server allows",
		},
		{
			name:        "missing columns error type",
			err:         &MissingColumnsError{Roles: []string{"Task"}, Header: []string{"Epic"}},
			wantCode:    "COL001",
			wantMessage: "Required columns were not found in the header row",
		},
		{
			name:        "no emails",
			err:         ErrNoEmailsFound,
			wantCode:    "EML001",
			wantMessage: "No email addresses were found",
		},
		{
			name:        "missing parameter error type",
			err:         MissingParam(ParamComponent),
			wantCode:    "PAR001",
			wantMessage: "Some required fields are missing",
		},
		{
			name:        "parse in progress",
			err:         ErrParseInProgress,
			wantCode:    "SES001",
			wantMessage: "The previous paste is still being processed",
		},
		{
			name:        "nothing generated",
			err:         ErrNothingGenerated,
			wantCode:    "SES002",
			wantMessage: "There is no generated CSV yet",
		},
		{
			name:        "unknown template",
			err:         fmt.Errorf("%q: %w", "jira", ErrUnknownTemplate),
			wantCode:    "TPL001",
			wantMessage: "Unknown template",
		},
		{
			name:        "busy",
			err:         ErrBusy,
			wantCode:    "SRV001",
			wantMessage: "The server is busy processing other pastes",
		},
		{
			name:        "rate limit maps by pattern",
			err:         errors.New("rate limit exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("Context Deadline Exceeded"),
			wantCode:    "REQ002",
			wantMessage: "Request timed out",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestMapError_RowTooShortFallsBack(t *testing.T) {
	// Dropped rows are never surfaced, so there is no dedicated code.
	if got := MapError(ErrRowTooShort).Code; got != "ERR000" {
		t.Errorf("MapError(ErrRowTooShort) code = %q, want ERR000", got)
	}
}

func TestFormatUserError(t *testing.T) {
	err := fmt.Errorf("parse: %w", ErrNoEmailsFound)
	result := FormatUserError(err)

	expected := "No email addresses were found (Code: EML001). Paste emails such as user@example.com, one per row or column"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error is not user facing",
			err:  nil,
			want: false,
		},
		{
			name: "sentinel is user facing",
			err:  ErrMissingParameters,
			want: true,
		},
		{
			name: "unknown error is not user facing",
			err:  errors.New("random internal error xyz"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsUserFacing(tt.err)
			if got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if got := NewUserError(nil); got != nil {
			t.Errorf("NewUserError(nil) = %v, want nil", got)
		}
	})

	t.Run("wraps technical error with user message", func(t *testing.T) {
		techErr := fmt.Errorf("paste contains %q: %w", "processing", ErrPlaceholderRejected)
		userErr := NewUserError(techErr)

		if userErr.Error() != "The pasted text looks like a status message, not spreadsheet data" {
			t.Errorf("Error() = %q, want user message", userErr.Error())
		}
		if !errors.Is(userErr, techErr) {
			t.Error("Unwrap() should return original error")
		}
		if !errors.Is(userErr, ErrPlaceholderRejected) {
			t.Error("sentinel should be reachable through UserError")
		}
	})
}

func TestMissingParameterError(t *testing.T) {
	err := InvalidParam(ParamTeams, "must be a positive number")
	if !errors.Is(err, ErrMissingParameters) {
		t.Error("InvalidParam should match ErrMissingParameters")
	}
	var mpe *MissingParameterError
	if !errors.As(err, &mpe) || mpe.Param != ParamTeams {
		t.Fatalf("errors.As = %v, want Param teams", mpe)
	}
	if got, want := err.Error(), "missing parameters: teams must be a positive number"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got, want := MissingParam(ParamLabel).Error(), "missing parameters: label is required"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
