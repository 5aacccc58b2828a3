package core

import (
	"errors"
	"strings"
	"testing"
)

func TestCheckDataPaste(t *testing.T) {
	long := "Epic\tTask\tDescription\n" + strings.Repeat("E1\tBuild\tCompile\n", 3)

	tests := []struct {
		name    string
		text    string
		min     int
		wantErr error
	}{
		{"long enough", long, DefaultMinPasteLength, nil},
		{"too short", "Epic\tTask\nE1\tT1", DefaultMinPasteLength, ErrEmptyInput},
		{"blank", "   \n\t", 0, ErrEmptyInput},
		{"short allowed when minimum disabled", "Epic\tTask\nE1\tT1", 0, nil},
		{"placeholder", "Data pasted successfully! " + long, DefaultMinPasteLength, ErrPlaceholderRejected},
		{"placeholder case insensitive", "PROCESSING...", 0, ErrPlaceholderRejected},
		{"expected columns hint", "Expected columns: Epic, Task" + long, 0, ErrPlaceholderRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckDataPaste(tt.text, tt.min)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckDataPaste_MinimumCountsTrimmedRunes(t *testing.T) {
	// 50 runes of content padded with whitespace.
	text := "   " + strings.Repeat("é", DefaultMinPasteLength) + "   "
	if err := CheckDataPaste(text, DefaultMinPasteLength); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	text = "   " + strings.Repeat("é", DefaultMinPasteLength-1) + "          "
	if err := CheckDataPaste(text, DefaultMinPasteLength); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("err = %v, want ErrEmptyInput", err)
	}
}

func TestCheckEmailPaste(t *testing.T) {
	if err := CheckEmailPaste("a@x.io"); err != nil {
		t.Errorf("short email paste should pass: %v", err)
	}
	if err := CheckEmailPaste("One email per row"); !errors.Is(err, ErrPlaceholderRejected) {
		t.Errorf("err = %v, want ErrPlaceholderRejected", err)
	}
	if err := CheckEmailPaste(""); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("err = %v, want ErrEmptyInput", err)
	}
	// The data hint is not an email placeholder.
	if err := CheckEmailPaste("Expected columns a@x.io"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
