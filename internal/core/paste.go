package core

import (
	"fmt"
	"strings"
)

// DefaultMinPasteLength is the shortest data paste that is parsed at all.
const DefaultMinPasteLength = 50

// dataPlaceholders are status texts the paste area shows. Pasting them back
// (e.g. after select-all in the paste area) must not be parsed as data.
var dataPlaceholders = []string{
	"Data pasted",
	"processing",
	"Click here",
	"Expected columns",
	"Successfully loaded",
}

// emailPlaceholders are the status texts of the email paste area.
var emailPlaceholders = []string{
	"Data pasted",
	"processing",
	"Click here",
	"One email per row",
}

// containsPlaceholder reports the first placeholder phrase found in text,
// compared case-insensitively.
func containsPlaceholder(text string, phrases []string) (string, bool) {
	lower := strings.ToLower(text)
	for _, p := range phrases {
		if strings.Contains(lower, strings.ToLower(p)) {
			return p, true
		}
	}
	return "", false
}

// CheckDataPaste rejects placeholder text and pastes shorter than minLength
// trimmed characters. A minLength of zero only rejects blank input.
func CheckDataPaste(text string, minLength int) error {
	if p, ok := containsPlaceholder(text, dataPlaceholders); ok {
		return fmt.Errorf("paste contains %q: %w", p, ErrPlaceholderRejected)
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fmt.Errorf("paste is blank: %w", ErrEmptyInput)
	}
	if n := len([]rune(trimmed)); n < minLength {
		return fmt.Errorf("paste has %d characters, need %d: %w", n, minLength, ErrEmptyInput)
	}
	return nil
}

// CheckEmailPaste rejects placeholder text and blank input.
func CheckEmailPaste(text string) error {
	if p, ok := containsPlaceholder(text, emailPlaceholders); ok {
		return fmt.Errorf("paste contains %q: %w", p, ErrPlaceholderRejected)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("paste is blank: %w", ErrEmptyInput)
	}
	return nil
}
