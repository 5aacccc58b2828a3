package core

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ExtractEmails scans pasted text for email-like cells.
//
// Each line picks its own delimiter with the same preference as the table
// parser. A cell counts as an email when it contains both '@' and '.'; this
// is a heuristic filter, not address validation. Results are deduplicated by
// exact match (case preserved) and sorted ascending.
func ExtractEmails(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("email paste is blank: %w", ErrEmptyInput)
	}

	seen := make(map[string]struct{})
	for _, line := range SplitLines(text) {
		for _, cell := range DetectDelimiter(line).Split(line) {
			cell = CleanCell(cell)
			if !LooksLikeEmail(cell) {
				continue
			}
			seen[cell] = struct{}{}
		}
	}

	if len(seen) == 0 {
		return nil, ErrNoEmailsFound
	}

	emails := make([]string, 0, len(seen))
	for e := range seen {
		emails = append(emails, e)
	}
	sort.Strings(emails)
	return emails, nil
}

// LooksLikeEmail reports whether s contains both '@' and '.'.
func LooksLikeEmail(s string) bool {
	return strings.Contains(s, "@") && strings.Contains(s, ".")
}

// DisplayName derives "Name Surname" from an address such as
// jane_doe@example.com. Underscores become spaces and each word is title
// cased; digits stay where they are. Values without '@' are returned as is.
func DisplayName(email string) string {
	at := strings.Index(email, "@")
	if at < 0 {
		return email
	}
	words := strings.Split(strings.ReplaceAll(email[:at], "_", " "), " ")
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

// titleWord upper-cases the first rune and lower-cases the rest.
func titleWord(w string) string {
	if w == "" {
		return w
	}
	r, size := utf8.DecodeRuneInString(w)
	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}

// EmailsFromRows collects email-like cells from rows that are already split,
// with the same dedup and ordering as ExtractEmails.
func EmailsFromRows(rows [][]string) ([]string, error) {
	seen := make(map[string]struct{})
	for _, row := range rows {
		for _, cell := range row {
			cell = CleanCell(cell)
			if LooksLikeEmail(cell) {
				seen[cell] = struct{}{}
			}
		}
	}
	if len(seen) == 0 {
		return nil, ErrNoEmailsFound
	}

	emails := make([]string, 0, len(seen))
	for e := range seen {
		emails = append(emails, e)
	}
	sort.Strings(emails)
	return emails, nil
}
