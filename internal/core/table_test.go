package core

import (
	"errors"
	"strings"
	"testing"
)

var testTaskRoles = []RoleSpec{
	{Role: RoleEpic, Label: "Epic", Candidates: []string{"epic"}},
	{Role: RoleTask, Label: "Task", Candidates: []string{"task", "summary", "title"}},
	{Role: RoleDescription, Label: "Description", Candidates: []string{"description", "desc", "details"}},
}

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		line string
		want Delimiter
	}{
		{"Epic\tTask,Note;X", DelimTab},
		{"Epic,Task;Note", DelimComma},
		{"Epic;Task", DelimSemicolon},
		{"Epic Task", DelimNone},
		{"", DelimNone},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			if got := DetectDelimiter(tt.line); got != tt.want {
				t.Errorf("DetectDelimiter(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("a\r\nb\n\n   \n\tc\n")
	want := []string{"a", "b", "\tc"}
	if len(got) != len(want) {
		t.Fatalf("SplitLines = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitLines_BareCR(t *testing.T) {
	got := SplitLines("a\rb\r\r c")
	want := []string{"a", "b", " c"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("SplitLines = %q, want %q", got, want)
	}
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`  "quoted"  `, "quoted"},
		{`"only leading`, "only leading"},
		{`""double""`, `"double"`},
		{"plain", "plain"},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := CleanCell(tt.in); got != tt.want {
			t.Errorf("CleanCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseTable(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		multiLine bool
		wantRows  int
		wantDrop  int
		wantDelim Delimiter
		wantErr   error
	}{
		{
			name:      "tab delimited",
			input:     "Epic\tTask\tDescription\nE1\tBuild\tCompile it\nE1\tShip\tRelease it",
			wantRows:  2,
			wantDelim: DelimTab,
		},
		{
			name:      "comma delimited with quotes",
			input:     "\"Epic\",\"Task\",\"Desc\"\n\"E1\",\"Build\",\"Compile\"",
			wantRows:  1,
			wantDelim: DelimComma,
		},
		{
			name:      "semicolon delimited",
			input:     "Epic;Task;Details\nE1;Build;Compile",
			wantRows:  1,
			wantDelim: DelimSemicolon,
		},
		{
			name:      "short row dropped",
			input:     "Epic\tTask\tDescription\nE1\tBuild\tCompile\nE1\tShip",
			wantRows:  1,
			wantDrop:  1,
			wantDelim: DelimTab,
		},
		{
			name:    "header only",
			input:   "Epic\tTask\tDescription",
			wantErr: ErrEmptyInput,
		},
		{
			name:    "every row too short",
			input:   "Epic\tTask\tDescription\nE1\nE2",
			wantErr: ErrEmptyInput,
		},
		{
			name:    "missing columns",
			input:   "Name\tOwner\nA\tB",
			wantErr: ErrMissingColumns,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, report, err := ParseTable(tt.input, testTaskRoles, tt.multiLine)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(records) != tt.wantRows {
				t.Errorf("rows = %d, want %d", len(records), tt.wantRows)
			}
			if report.Dropped != tt.wantDrop {
				t.Errorf("dropped = %d, want %d", report.Dropped, tt.wantDrop)
			}
			if report.Delimiter != tt.wantDelim {
				t.Errorf("delimiter = %v, want %v", report.Delimiter, tt.wantDelim)
			}
		})
	}
}

func TestParseTable_TrimsAllButDescription(t *testing.T) {
	input := "Epic\tTask\tDescription\n  E1  \t \"Build\" \t\"  keep  spacing \""
	records, _, err := ParseTable(input, testTaskRoles, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := records[0]
	if rec[RoleEpic] != "E1" {
		t.Errorf("epic = %q, want E1", rec[RoleEpic])
	}
	if rec[RoleTask] != "Build" {
		t.Errorf("task = %q, want Build", rec[RoleTask])
	}
	if rec[RoleDescription] != "  keep  spacing " {
		t.Errorf("description = %q, want internal spacing kept", rec[RoleDescription])
	}
}

func TestParseTable_MultiLineDescription(t *testing.T) {
	input := strings.Join([]string{
		"Epic\tTask\tDescription",
		"E1\tDeploy\tline1",
		"line2",
		"E1\tBuild\t\"first",
		"  second\"",
		"E1\tShip\tdone",
	}, "\n")

	records, report, err := ParseTable(input, testTaskRoles, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Signature != 2 {
		t.Errorf("signature = %d, want 2", report.Signature)
	}
	if len(records) != 3 {
		t.Fatalf("rows = %d, want 3", len(records))
	}
	if got := records[0][RoleDescription]; got != "line1\nline2" {
		t.Errorf("description = %q, want %q", got, "line1\nline2")
	}
	if got := records[1][RoleDescription]; got != "first\n  second" {
		t.Errorf("quoted description = %q, want %q", got, "first\n  second")
	}
	if got := records[2][RoleTask]; got != "Ship" {
		t.Errorf("task = %q, want Ship", got)
	}
}

func TestParseTable_WithoutMultiLineContinuationIsDropped(t *testing.T) {
	input := "Epic\tTask\tDescription\nE1\tDeploy\tline1\nline2"
	records, report, err := ParseTable(input, testTaskRoles, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || report.Dropped != 1 {
		t.Errorf("rows = %d dropped = %d, want 1 and 1", len(records), report.Dropped)
	}
	if got := records[0][RoleDescription]; got != "line1" {
		t.Errorf("description = %q, want line1", got)
	}
}

func TestRowSignature_FallsBackToHeader(t *testing.T) {
	header := []string{"Epic", "Task", "Description"}
	if got := rowSignature(DelimTab, header, []string{"no delimiters", "here"}); got != 2 {
		t.Errorf("rowSignature = %d, want 2", got)
	}
}

func TestFromRows(t *testing.T) {
	rows := [][]string{
		{"Epic", "Task", "Description"},
		{"", "", ""},
		{"E1", " Build ", "multi\nline"},
		{"E1"},
	}
	records, report, err := FromRows(rows, testTaskRoles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || report.Dropped != 1 {
		t.Fatalf("rows = %d dropped = %d, want 1 and 1", len(records), report.Dropped)
	}
	if records[0][RoleTask] != "Build" {
		t.Errorf("task = %q, want Build", records[0][RoleTask])
	}
	if records[0][RoleDescription] != "multi\nline" {
		t.Errorf("description = %q", records[0][RoleDescription])
	}
}
