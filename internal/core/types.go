// Package core provides the business logic for issue-tracker CSV generation.
// This package has no UI dependencies and can be used by any frontend.
package core

import "fmt"

// Role is a semantic column meaning resolved from a header cell.
type Role string

const (
	RoleEpic        Role = "epic"
	RoleStory       Role = "story"
	RoleSprint      Role = "sprint"
	RoleTask        Role = "task"
	RoleDescription Role = "description"
)

// RoleSpec defines how a role is found in a pasted header row.
type RoleSpec struct {
	Role       Role     // Semantic role
	Label      string   // Display name used in messages: "Epic"
	Candidates []string // Lowercase substrings that identify the column
}

// RawTable is the parser's view of a paste: rows of cells.
type RawTable [][]string

// ColumnMap maps each resolved role to its zero-based column index.
type ColumnMap map[Role]int

// Record is one data row reinterpreted through a ColumnMap.
type Record map[Role]string

// Row is one output CSV row in the active template's column order.
type Row []string

// Table is a generated output: the first row is always the header.
type Table []Row

// Header returns the header row, or nil for an empty table.
func (t Table) Header() Row {
	if len(t) == 0 {
		return nil
	}
	return t[0]
}

// DataRows returns the rows after the header.
func (t Table) DataRows() []Row {
	if len(t) <= 1 {
		return nil
	}
	return t[1:]
}

// Issue types written to the Issue Type column.
const (
	IssueEpic    = "Epic"
	IssueStory   = "Story"
	IssueTask    = "Task"
	IssueSubTask = "Sub-task"
)

// Param names a user-supplied generation parameter.
type Param string

const (
	ParamComponent Param = "component"
	ParamLabel     Param = "label"
	ParamTeams     Param = "teams"
	ParamData      Param = "data"
	ParamEmails    Param = "emails"
)

// Params holds the values entered alongside a paste.
type Params struct {
	Component string
	Label     string
	Teams     int
}

// TemplateInfo contains display and validation information about a template.
type TemplateInfo struct {
	Key        string     // Unique identifier: "devops"
	Order      int        // Position in template lists
	Label      string     // Display name: "DevOps Tasks"
	FilePrefix string     // Download name prefix: "devops_tasks"
	Header     Row        // Output column order
	Roles      []RoleSpec // Required columns of a data paste
	MultiLine  bool       // Fold continuation lines into the previous row
	EmailPaste bool       // Needs a separate email paste
	Params     []Param    // Required parameters, in validation order
	Hint       string     // Expected columns text shown in the paste area
}

// GenerateInput is everything a template needs to produce its table.
type GenerateInput struct {
	Records []Record
	Emails  []string
	Params  Params
	Limits  Limits
}

// Default generation limits.
const (
	DefaultMaxTeams = 50
	DefaultMaxRows  = 20000
)

// Limits bounds how much one process request may generate. Zero fields
// use the defaults.
type Limits struct {
	MaxTeams int // Largest accepted team count
	MaxRows  int // Largest generated table, header excluded
}

// Teams returns the effective team limit.
func (l Limits) Teams() int {
	if l.MaxTeams > 0 {
		return l.MaxTeams
	}
	return DefaultMaxTeams
}

// Rows returns the effective row limit.
func (l Limits) Rows() int {
	if l.MaxRows > 0 {
		return l.MaxRows
	}
	return DefaultMaxRows
}

// CheckRows fails with ErrTooManyRows when n data rows exceed the limit.
// Templates call it with their predicted size before building a table.
func (l Limits) CheckRows(n int) error {
	if limit := l.Rows(); n > limit {
		return fmt.Errorf("%d rows requested, limit is %d: %w", n, limit, ErrTooManyRows)
	}
	return nil
}

// ParseOptions tunes paste validation.
type ParseOptions struct {
	// MinLength is the minimum trimmed length of a data paste. Zero disables the check.
	MinLength int
}

// ParseReport describes how a paste was interpreted.
type ParseReport struct {
	Delimiter Delimiter
	Header    []string
	Columns   ColumnMap
	Signature int // Delimiter count that starts a new logical row
	Lines     int // Non-empty physical lines, header included
	Rows      int // Records produced
	Dropped   int // Logical rows dropped as too short
}

// ParseResult is the outcome of a data paste for a template.
type ParseResult struct {
	Records []Record
	Emails  []string
	Report  ParseReport
}

// Summary counts what a generated table contains.
type Summary struct {
	Rows      int `json:"rows"`
	Files     int `json:"files"`
	Epics     int `json:"epics"`
	Stories   int `json:"stories"`
	Tasks     int `json:"tasks"`
	SubTasks  int `json:"subTasks"`
	Assignees int `json:"assignees"`
}
