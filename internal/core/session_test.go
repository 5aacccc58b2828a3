package core

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// stubTemplate emits one Task row per record for every pasted email.
type stubTemplate struct {
	info TemplateInfo
}

func newStubTemplate() stubTemplate {
	return stubTemplate{info: TemplateInfo{
		Key:        "stub",
		Label:      "Stub",
		FilePrefix: "stub",
		Header:     Row{"Assignee", "Issue Type", "Summary", "Description", "Component"},
		Roles:      testTaskRoles,
		MultiLine:  true,
		EmailPaste: true,
		Params:     []Param{ParamComponent, ParamData, ParamEmails},
	}}
}

func (s stubTemplate) Info() TemplateInfo { return s.info }

func (s stubTemplate) Parse(text string, opts ParseOptions) (ParseResult, error) {
	if err := CheckDataPaste(text, opts.MinLength); err != nil {
		return ParseResult{}, err
	}
	recs, report, err := ParseTable(text, s.info.Roles, s.info.MultiLine)
	return ParseResult{Records: recs, Report: report}, err
}

func (s stubTemplate) ParseRows(rows [][]string) (ParseResult, error) {
	recs, report, err := FromRows(rows, s.info.Roles)
	return ParseResult{Records: recs, Report: report}, err
}

func (s stubTemplate) Generate(in GenerateInput) (Table, error) {
	if err := ValidateParams(s.info, in); err != nil {
		return nil, err
	}
	table := Table{s.info.Header}
	for _, email := range in.Emails {
		for _, rec := range in.Records {
			table = append(table, Row{email, IssueTask, rec[RoleTask], rec[RoleDescription], in.Params.Component})
		}
	}
	return table, nil
}

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

const stubPaste = "Epic\tTask\tDescription\nE1\tBuild the service\tCompile\nE1\tShip the service\tRelease"

func newTestSession(t *testing.T) (*Session, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.UnixMilli(1700000000000)}
	return NewSession(newStubTemplate(), SessionOptions{
		MinPasteLength: DefaultMinPasteLength,
		Now:            clock.Now,
	}), clock
}

func TestSession_PasteProcessClear(t *testing.T) {
	s, _ := newTestSession(t)

	snap, err := s.PasteData(stubPaste)
	if err != nil {
		t.Fatalf("PasteData: %v", err)
	}
	if len(snap.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(snap.Records))
	}

	if _, err := s.PasteEmails("b@co.com\na@co.com"); err != nil {
		t.Fatalf("PasteEmails: %v", err)
	}

	snap, err = s.Process(Params{Component: "  CORE "})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if snap.Params.Component != "CORE" {
		t.Errorf("component = %q, want trimmed", snap.Params.Component)
	}
	out, err := s.Output()
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	if got := len(out.Table.DataRows()); got != 4 {
		t.Errorf("rows = %d, want 4", got)
	}
	if out.Files[0].Name != "stub_1700000000000.csv" {
		t.Errorf("file name = %q", out.Files[0].Name)
	}
	if !strings.HasPrefix(out.ClipboardText(), "Assignee,Issue Type,Summary,Description,Component\na@co.com,Task,") {
		t.Errorf("clipboard text = %q", out.ClipboardText())
	}

	snap = s.Clear()
	if snap.HasData() || snap.Output != nil {
		t.Error("Clear should drop all state")
	}
	if _, err := s.Output(); !errors.Is(err, ErrNothingGenerated) {
		t.Errorf("Output after Clear err = %v, want ErrNothingGenerated", err)
	}
}

func TestSession_RejectsParseWhileParsing(t *testing.T) {
	s, _ := newTestSession(t)
	s.state.Store(int32(StateParsing))

	if _, err := s.PasteData(stubPaste); !errors.Is(err, ErrParseInProgress) {
		t.Errorf("PasteData err = %v, want ErrParseInProgress", err)
	}
	if _, err := s.PasteEmails("a@co.com"); !errors.Is(err, ErrParseInProgress) {
		t.Errorf("PasteEmails err = %v, want ErrParseInProgress", err)
	}

	s.endParse()
	if s.State() != StateIdle {
		t.Fatalf("state = %v, want idle", s.State())
	}
	if _, err := s.PasteData(stubPaste); err != nil {
		t.Errorf("PasteData after idle: %v", err)
	}
}

func TestSession_FailedPasteKeepsSnapshot(t *testing.T) {
	s, _ := newTestSession(t)
	if _, err := s.PasteData(stubPaste); err != nil {
		t.Fatalf("PasteData: %v", err)
	}
	before := s.Snapshot()

	_, err := s.PasteData("Owner\tNotes\n" + strings.Repeat("x", 60) + "\ty")
	if !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("err = %v, want ErrMissingColumns", err)
	}
	if s.Snapshot() != before {
		t.Error("failed paste replaced the snapshot")
	}
	if s.State() != StateIdle {
		t.Errorf("state = %v, want idle after failure", s.State())
	}
}

func TestSession_NewPasteDropsOutput(t *testing.T) {
	s, _ := newTestSession(t)
	s.PasteData(stubPaste)
	s.PasteEmails("a@co.com")
	if _, err := s.Process(Params{Component: "C"}); err != nil {
		t.Fatalf("Process: %v", err)
	}

	snap, err := s.PasteData(stubPaste)
	if err != nil {
		t.Fatalf("PasteData: %v", err)
	}
	if snap.Output != nil {
		t.Error("new paste should drop generated output")
	}
	if len(snap.Emails) != 1 {
		t.Error("data paste should keep the email list")
	}
}

func TestSession_ProcessValidatesParams(t *testing.T) {
	s, _ := newTestSession(t)

	_, err := s.Process(Params{})
	var mpe *MissingParameterError
	if !errors.As(err, &mpe) || mpe.Param != ParamComponent {
		t.Fatalf("err = %v, want missing component", err)
	}

	_, err = s.Process(Params{Component: "C"})
	if !errors.As(err, &mpe) || mpe.Param != ParamData {
		t.Fatalf("err = %v, want missing data", err)
	}

	s.PasteData(stubPaste)
	_, err = s.Process(Params{Component: "C"})
	if !errors.As(err, &mpe) || mpe.Param != ParamEmails {
		t.Fatalf("err = %v, want missing emails", err)
	}
}

func TestSession_LoadRows(t *testing.T) {
	s, _ := newTestSession(t)
	snap, err := s.LoadRows([][]string{
		{"Epic", "Task", "Description"},
		{"E1", "Build", "multi\nline"},
	})
	if err != nil {
		t.Fatalf("LoadRows: %v", err)
	}
	if len(snap.Records) != 1 {
		t.Errorf("records = %d, want 1", len(snap.Records))
	}
}

func TestSessionStore_Sweep(t *testing.T) {
	clock := &fakeClock{now: time.UnixMilli(1700000000000)}
	store := NewSessionStore(SessionOptions{Now: clock.Now}, time.Hour)
	tpl := newStubTemplate()

	a := store.Get("client-a", tpl)
	if store.Get("client-a", tpl) != a {
		t.Fatal("Get should return the existing session")
	}
	store.Get("client-b", tpl)

	clock.Advance(30 * time.Minute)
	store.Get("client-b", tpl) // keeps b fresh

	clock.Advance(45 * time.Minute)
	if removed := store.Sweep(); removed != 1 {
		t.Errorf("Sweep removed %d, want 1", removed)
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}
	if store.Get("client-a", tpl) == a {
		t.Error("expired session should be replaced")
	}
}

func TestSession_ProcessRowLimit(t *testing.T) {
	s := NewSession(newStubTemplate(), SessionOptions{Limits: Limits{MaxRows: 3}})
	if _, err := s.PasteData(stubPaste); err != nil {
		t.Fatalf("PasteData: %v", err)
	}
	if _, err := s.PasteEmails("a@co.com\nb@co.com"); err != nil {
		t.Fatalf("PasteEmails: %v", err)
	}

	// Two emails times two records is one row over the limit.
	if _, err := s.Process(Params{Component: "C"}); !errors.Is(err, ErrTooManyRows) {
		t.Fatalf("Process err = %v, want ErrTooManyRows", err)
	}
	if s.Snapshot().Output != nil {
		t.Error("rejected process must not store output")
	}
}

func TestSession_PasteBareCRLineEndings(t *testing.T) {
	s, _ := newTestSession(t)
	snap, err := s.PasteData(strings.ReplaceAll(stubPaste, "\n", "\r"))
	if err != nil {
		t.Fatalf("PasteData: %v", err)
	}
	if len(snap.Records) != 2 {
		t.Errorf("records = %d, want 2", len(snap.Records))
	}
}
