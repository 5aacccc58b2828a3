package core

// session.go holds the interactive state of one client working with one
// template.
//
// A session never mutates its state in place. Every paste, process and clear
// builds a new Snapshot and swaps it in, so readers always see a consistent
// view and a failed action leaves the previous snapshot untouched.
//
// Parsing is guarded by an explicit state flag: Idle -> Parsing -> Idle. A
// second parse that arrives while one is running is rejected with
// ErrParseInProgress instead of queueing.

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// State is the parse state of a session.
type State int32

const (
	StateIdle State = iota
	StateParsing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateParsing:
		return "parsing"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Snapshot is the immutable state of a session at one point in time.
type Snapshot struct {
	Template string
	Records  []Record
	Emails   []string
	Report   ParseReport
	Params   Params
	Output   *Output // nil until processed
	Updated  time.Time
}

// HasData reports whether a data paste has been accepted.
func (s *Snapshot) HasData() bool {
	return len(s.Records) > 0 || len(s.Emails) > 0
}

// SessionOptions configures parsing and export for a session.
type SessionOptions struct {
	MinPasteLength int
	MaxRowsPerFile int
	Limits         Limits
	Now            func() time.Time
}

func (o SessionOptions) withDefaults() SessionOptions {
	if o.MaxRowsPerFile <= 0 {
		o.MaxRowsPerFile = MaxRowsPerFile
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Session is one client's work on one template.
type Session struct {
	tpl  Template
	opts SessionOptions

	state    atomic.Int32
	mu       sync.Mutex // serializes snapshot swaps
	snap     atomic.Pointer[Snapshot]
	lastUsed atomic.Int64 // unix nanos
}

// NewSession creates an idle session with an empty snapshot.
func NewSession(tpl Template, opts SessionOptions) *Session {
	opts = opts.withDefaults()
	s := &Session{tpl: tpl, opts: opts}
	s.snap.Store(&Snapshot{Template: tpl.Info().Key, Updated: opts.Now()})
	s.touch()
	return s
}

// Template returns the session's template.
func (s *Session) Template() Template { return s.tpl }

// State returns the current parse state.
func (s *Session) State() State { return State(s.state.Load()) }

// Snapshot returns the current state. Callers must not modify it.
func (s *Session) Snapshot() *Snapshot {
	s.touch()
	return s.snap.Load()
}

// LastUsed returns when the session was last read or changed.
func (s *Session) LastUsed() time.Time {
	return time.Unix(0, s.lastUsed.Load())
}

func (s *Session) touch() {
	s.lastUsed.Store(s.opts.Now().UnixNano())
}

// beginParse moves Idle -> Parsing or reports ErrParseInProgress.
func (s *Session) beginParse() error {
	if !s.state.CompareAndSwap(int32(StateIdle), int32(StateParsing)) {
		return ErrParseInProgress
	}
	return nil
}

func (s *Session) endParse() {
	s.state.Store(int32(StateIdle))
}

// swap replaces the snapshot with the result of fn applied to a copy of the
// current one.
func (s *Session) swap(fn func(next *Snapshot)) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := *s.snap.Load()
	fn(&next)
	next.Updated = s.opts.Now()
	s.snap.Store(&next)
	s.touch()
	return &next
}

// PasteData parses a data paste for the session's template. On success the
// parsed rows replace the previous ones and any generated output is dropped.
func (s *Session) PasteData(text string) (*Snapshot, error) {
	if err := s.beginParse(); err != nil {
		return nil, err
	}
	defer s.endParse()

	res, err := s.tpl.Parse(NormalizeText(text), ParseOptions{MinLength: s.opts.MinPasteLength})
	if err != nil {
		return nil, err
	}
	return s.acceptData(res), nil
}

// LoadRows accepts cells that are already split, such as a worksheet.
func (s *Session) LoadRows(rows [][]string) (*Snapshot, error) {
	if err := s.beginParse(); err != nil {
		return nil, err
	}
	defer s.endParse()

	res, err := s.tpl.ParseRows(rows)
	if err != nil {
		return nil, err
	}
	return s.acceptData(res), nil
}

func (s *Session) acceptData(res ParseResult) *Snapshot {
	return s.swap(func(next *Snapshot) {
		if len(s.tpl.Info().Roles) > 0 {
			next.Records = res.Records
		}
		if res.Emails != nil {
			next.Emails = res.Emails
		}
		next.Report = res.Report
		next.Output = nil
	})
}

// PasteEmails extracts the assignee list from an email paste.
func (s *Session) PasteEmails(text string) (*Snapshot, error) {
	if err := s.beginParse(); err != nil {
		return nil, err
	}
	defer s.endParse()

	text = NormalizeText(text)
	if err := CheckEmailPaste(text); err != nil {
		return nil, err
	}
	emails, err := ExtractEmails(text)
	if err != nil {
		return nil, err
	}
	return s.swap(func(next *Snapshot) {
		next.Emails = emails
		next.Output = nil
	}), nil
}

// Process generates the output table from the current snapshot.
func (s *Session) Process(p Params) (*Snapshot, error) {
	p.Component = strings.TrimSpace(p.Component)
	p.Label = strings.TrimSpace(p.Label)

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.snap.Load()
	table, err := s.tpl.Generate(GenerateInput{
		Records: cur.Records,
		Emails:  cur.Emails,
		Params:  p,
		Limits:  s.opts.Limits,
	})
	if err != nil {
		return nil, err
	}
	rows := len(table.DataRows())
	if rows == 0 {
		return nil, fmt.Errorf("template produced no rows: %w", ErrNothingGenerated)
	}
	if err := s.opts.Limits.CheckRows(rows); err != nil {
		return nil, err
	}

	now := s.opts.Now()
	out := BuildOutput(s.tpl.Info(), table, s.opts.MaxRowsPerFile, now)

	next := *cur
	next.Params = p
	next.Output = &out
	next.Updated = now
	s.snap.Store(&next)
	s.touch()
	return &next, nil
}

// Output returns the generated output, or ErrNothingGenerated.
func (s *Session) Output() (*Output, error) {
	out := s.Snapshot().Output
	if out == nil {
		return nil, ErrNothingGenerated
	}
	return out, nil
}

// Clear resets the session to an empty snapshot.
func (s *Session) Clear() *Snapshot {
	return s.swap(func(next *Snapshot) {
		*next = Snapshot{Template: s.tpl.Info().Key}
	})
}
