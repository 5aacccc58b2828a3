package core

import (
	"context"
	"log/slog"
	"time"
)

// Options configures a Service.
type Options struct {
	MinPasteLength int           // Shortest accepted data paste (default: 50)
	MaxRowsPerFile int           // Data rows per exported file (default: 248)
	MaxTeams       int           // Largest accepted team count (default: 50)
	MaxRows        int           // Largest generated table (default: 20000)
	SessionTTL     time.Duration // Unused sessions expire after this (default: 2h)
	Now            func() time.Time
}

// Service provides the generator's operations to the shells. It owns the
// session store; templates come from the registry.
type Service struct {
	opts     Options
	ttl      time.Duration
	sessions *SessionStore
}

// NewService creates a new Service instance.
func NewService(opts Options) *Service {
	if opts.MinPasteLength < 0 {
		opts.MinPasteLength = 0
	}
	store := NewSessionStore(opts.sessionOptions(), opts.SessionTTL)
	return &Service{
		opts:     opts,
		ttl:      store.ttl,
		sessions: store,
	}
}

func (o Options) sessionOptions() SessionOptions {
	return SessionOptions{
		MinPasteLength: o.MinPasteLength,
		MaxRowsPerFile: o.MaxRowsPerFile,
		Limits:         Limits{MaxTeams: o.MaxTeams, MaxRows: o.MaxRows},
		Now:            o.Now,
	}
}

// ListTemplates returns information about all registered templates.
func (s *Service) ListTemplates() []TemplateInfo {
	all := All()
	infos := make([]TemplateInfo, len(all))
	for i, t := range all {
		infos[i] = t.Info()
	}
	return infos
}

// SessionCount returns the number of live sessions.
func (s *Service) SessionCount() int { return s.sessions.Len() }

// Session returns the client's session for a template key.
func (s *Service) Session(clientID, key string) (*Session, error) {
	tpl, err := Lookup(key)
	if err != nil {
		return nil, err
	}
	return s.sessions.Get(clientID, tpl), nil
}

// PasteData parses a data paste into the client's session.
func (s *Service) PasteData(ctx context.Context, clientID, key, text string) (*Snapshot, error) {
	sess, err := s.Session(clientID, key)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	snap, err := sess.PasteData(text)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "paste parsed",
		"template", key,
		"delimiter", snap.Report.Delimiter.String(),
		"rows", snap.Report.Rows,
		"dropped", snap.Report.Dropped,
		"emails", len(snap.Emails),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return snap, nil
}

// PasteEmails parses an email paste into the client's session.
func (s *Service) PasteEmails(ctx context.Context, clientID, key, text string) (*Snapshot, error) {
	sess, err := s.Session(clientID, key)
	if err != nil {
		return nil, err
	}
	snap, err := sess.PasteEmails(text)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "emails parsed", "template", key, "emails", len(snap.Emails))
	return snap, nil
}

// Process generates output from the client's current paste.
func (s *Service) Process(ctx context.Context, clientID, key string, p Params) (*Snapshot, error) {
	sess, err := s.Session(clientID, key)
	if err != nil {
		return nil, err
	}
	snap, err := sess.Process(p)
	if err != nil {
		return nil, err
	}
	sum := snap.Output.Summary
	slog.InfoContext(ctx, "output generated",
		"template", key,
		"rows", sum.Rows,
		"files", sum.Files,
		"assignees", sum.Assignees,
	)
	return snap, nil
}

// Clear resets the client's session for a template.
func (s *Service) Clear(ctx context.Context, clientID, key string) (*Snapshot, error) {
	sess, err := s.Session(clientID, key)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "session cleared", "template", key)
	return sess.Clear(), nil
}

// Output returns the client's generated output.
func (s *Service) Output(clientID, key string) (*Output, error) {
	sess, err := s.Session(clientID, key)
	if err != nil {
		return nil, err
	}
	return sess.Output()
}

// Generate runs the whole pipeline once without a session: parse text (or
// use rows when text is empty), generate, chunk and encode.
func (s *Service) Generate(ctx context.Context, key string, in PipelineInput) (Output, error) {
	tpl, err := Lookup(key)
	if err != nil {
		return Output{}, err
	}
	sess := NewSession(tpl, s.opts.sessionOptions())

	switch {
	case in.Rows != nil:
		_, err = sess.LoadRows(in.Rows)
	default:
		_, err = sess.PasteData(in.Data)
	}
	if err != nil {
		return Output{}, err
	}
	if in.Emails != "" {
		if _, err := sess.PasteEmails(in.Emails); err != nil {
			return Output{}, err
		}
	}

	snap, err := sess.Process(in.Params)
	if err != nil {
		return Output{}, err
	}
	slog.DebugContext(ctx, "pipeline finished", "template", key, "files", len(snap.Output.Files))
	return *snap.Output, nil
}

// PipelineInput is the input of a one-shot Generate.
type PipelineInput struct {
	Data   string     // Data paste text
	Rows   [][]string // Pre-split cells; used instead of Data when set
	Emails string     // Email paste text, for templates that need one
	Params Params
}
