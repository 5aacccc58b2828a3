package web

import (
	"context"
	"net/http"
	"time"

	"github.com/JonMunkholm/issuecsv/internal/core"
	"github.com/JonMunkholm/issuecsv/internal/web/templates"
)

// stateResponse describes a session after a paste, process or clear.
type stateResponse struct {
	Template  string    `json:"template"`
	State     string    `json:"state"`
	Rows      int       `json:"rows"`
	Dropped   int       `json:"dropped"`
	Delimiter string    `json:"delimiter,omitempty"`
	Header    []string  `json:"header,omitempty"`
	Emails    int       `json:"emails"`
	Processed bool      `json:"processed"`
	Files     int       `json:"files"`
	Updated   time.Time `json:"updated"`
}

func newStateResponse(sess *core.Session, snap *core.Snapshot) stateResponse {
	resp := stateResponse{
		Template:  snap.Template,
		State:     sess.State().String(),
		Rows:      len(snap.Records),
		Dropped:   snap.Report.Dropped,
		Header:    snap.Report.Header,
		Emails:    len(snap.Emails),
		Processed: snap.Output != nil,
		Updated:   snap.Updated,
	}
	if snap.HasData() && snap.Report.Lines > 0 {
		resp.Delimiter = snap.Report.Delimiter.String()
	}
	if snap.Output != nil {
		resp.Files = len(snap.Output.Files)
	}
	return resp
}

// withWorkSlot runs fn while holding a limiter slot.
func (s *Server) withWorkSlot(ctx context.Context, fn func() error) error {
	if err := s.limiter.Acquire(ctx); err != nil {
		return err
	}
	defer s.limiter.Release()
	return fn()
}

// handlePaste accepts a data paste for the template.
func (s *Server) handlePaste(w http.ResponseWriter, r *http.Request) {
	key := templateKey(r)
	clientID := s.clientID(w, r)
	sess, err := s.service.Session(clientID, key)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	text, err := s.readPaste(w, r, "data")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var snap *core.Snapshot
	err = s.withWorkSlot(r.Context(), func() error {
		var perr error
		snap, perr = s.service.PasteData(r.Context(), clientID, key, text)
		return perr
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		templates.PasteStatus(sess.Template().Info(), snap).Render(r.Context(), w)
		return
	}
	writeJSON(w, newStateResponse(sess, snap))
}

// handleEmails accepts the assignee email paste.
func (s *Server) handleEmails(w http.ResponseWriter, r *http.Request) {
	key := templateKey(r)
	clientID := s.clientID(w, r)
	sess, err := s.service.Session(clientID, key)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	text, err := s.readPaste(w, r, "emails")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var snap *core.Snapshot
	err = s.withWorkSlot(r.Context(), func() error {
		var perr error
		snap, perr = s.service.PasteEmails(r.Context(), clientID, key, text)
		return perr
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		templates.EmailStatus(snap).Render(r.Context(), w)
		return
	}
	writeJSON(w, newStateResponse(sess, snap))
}

// handleProcess generates the output from the session's pastes.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	key := templateKey(r)
	clientID := s.clientID(w, r)
	// Unknown templates are a 404 before the body is read.
	if _, err := s.service.Session(clientID, key); err != nil {
		s.fail(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Export.MaxPasteBytes)
	params, err := parseParams(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var snap *core.Snapshot
	err = s.withWorkSlot(r.Context(), func() error {
		var perr error
		snap, perr = s.service.Process(r.Context(), clientID, key, params)
		return perr
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		templates.Preview(snap.Output, defaultPreviewRows).Render(r.Context(), w)
		return
	}
	writeJSON(w, newPreviewResponse(snap.Output, parseIntParam(r, "limit", 0)))
}

// handleClear resets the session for the template.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	key := templateKey(r)
	clientID := s.clientID(w, r)
	sess, err := s.service.Session(clientID, key)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	snap, err := s.service.Clear(r.Context(), clientID, key)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		templates.PasteStatus(sess.Template().Info(), snap).Render(r.Context(), w)
		return
	}
	writeJSON(w, newStateResponse(sess, snap))
}

// handleState reports the session without changing it.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess, err := s.service.Session(s.clientID(w, r), templateKey(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, newStateResponse(sess, sess.Snapshot()))
}
