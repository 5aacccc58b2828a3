package web

import (
	"errors"
	"net/http"

	"github.com/JonMunkholm/issuecsv/internal/core"
	"github.com/JonMunkholm/issuecsv/internal/logging"
	"github.com/JonMunkholm/issuecsv/internal/prefs"
	"github.com/JonMunkholm/issuecsv/internal/web/templates"
)

// handleIndex shows the first registered template.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	infos := s.service.ListTemplates()
	if len(infos) == 0 {
		s.fail(w, r, errors.New("no templates registered"))
		return
	}
	s.renderPage(w, r, infos, infos[0].Key)
}

// handleTemplatePage shows the paste page for one template.
func (s *Server) handleTemplatePage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, s.service.ListTemplates(), templateKey(r))
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, infos []core.TemplateInfo, key string) {
	clientID := s.clientID(w, r)
	sess, err := s.service.Session(clientID, key)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	theme, err := s.prefs.Theme(r.Context(), clientID)
	if err != nil {
		logging.FromContext(r.Context()).Warn("theme lookup failed, using default", "error", err)
		theme = prefs.DefaultTheme
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := templates.Page(templates.PageData{
		Templates:   infos,
		Active:      sess.Template().Info(),
		Snapshot:    sess.Snapshot(),
		Theme:       string(theme),
		PreviewRows: defaultPreviewRows,
	})
	if err := page.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "template", key, "error", err)
	}
}

// templateResponse is the JSON form of a template's metadata.
type templateResponse struct {
	Key        string   `json:"key"`
	Label      string   `json:"label"`
	Header     []string `json:"header"`
	Columns    []string `json:"columns"`
	Params     []string `json:"params"`
	EmailPaste bool     `json:"emailPaste"`
	Hint       string   `json:"hint"`
}

// handleListTemplates lists the registered templates.
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	infos := s.service.ListTemplates()
	resp := make([]templateResponse, len(infos))
	for i, info := range infos {
		cols := make([]string, len(info.Roles))
		for j, spec := range info.Roles {
			cols[j] = spec.Label
		}
		params := make([]string, len(info.Params))
		for j, p := range info.Params {
			params[j] = string(p)
		}
		resp[i] = templateResponse{
			Key:        info.Key,
			Label:      info.Label,
			Header:     info.Header,
			Columns:    cols,
			Params:     params,
			EmailPaste: info.EmailPaste,
			Hint:       info.Hint,
		}
	}
	writeJSON(w, resp)
}

// handleHealth reports liveness and current load.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":   "ok",
		"sessions": s.service.SessionCount(),
		"active":   s.limiter.Active(),
		"capacity": s.limiter.Capacity(),
	})
}
