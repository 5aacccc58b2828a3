package web

// handlers_common.go holds request parsing shared by the paste and export
// handlers.

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/issuecsv/internal/core"
	"github.com/go-chi/chi/v5"
)

// defaultPreviewRows is how many rows the HTML preview shows.
const defaultPreviewRows = 100

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}
	return i
}

// templateKey returns the {template} URL parameter.
func templateKey(r *http.Request) string {
	return chi.URLParam(r, "template")
}

// isForm reports whether the body is a browser form submission.
func isForm(r *http.Request) bool {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return ct == "application/x-www-form-urlencoded" || ct == "multipart/form-data"
}

// readPaste returns the pasted text. Form submissions carry it in field;
// any other body is the paste itself. Both are capped at the configured size.
func (s *Server) readPaste(w http.ResponseWriter, r *http.Request, field string) (string, error) {
	limit := s.cfg.Export.MaxPasteBytes
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if isForm(r) {
		if err := r.ParseMultipartForm(limit); err != nil && err != http.ErrNotMultipart {
			return "", fmt.Errorf("read form: %w", err)
		}
		return core.NormalizeText(r.FormValue(field)), nil
	}
	return core.ReadInput(r.Body, limit)
}

// processRequest is the JSON body of a process call.
type processRequest struct {
	Component string `json:"component"`
	Label     string `json:"label"`
	Teams     int    `json:"teams"`
}

// parseParams reads generation parameters from a JSON body or form fields.
// An unparseable team count becomes zero and fails validation later.
func parseParams(r *http.Request) (core.Params, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var req processRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return core.Params{}, fmt.Errorf("decode params: %v: %w", err, core.ErrMissingParameters)
		}
		return core.Params{Component: req.Component, Label: req.Label, Teams: req.Teams}, nil
	}

	if err := r.ParseForm(); err != nil {
		return core.Params{}, fmt.Errorf("read form: %w", err)
	}
	teams, _ := strconv.Atoi(strings.TrimSpace(r.FormValue("teams")))
	return core.Params{
		Component: r.FormValue("component"),
		Label:     r.FormValue("label"),
		Teams:     teams,
	}, nil
}
