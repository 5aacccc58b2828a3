package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/JonMunkholm/issuecsv/internal/prefs"
)

type themeRequest struct {
	Theme string `json:"theme"`
}

type themeResponse struct {
	Theme string `json:"theme"`
}

// handleGetTheme returns the caller's theme preference.
func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := s.prefs.Theme(r.Context(), s.clientID(w, r))
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, themeResponse{Theme: string(theme)})
}

// handlePutTheme stores the caller's theme preference.
func (s *Server) handlePutTheme(w http.ResponseWriter, r *http.Request) {
	clientID := s.clientID(w, r)
	r.Body = http.MaxBytesReader(w, r.Body, 1024)

	var raw string
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var req themeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.fail(w, r, fmt.Errorf("decode theme: %v: %w", err, prefs.ErrInvalidTheme))
			return
		}
		raw = req.Theme
	} else {
		raw = r.FormValue("theme")
	}

	theme, err := prefs.ParseTheme(raw)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.prefs.SetTheme(r.Context(), clientID, theme); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, themeResponse{Theme: string(theme)})
}
