package web

// errors.go provides unified error response handling for the web layer.
//
// Every handler failure goes through respondError, which:
//  1. Maps the error to a user message with a support code
//  2. Logs the technical error with the request ID for correlation
//  3. Renders the message as an HTML fragment, JSON or plain text
//     depending on who asked

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/issuecsv/internal/core"
	"github.com/JonMunkholm/issuecsv/internal/logging"
	"github.com/JonMunkholm/issuecsv/internal/prefs"
	"github.com/JonMunkholm/issuecsv/internal/web/templates"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

var invalidThemeMessage = core.UserMessage{
	Message: "Unknown theme",
	Action:  "Choose light or dark",
	Code:    "PRF001",
}

// userMessage maps err to the message shown to the user.
func userMessage(err error) core.UserMessage {
	if errors.Is(err, prefs.ErrInvalidTheme) {
		return invalidThemeMessage
	}
	return core.MapError(err)
}

// statusFor picks the HTTP status for a pipeline error.
func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, core.ErrUnknownTemplate), errors.Is(err, core.ErrPartNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrParseInProgress), errors.Is(err, core.ErrNothingGenerated):
		return http.StatusConflict
	case errors.Is(err, core.ErrBusy), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case errors.As(err, &maxBytes), strings.Contains(err.Error(), "request body too large"):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, prefs.ErrInvalidTheme):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrEmptyInput),
		errors.Is(err, core.ErrPlaceholderRejected),
		errors.Is(err, core.ErrMissingColumns),
		errors.Is(err, core.ErrNoEmailsFound),
		errors.Is(err, core.ErrMissingParameters),
		errors.Is(err, core.ErrTooManyRows):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fail responds with the status statusFor picks.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.respondError(w, r, err, statusFor(err))
}

// respondError handles error responses with user-friendly messages.
// It logs the technical error server-side and returns an appropriate response
// based on the request type (partial, JSON, or plain).
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := userMessage(err)

	logger := logging.FromContext(r.Context())
	logArgs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	}
	if statusCode >= http.StatusInternalServerError {
		logger.Error("request error", logArgs...)
	} else {
		logger.Warn("request rejected", logArgs...)
	}

	if isHTMX(r) {
		renderErrorPartial(w, r, userMsg, statusCode)
	} else if wantsJSON(r) {
		respondErrorJSON(w, userMsg, statusCode)
	} else {
		respondErrorText(w, userMsg, statusCode)
	}
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// respondErrorText writes a plain text error response.
func respondErrorText(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	http.Error(w, msg.Message+" ("+msg.Code+"). "+msg.Action, statusCode)
}

// renderErrorPartial renders an error fragment for in-page requests.
// The page script swaps 4xx and 5xx fragments into the alert area.
func renderErrorPartial(w http.ResponseWriter, r *http.Request, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	templates.ErrorAlert(msg.Message, msg.Action, msg.Code).Render(r.Context(), w)
}

// isHTMX checks if the request came from the page script wanting a fragment.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	// API routes default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/")
}
