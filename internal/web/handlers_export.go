package web

import (
	"archive/zip"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/JonMunkholm/issuecsv/internal/core"
	"github.com/JonMunkholm/issuecsv/internal/logging"
	"github.com/JonMunkholm/issuecsv/internal/web/templates"
	"github.com/go-chi/chi/v5"
)

// fileResponse describes one downloadable part.
type fileResponse struct {
	Name string `json:"name"`
	Part int    `json:"part"`
	Rows int    `json:"rows"`
	URL  string `json:"url"`
}

// previewResponse is the JSON form of a generated output.
type previewResponse struct {
	Template    string         `json:"template"`
	Header      []string       `json:"header"`
	Rows        [][]string     `json:"rows"`
	Total       int            `json:"total"`
	Summary     core.Summary   `json:"summary"`
	Files       []fileResponse `json:"files"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

func newFileResponses(out *core.Output) []fileResponse {
	files := make([]fileResponse, len(out.Files))
	for i, f := range out.Files {
		files[i] = fileResponse{
			Name: f.Name,
			Part: f.Part,
			Rows: f.Rows,
			URL:  fmt.Sprintf("/api/%s/download/%d", out.Template, f.Part),
		}
	}
	return files
}

// newPreviewResponse includes the first limit data rows, or all of them
// when limit is zero.
func newPreviewResponse(out *core.Output, limit int) previewResponse {
	data := out.Table.DataRows()
	if limit > 0 && len(data) > limit {
		data = data[:limit]
	}
	rows := make([][]string, len(data))
	for i, row := range data {
		rows[i] = row
	}
	return previewResponse{
		Template:    out.Template,
		Header:      out.Table.Header(),
		Rows:        rows,
		Total:       len(out.Table.DataRows()),
		Summary:     out.Summary,
		Files:       newFileResponses(out),
		GeneratedAt: out.GeneratedAt,
	}
}

// output looks up the caller's generated output.
func (s *Server) output(w http.ResponseWriter, r *http.Request) (*core.Output, error) {
	return s.service.Output(s.clientID(w, r), templateKey(r))
}

// handlePreview shows the generated table.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	out, err := s.output(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		templates.Preview(out, parseIntParam(r, "limit", defaultPreviewRows)).Render(r.Context(), w)
		return
	}
	writeJSON(w, newPreviewResponse(out, parseIntParam(r, "limit", 0)))
}

// handleFiles lists the downloadable parts.
func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	out, err := s.output(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		templates.FileList(out).Render(r.Context(), w)
		return
	}
	writeJSON(w, newFileResponses(out))
}

// handleDownload sends one part as a CSV attachment.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	out, err := s.output(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	part, err := strconv.Atoi(chi.URLParam(r, "part"))
	if err != nil {
		s.fail(w, r, fmt.Errorf("part %q: %w", chi.URLParam(r, "part"), core.ErrPartNotFound))
		return
	}
	file, err := out.File(part)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	if _, err := w.Write([]byte(file.CSV)); err != nil {
		logging.FromContext(r.Context()).Warn("download write failed", "file", file.Name, "error", err)
	}
}

// handleDownloadZip sends every part in one archive.
func (s *Server) handleDownloadZip(w http.ResponseWriter, r *http.Request) {
	out, err := s.output(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	tpl, err := core.Lookup(out.Template)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	name := fmt.Sprintf("%s_%d.zip", tpl.Info().FilePrefix, out.GeneratedAt.UnixMilli())
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))

	zw := zip.NewWriter(w)
	for _, f := range out.Files {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: out.GeneratedAt,
		})
		if err != nil {
			logging.FromContext(r.Context()).Error("zip entry failed", "file", f.Name, "error", err)
			return
		}
		if _, err := fw.Write([]byte(f.CSV)); err != nil {
			logging.FromContext(r.Context()).Error("zip write failed", "file", f.Name, "error", err)
			return
		}
	}
	if err := zw.Close(); err != nil {
		logging.FromContext(r.Context()).Error("zip close failed", "error", err)
	}
}

// handleCopy returns the clipboard text: the first part's CSV. The page
// script writes it to the clipboard and warns when X-Total-Files > 1.
func (s *Server) handleCopy(w http.ResponseWriter, r *http.Request) {
	out, err := s.output(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Total-Files", strconv.Itoa(len(out.Files)))
	w.Header().Set("X-Copied-Rows", strconv.Itoa(out.Files[0].Rows))
	w.Write([]byte(out.ClipboardText()))
}
