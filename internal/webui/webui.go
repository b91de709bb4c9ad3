// Package webui is the interactive front end: a single-page form that
// runs the same summarization flow as the JSON API and renders results
// and errors inline.
package webui

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/condenseio/condense/internal/api"
	"github.com/condenseio/condense/internal/summarizer"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server renders the form and serves the PDF export.
type Server struct {
	Summarizer *summarizer.Summarizer
	Metrics    *api.Metrics
	Logger     zerolog.Logger
	tmpl       *template.Template
}

// NewServer parses the embedded templates and returns a ready Server.
func NewServer(s *summarizer.Summarizer, m *api.Metrics, logger zerolog.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Server{Summarizer: s, Metrics: m, Logger: logger, tmpl: tmpl}, nil
}

// Routes assembles the handler chain for the form process.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleForm)
	mux.HandleFunc("/summary.pdf", s.handlePDF)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", s.Metrics.Handler())

	var handler http.Handler = mux
	handler = s.Metrics.Middleware(handler)
	handler = api.RequestLogger(s.Logger, handler)
	handler = api.Recovery(s.Logger, handler)
	return handler
}

// formView is everything the page template needs. The credential is
// deliberately absent: it is never echoed back into HTML.
type formView struct {
	URL     string
	Summary string
	Error   string
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		s.render(w, formView{})
	case http.MethodPost:
		s.handleSubmit(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, formView{Error: "Could not read the submitted form"})
		return
	}
	req := summarizer.Request{
		APIKey: r.PostFormValue("groq_api_key"),
		URL:    r.PostFormValue("url"),
	}
	view := formView{URL: strings.TrimSpace(req.URL)}
	source := summarizer.SourceKind(req.URL)

	res, err := s.Summarizer.Summarize(r.Context(), req)
	if err != nil {
		view.Error = s.formError(source, err)
		s.render(w, view)
		return
	}
	s.Metrics.RecordSummarization(source, "success")
	view.Summary = res.Summary
	s.render(w, view)
}

// formError maps summarization failures to the wording the form shows.
// The check order inside Summarize is the same one the API applies.
func (s *Server) formError(source string, err error) string {
	switch {
	case errors.Is(err, summarizer.ErrMissingAPIKey), errors.Is(err, summarizer.ErrMissingURL):
		s.Metrics.RecordSummarization(source, summarizer.KindInvalidInput.String())
		return "Please provide both API key and URL to get started"
	case errors.Is(err, summarizer.ErrInvalidURL):
		s.Metrics.RecordSummarization(source, summarizer.KindInvalidInput.String())
		return "Please enter a valid URL (YouTube video or website)"
	}
	se := summarizer.Categorize(err)
	s.Metrics.RecordSummarization(source, se.Kind.String())
	if se.Kind == summarizer.KindUnexpected {
		s.Logger.Error().Err(se.Err).Msg("summarization failed unexpectedly")
		return "An unexpected error occurred. Please try again later."
	}
	return se.Message
}

// handlePDF turns an already generated summary back into a downloadable
// PDF. The summary travels in the form post, so nothing is stored and
// nothing is re-generated.
func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "could not read the submitted form", http.StatusBadRequest)
		return
	}
	summary := strings.TrimSpace(r.PostFormValue("summary"))
	if summary == "" {
		http.Error(w, "nothing to export", http.StatusBadRequest)
		return
	}
	source := strings.TrimSpace(r.PostFormValue("source"))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="summary.pdf"`)
	if err := writeSummaryPDF(w, source, summary); err != nil {
		s.Logger.Error().Err(err).Msg("pdf export failed")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status": "healthy"}`))
}

func (s *Server) render(w http.ResponseWriter, view formView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", view); err != nil {
		s.Logger.Error().Err(err).Msg("template render failed")
	}
}
