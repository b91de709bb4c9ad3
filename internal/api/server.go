// Package api is the JSON front end: one summarize endpoint, a liveness
// probe, and a metrics scrape target.
package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/condenseio/condense/internal/summarizer"
)

// Server wires the shared summarizer behind the HTTP handlers.
type Server struct {
	Summarizer *summarizer.Summarizer
	Metrics    *Metrics
	Logger     zerolog.Logger
}

// Routes assembles the handler chain: panic recovery outermost, then
// request logging, CORS, and metrics collection.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/summarize", s.handleSummarize)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", s.Metrics.Handler())

	var handler http.Handler = mux
	handler = s.Metrics.Middleware(handler)
	handler = CORS(handler)
	handler = RequestLogger(s.Logger, handler)
	handler = Recovery(s.Logger, handler)
	return handler
}

// NewHTTPServer builds the listening server. The write timeout leaves
// room for slow model completions.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}
}
