package api

import (
	"encoding/json"
	"net/http"

	"github.com/condenseio/condense/internal/summarizer"
)

type summarizeRequest struct {
	GroqAPIKey string `json:"groq_api_key"`
	URL        string `json:"url"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var body summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	source := summarizer.SourceKind(body.URL)
	res, err := s.Summarizer.Summarize(r.Context(), summarizer.Request{
		APIKey: body.GroqAPIKey,
		URL:    body.URL,
	})
	if err != nil {
		s.writeSummarizeError(w, source, err)
		return
	}
	s.Metrics.RecordSummarization(source, "success")
	writeJSON(w, http.StatusOK, res)
}

// handleHealth is the liveness probe. It reports healthy unconditionally;
// readiness of the upstream model service is the caller's business.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// writeSummarizeError maps a categorized failure to 400 or 500 with a
// {detail} body. Client messages carry what the summarizer deemed safe;
// the underlying cause goes to the log only.
func (s *Server) writeSummarizeError(w http.ResponseWriter, source string, err error) {
	se := summarizer.Categorize(err)
	status := http.StatusInternalServerError
	if se.Kind.ClientError() {
		status = http.StatusBadRequest
	}

	evt := s.Logger.Warn()
	if status >= 500 {
		evt = s.Logger.Error()
	}
	evt.Err(se.Err).Str("kind", se.Kind.String()).Str("source", source).Msg("summarization failed")

	s.Metrics.RecordSummarization(source, se.Kind.String())
	writeError(w, status, se.Message)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
