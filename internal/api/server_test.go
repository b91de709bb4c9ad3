package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/condenseio/condense/internal/content"
	"github.com/condenseio/condense/internal/summarizer"
)

type stubVideos struct {
	docs []content.Document
	err  error
}

func (s stubVideos) Load(context.Context, string, bool) ([]content.Document, error) {
	return s.docs, s.err
}

type stubPages struct {
	docs []content.Document
	err  error
}

func (s stubPages) Load(context.Context, string) ([]content.Document, error) {
	return s.docs, s.err
}

type stubGen struct {
	out string
	err error
}

func (s stubGen) Generate(context.Context, string) (string, error) {
	return s.out, s.err
}

func newTestServer(videos summarizer.VideoLoader, pages summarizer.PageLoader, gen summarizer.Generator) *Server {
	return &Server{
		Summarizer: &summarizer.Summarizer{
			Videos:       videos,
			Pages:        pages,
			NewGenerator: func(string) (summarizer.Generator, error) { return gen, nil },
			Logger:       zerolog.Nop(),
		},
		Metrics: NewMetrics(),
		Logger:  zerolog.Nop(),
	}
}

func doJSON(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func detailOf(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var e errorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, rr.Body.String())
	}
	return e.Detail
}

func TestSummarize_Success(t *testing.T) {
	srv := newTestServer(stubVideos{}, stubPages{docs: []content.Document{{Text: "body"}}}, stubGen{out: "Summary text"})
	h := srv.Routes()

	rr := doJSON(h, http.MethodPost, "/summarize",
		`{"groq_api_key": "gsk_test", "url": "https://example.com/post"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("unexpected content type: %q", ct)
	}
	var res summarizer.Result
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Summary != "Summary text" {
		t.Fatalf("unexpected summary: %q", res.Summary)
	}
}

func TestSummarize_ValidationErrors(t *testing.T) {
	srv := newTestServer(stubVideos{}, stubPages{}, stubGen{})
	h := srv.Routes()

	cases := []struct {
		name   string
		body   string
		detail string
	}{
		{"missing key", `{"groq_api_key": "  ", "url": "https://example.com"}`, "API Key is required"},
		{"missing url", `{"groq_api_key": "k", "url": ""}`, "URL is required"},
		{"malformed url", `{"groq_api_key": "k", "url": "not a url"}`, "Invalid URL provided"},
	}
	for _, c := range cases {
		rr := doJSON(h, http.MethodPost, "/summarize", c.body)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", c.name, rr.Code)
			continue
		}
		if got := detailOf(t, rr); got != c.detail {
			t.Errorf("%s: expected detail %q, got %q", c.name, c.detail, got)
		}
	}
}

func TestSummarize_ContentFailuresAre400(t *testing.T) {
	srv := newTestServer(stubVideos{}, stubPages{}, stubGen{out: "unused"})
	h := srv.Routes()

	rr := doJSON(h, http.MethodPost, "/summarize",
		`{"groq_api_key": "k", "url": "https://example.com/empty"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if got := detailOf(t, rr); got != "No content could be extracted from the URL" {
		t.Fatalf("unexpected detail: %q", got)
	}
}

func TestSummarize_TranscriptUnavailableIs400(t *testing.T) {
	srv := newTestServer(stubVideos{err: errors.New("no captions")}, stubPages{}, stubGen{})
	h := srv.Routes()

	rr := doJSON(h, http.MethodPost, "/summarize",
		`{"groq_api_key": "k", "url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if got := detailOf(t, rr); !strings.Contains(got, "English subtitles") {
		t.Fatalf("unexpected detail: %q", got)
	}
}

func TestSummarize_GenerationFailureIs500(t *testing.T) {
	srv := newTestServer(stubVideos{}, stubPages{docs: []content.Document{{Text: "body"}}}, stubGen{err: errors.New("rate limited")})
	h := srv.Routes()

	rr := doJSON(h, http.MethodPost, "/summarize",
		`{"groq_api_key": "k", "url": "https://example.com"}`)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if got := detailOf(t, rr); got != "Failed to generate summary: rate limited" {
		t.Fatalf("unexpected detail: %q", got)
	}
}

func TestSummarize_BadJSONBody(t *testing.T) {
	srv := newTestServer(stubVideos{}, stubPages{}, stubGen{})
	rr := doJSON(srv.Routes(), http.MethodPost, "/summarize", `{"groq_api_key": `)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestSummarize_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(stubVideos{}, stubPages{}, stubGen{})
	rr := doJSON(srv.Routes(), http.MethodGet, "/summarize", "")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
}

func TestHealth_AlwaysHealthy(t *testing.T) {
	srv := newTestServer(stubVideos{}, stubPages{err: errors.New("everything is down")}, stubGen{err: errors.New("also down")})
	h := srv.Routes()

	// A failing summarization beforehand must not affect the probe.
	_ = doJSON(h, http.MethodPost, "/summarize", `{"groq_api_key": "k", "url": "https://example.com"}`)

	rr := doJSON(h, http.MethodGet, "/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var status map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode health body: %v", err)
	}
	if status["status"] != "healthy" {
		t.Fatalf("unexpected health body: %v", status)
	}
}

func TestCORS_Preflight(t *testing.T) {
	srv := newTestServer(stubVideos{}, stubPages{}, stubGen{})
	rr := doJSON(srv.Routes(), http.MethodOptions, "/summarize", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected allow-origin: %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "POST") {
		t.Fatalf("unexpected allow-methods: %q", got)
	}
	// Browsers reject Allow-Credentials combined with a wildcard origin.
	if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Fatalf("allow-credentials must not be set with a wildcard origin, got %q", got)
	}
}

func TestRequestID_Assigned(t *testing.T) {
	srv := newTestServer(stubVideos{}, stubPages{}, stubGen{})
	rr := doJSON(srv.Routes(), http.MethodGet, "/health", "")
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected a request id header")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "caller-supplied")
	rr = httptest.NewRecorder()
	srv.Routes().ServeHTTP(rr, req)
	if got := rr.Header().Get("X-Request-ID"); got != "caller-supplied" {
		t.Fatalf("expected caller id to be kept, got %q", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(
		stubVideos{docs: []content.Document{{Text: "transcript"}}},
		stubPages{docs: []content.Document{{Text: "x"}}},
		stubGen{out: "s"},
	)
	h := srv.Routes()

	_ = doJSON(h, http.MethodPost, "/summarize", `{"groq_api_key": "k", "url": "https://example.com"}`)
	_ = doJSON(h, http.MethodPost, "/summarize", `{"groq_api_key": "k", "url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}`)

	rr := doJSON(h, http.MethodGet, "/metrics", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "condense_http_requests_total") {
		t.Fatalf("request counter missing from scrape")
	}
	// Label pairs appear alphabetically in the exposition format.
	for _, series := range []string{
		`condense_summarizations_total{outcome="success",source="webpage"} 1`,
		`condense_summarizations_total{outcome="success",source="video"} 1`,
	} {
		if !strings.Contains(body, series) {
			t.Fatalf("series %s missing from scrape:\n%s", series, body)
		}
	}
}

func TestRecovery_TurnsPanicInto500(t *testing.T) {
	srv := &Server{
		// NewGenerator is nil, so a valid request panics inside Summarize.
		Summarizer: &summarizer.Summarizer{
			Videos: stubVideos{},
			Pages:  stubPages{docs: []content.Document{{Text: "article body"}}},
			Logger: zerolog.Nop(),
		},
		Metrics: NewMetrics(),
		Logger:  zerolog.Nop(),
	}
	rr := doJSON(srv.Routes(), http.MethodPost, "/summarize",
		`{"groq_api_key": "k", "url": "https://example.com"}`)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if got := detailOf(t, rr); got != "An unexpected error occurred" {
		t.Fatalf("unexpected detail: %q", got)
	}
}
