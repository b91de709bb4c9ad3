package summarizer

import (
	"net/url"
	"strings"
)

// Validation failures are sentinels so front ends can map each field to
// their own wording while keeping the same check order.
var (
	ErrMissingAPIKey = &Error{Kind: KindInvalidInput, Message: "API Key is required"}
	ErrMissingURL    = &Error{Kind: KindInvalidInput, Message: "URL is required"}
	ErrInvalidURL    = &Error{Kind: KindInvalidInput, Message: "Invalid URL provided"}
)

// Request is one summarization ask: the caller's Groq credential and the
// URL to summarize. The credential configures the generator for this
// request only and is never logged or persisted.
type Request struct {
	APIKey string
	URL    string
}

// Normalize trims surrounding whitespace from both fields.
func (r Request) Normalize() Request {
	r.APIKey = strings.TrimSpace(r.APIKey)
	r.URL = strings.TrimSpace(r.URL)
	return r
}

// Validate checks credential presence, then URL presence, then URL
// well-formedness. The order is part of the contract: both front ends
// report the first failure in this sequence, before any network call.
func (r Request) Validate() error {
	if r.APIKey == "" {
		return ErrMissingAPIKey
	}
	if r.URL == "" {
		return ErrMissingURL
	}
	if !wellFormedURL(r.URL) {
		return ErrInvalidURL
	}
	return nil
}

// wellFormedURL accepts absolute http(s) URLs with a host.
func wellFormedURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false
	}
	return u.Host != ""
}
