// Package summarizer orchestrates content extraction and summary
// generation for a single URL. Both front ends share one Summarizer; all
// per-request state stays on the stack.
package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/condenseio/condense/internal/content"
	"github.com/condenseio/condense/internal/youtube"
)

// Source kinds name the two extraction paths. They double as metric
// label values on the front ends.
const (
	SourceVideo   = "video"
	SourceWebpage = "webpage"
)

// SourceKind reports which extraction path url takes. Anything that is
// not a known video host counts as a webpage, malformed URLs included.
func SourceKind(url string) string {
	if youtube.IsVideoURL(strings.TrimSpace(url)) {
		return SourceVideo
	}
	return SourceWebpage
}

// VideoLoader extracts transcripts from video URLs in two configurations,
// with and without metadata enrichment.
type VideoLoader interface {
	Load(ctx context.Context, url string, withMetadata bool) ([]content.Document, error)
}

// PageLoader extracts text from generic web pages.
type PageLoader interface {
	Load(ctx context.Context, url string) ([]content.Document, error)
}

// Generator turns extracted text into a summary.
type Generator interface {
	Generate(ctx context.Context, text string) (string, error)
}

// GeneratorFactory builds a Generator bound to a caller-supplied
// credential. Construction happens per request because the credential
// arrives with the request.
type GeneratorFactory func(apiKey string) (Generator, error)

// Result carries the generated summary back to the caller.
type Result struct {
	Summary string `json:"summary"`
}

// Summarizer composes the two extraction paths with the generator.
type Summarizer struct {
	Videos       VideoLoader
	Pages        PageLoader
	NewGenerator GeneratorFactory
	Logger       zerolog.Logger
}

// Summarize validates req, loads the content behind its URL, and returns
// the generated summary. All failures come back as categorized *Error
// values; raw collaborator errors never cross this boundary.
func (s *Summarizer) Summarize(ctx context.Context, req Request) (Result, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	docs, err := s.LoadContent(ctx, req.URL)
	if err != nil {
		return Result{}, Categorize(err)
	}
	summary, err := s.GenerateSummary(ctx, req.APIKey, docs)
	if err != nil {
		return Result{}, Categorize(err)
	}
	return Result{Summary: summary}, nil
}

// LoadContent resolves url into extracted documents, dispatching on URL
// shape: video hosts go through the transcript path with its two-stage
// fallback, everything else through the generic page path.
func (s *Summarizer) LoadContent(ctx context.Context, url string) ([]content.Document, error) {
	if SourceKind(url) == SourceVideo {
		return s.loadVideo(ctx, url)
	}
	return s.loadPage(ctx, url)
}

// loadVideo tries metadata-enriched extraction first, then transcript
// only. Any failure in the first stage, empty results included, moves on
// to the second; only when both come up short does the request fail.
func (s *Summarizer) loadVideo(ctx context.Context, url string) ([]content.Document, error) {
	docs, err := s.Videos.Load(ctx, url, true)
	docs = content.NonEmpty(docs)
	if err == nil && len(docs) > 0 {
		s.Logger.Info().Str("url", url).Msg("loaded video content with metadata")
		return docs, nil
	}
	if err != nil {
		s.Logger.Warn().Err(err).Str("url", url).Msg("metadata-enriched video load failed")
	}

	docs, err = s.Videos.Load(ctx, url, false)
	if err != nil {
		s.Logger.Error().Err(err).Str("url", url).Msg("video load failed")
		return nil, &Error{
			Kind:    KindTranscriptUnavailable,
			Message: "Could not extract YouTube transcript. Please ensure the video has English subtitles available.",
			Err:     err,
		}
	}
	if docs = content.NonEmpty(docs); len(docs) > 0 {
		s.Logger.Info().Str("url", url).Msg("loaded video content without metadata")
		return docs, nil
	}
	return nil, &Error{
		Kind:    KindTranscriptUnavailable,
		Message: "No content could be extracted from the YouTube video",
	}
}

func (s *Summarizer) loadPage(ctx context.Context, url string) ([]content.Document, error) {
	docs, err := s.Pages.Load(ctx, url)
	if err != nil {
		s.Logger.Error().Err(err).Str("url", url).Msg("page load failed")
		return nil, &Error{
			Kind:    KindContentLoadFailed,
			Message: fmt.Sprintf("Failed to load content: %v", err),
			Err:     err,
		}
	}
	if docs = content.NonEmpty(docs); len(docs) == 0 {
		return nil, &Error{
			Kind:    KindContentNotFound,
			Message: "No content could be extracted from the URL",
		}
	}
	return docs, nil
}

// GenerateSummary builds a generator bound to apiKey and runs a single
// stuff-style completion over the joined document text.
func (s *Summarizer) GenerateSummary(ctx context.Context, apiKey string, docs []content.Document) (string, error) {
	gen, err := s.NewGenerator(apiKey)
	if err != nil {
		s.Logger.Error().Err(err).Msg("generator construction failed")
		return "", Categorize(err)
	}
	summary, err := gen.Generate(ctx, content.Join(docs))
	if err != nil {
		s.Logger.Error().Err(err).Msg("summary generation failed")
		return "", &Error{
			Kind:    KindGenerationFailed,
			Message: fmt.Sprintf("Failed to generate summary: %v", err),
			Err:     err,
		}
	}
	return summary, nil
}
